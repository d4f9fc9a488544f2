package archiver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"AwarenessSimulator_SecurityProject/internal/playback"
)

const tempDirName = "temp_transcripts"

// Event is one line of the session log. OffsetMS is measured from session start.
type Event struct {
	OffsetMS int64             `json:"offset_ms"`
	Type     string            `json:"type"` // command | state
	Command  string            `json:"command,omitempty"`
	Phase    playback.Phase    `json:"phase,omitempty"`
	Entries  []playback.Entry  `json:"entries,omitempty"`
	Outcome  *playback.Outcome `json:"outcome,omitempty"`
	Attempt  int               `json:"attempt,omitempty"`
}

// Summary is the archived session document.
type Summary struct {
	SessionID   string            `json:"session_id"`
	Participant string            `json:"participant"`
	ScenarioKey string            `json:"scenario_key"`
	Kind        string            `json:"kind"`
	StartedAt   time.Time         `json:"started_at"`
	Transcript  []playback.Entry  `json:"transcript"`
	Outcome     *playback.Outcome `json:"outcome,omitempty"`
	Events      []Event           `json:"events"`
}

// c2s: 참가자 명령, s2c: 상태 변화
type Archiver struct {
	sessionID string
	tempPath  string
	start     time.Time

	mu         sync.Mutex
	file       *os.File
	lastPhase  playback.Phase
	lastLen    int
	lastTry    int
	transcript []playback.Entry
	outcome    *playback.Outcome
}

// NewArchiver opens the session's temp log under baseDir.
func NewArchiver(baseDir, sessionID string) (*Archiver, error) {
	dir := filepath.Join(baseDir, tempDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewArchiver(): failed to create temp directory: %v", err)
	}
	tempPath := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.Create(tempPath)
	if err != nil {
		return nil, err
	}

	log.Printf("NewArchiver(): Created temp file for session %s, %s", sessionID, tempPath)
	return &Archiver{
		sessionID: sessionID,
		tempPath:  tempPath,
		start:     time.Now(),
		file:      f,
	}, nil
}

func (a *Archiver) SessionID() string { return a.sessionID }

// WriteCommand logs an inbound participant command.
func (a *Archiver) WriteCommand(raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.write(Event{Type: "command", Command: raw})
}

// WriteState logs a snapshot if its phase, attempt or transcript changed. Only the
// transcript entries added since the last logged state are written.
func (a *Archiver) WriteState(snap playback.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if snap.Attempt != a.lastTry {
		a.lastLen = 0
	}
	if snap.Phase == a.lastPhase && snap.Attempt == a.lastTry && len(snap.Transcript) == a.lastLen {
		return
	}
	var added []playback.Entry
	if len(snap.Transcript) > a.lastLen {
		added = snap.Transcript[a.lastLen:]
	}
	a.write(Event{Type: "state", Phase: snap.Phase, Entries: added, Outcome: snap.Outcome, Attempt: snap.Attempt})

	a.lastPhase = snap.Phase
	a.lastLen = len(snap.Transcript)
	a.lastTry = snap.Attempt
	a.transcript = snap.Transcript
	a.outcome = snap.Outcome
}

// Outcome returns the outcome of the last logged state.
func (a *Archiver) Outcome() *playback.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outcome
}

func (a *Archiver) write(ev Event) {
	if a.file == nil {
		return
	}
	ev.OffsetMS = time.Since(a.start).Milliseconds()
	line, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Archiver.write(): failed to encode event: %v", err)
		return
	}
	if _, err := a.file.Write(append(line, '\n')); err != nil {
		log.Printf("Archiver.write(): failed to write event: %v", err)
	}
}

// MergeAndSave closes the temp log, writes the session document to finalPath and
// removes the temp log.
func (a *Archiver) MergeAndSave(finalPath string, summary Summary) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	log.Printf("Archiver.MergeAndSave(): Merging session %s to %s", a.sessionID, finalPath)

	if a.file != nil {
		a.file.Close()
		a.file = nil
	}
	defer os.Remove(a.tempPath)

	events, err := readEvents(a.tempPath)
	if err != nil {
		return fmt.Errorf("Archiver.MergeAndSave(): %w", err)
	}

	summary.SessionID = a.sessionID
	summary.StartedAt = a.start
	summary.Transcript = a.transcript
	if summary.Transcript == nil {
		summary.Transcript = []playback.Entry{}
	}
	summary.Outcome = a.outcome
	summary.Events = events

	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(finalPath, data, 0644); err != nil {
		return err
	}
	log.Printf("Archiver: Transcript saved for %s", a.sessionID)
	return nil
}

func readEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events := []Event{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
