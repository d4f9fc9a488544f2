package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"AwarenessSimulator_SecurityProject/internal/archiver"
	"AwarenessSimulator_SecurityProject/internal/bridge"
	"AwarenessSimulator_SecurityProject/internal/models"
	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"
	"AwarenessSimulator_SecurityProject/internal/storage"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	FramePane  = "pane"
	FrameError = "error"
)

// Frame is a server -> client text frame.
type Frame struct {
	Type  string             `json:"type"`
	Pane  *render.Pane       `json:"pane,omitempty"`
	State *playback.Snapshot `json:"state,omitempty"`
	Error string             `json:"error,omitempty"`
}

type outbound struct {
	messageType int
	frame       *Frame
	data        []byte
}

type sessionParams struct {
	participant string
	token       string
	stepID      int
	script      scenario.Script
	voice       bool
}

func (h *Handler) manageScenarioSession(conn *websocket.Conn, p sessionParams) {
	defer conn.Close()
	sessionID := uuid.New().String()
	log.Printf("manageScenarioSession(): Session %s started for user: %s", sessionID, p.participant)

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	archive, err := archiver.NewArchiver(h.cfg.RecordsDir, sessionID)
	if err != nil {
		log.Printf("manageScenarioSession(): Failed to create archiver: %v", err)
		return
	}

	ctrl, err := playback.New(p.script,
		playback.WithClock(h.clock),
		playback.WithTimeUnit(h.cfg.TimeUnit),
		playback.WithLogger(h.logger.With("session", sessionID)),
		playback.WithObserver(h.metrics),
		playback.OnComplete(h.reporter.Bridge(bridge.Target{
			Participant: p.participant,
			Token:       p.token,
			StepID:      p.stepID,
			Kind:        p.script.Kind,
		})),
	)
	if err != nil {
		// 연결 전에 검증했으므로 여기까지 오지 않음
		log.Printf("manageScenarioSession(): Failed to create controller: %v", err)
		sendUnavailable(conn)
		return
	}

	// context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WaitGroup for goroutines
	var wg sync.WaitGroup
	wg.Add(3)

	clientChan := make(chan []byte, 16)
	serverChan := make(chan outbound, 32)

	// Client -> Server, 읽기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		clientReadPump(ctx, conn, p.participant, clientChan)
	}()

	// Server -> Client, 쓰기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		clientWritePump(ctx, conn, p.participant, serverChan)
	}()

	// 재생 상태 -> 화면, 명령 -> 컨트롤러
	go func() {
		defer wg.Done()
		defer cancel()
		h.orchestrateSession(ctx, ctrl, archive, p, clientChan, serverChan)
	}()

	wg.Wait()

	// unmount: 대기 중인 타이머 취소
	final := ctrl.State()
	ctrl.Close()
	log.Printf("manageScenarioSession(): Session %s ended for user %s in phase %s", sessionID, p.participant, final.Phase)

	finalPath := filepath.Join(h.cfg.RecordsDir, p.participant, fmt.Sprintf("%s.json", sessionID))
	archive.WriteState(final)
	if err := archive.MergeAndSave(finalPath, archiver.Summary{
		Participant: p.participant,
		ScenarioKey: p.script.Key,
		Kind:        string(p.script.Kind),
	}); err != nil {
		log.Printf("manageScenarioSession(): Failed to archive transcript: %v", err)
		finalPath = ""
	}

	attempt := models.Attempt{
		Participant:    p.participant,
		ScenarioKey:    p.script.Key,
		StepID:         p.stepID,
		Kind:           string(p.script.Kind),
		Result:         models.ResultAbandoned,
		Attempts:       final.Attempt,
		TranscriptPath: finalPath,
	}
	if final.Outcome != nil {
		attempt.Result = string(final.Outcome.Result)
		attempt.Score = final.Outcome.Score
	}
	if _, err := storage.CreateAttempt(context.Background(), attempt); err != nil {
		log.Printf("manageScenarioSession(): Failed to save attempt: %v", err)
	} else {
		log.Printf("manageScenarioSession(): Saved attempt for user: %s, result: %s", p.participant, attempt.Result)
	}
}

func (h *Handler) orchestrateSession(
	ctx context.Context,
	ctrl *playback.Controller,
	archive *archiver.Archiver,
	p sessionParams,
	clientChan <-chan []byte,
	serverChan chan<- outbound,
) {
	states, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	if err := ctrl.Start(); err != nil {
		log.Printf("orchestrateSession(): Failed to start playback: %v", err)
		return
	}

	var narrations chan string
	if p.voice && h.narrator != nil {
		narrations = make(chan string, 32)
		go h.runNarrator(ctx, narrations, serverChan)
	} else if p.voice {
		log.Printf("orchestrateSession(): voice requested by %s but narration is disabled", p.participant)
	}
	narrated := 0
	lastAttempt := 0

	limiter := rate.NewLimiter(rate.Limit(h.cfg.RateLimit), h.cfg.RateBurst)

	for {
		select {
		case <-ctx.Done():
			log.Printf("orchestrateSession(): Context canceled for %s", p.participant)
			return

		case snap, ok := <-states:
			if !ok {
				return
			}
			archive.WriteState(snap)
			pane := h.renderer.Render(snap, p.script)
			if !send(ctx, serverChan, outbound{messageType: websocket.TextMessage, frame: &Frame{Type: FramePane, Pane: &pane, State: &snap}}) {
				return
			}

			// 재시작하면 음성 안내도 처음부터
			if snap.Attempt != lastAttempt {
				lastAttempt = snap.Attempt
				narrated = 0
			}
			if narrations != nil {
				narrated = queueNarration(snap, narrated, narrations)
			}

		case message, ok := <-clientChan:
			if !ok {
				log.Printf("orchestrateSession(): Client channel closed for: %s", p.participant)
				return
			}
			archive.WriteCommand(string(message))

			if !limiter.Allow() {
				send(ctx, serverChan, errorFrame("Too many commands"))
				continue
			}
			cmd, err := render.ParseCommand(message)
			if err == nil {
				err = render.Dispatch(ctrl, cmd)
			}
			if err != nil {
				log.Printf("orchestrateSession(): Command %s from %s rejected: %v", message, p.participant, err)
				send(ctx, serverChan, errorFrame(commandError(err)))
			}
		}
	}
}

func commandError(err error) string {
	switch {
	case errors.Is(err, playback.ErrNotAwaitingDecision):
		return "Not awaiting a decision"
	case errors.Is(err, playback.ErrUnknownOption):
		return "Unknown option"
	case errors.Is(err, playback.ErrNoFailure):
		return "Nothing to retry"
	case errors.Is(err, render.ErrUnknownAction):
		return "Unknown action"
	}
	return "Invalid command"
}

func errorFrame(msg string) outbound {
	return outbound{messageType: websocket.TextMessage, frame: &Frame{Type: FrameError, Error: msg}}
}

func send(ctx context.Context, serverChan chan<- outbound, msg outbound) bool {
	select {
	case serverChan <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func clientReadPump(ctx context.Context, conn *websocket.Conn, participant string, clientChan chan<- []byte) {
	log.Printf("clientReadPump(): started for user: %s", participant)
	defer close(clientChan)
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("clientReadPump(): Error reading message from user %s: %v", participant, err)
			return
		}
		if messageType != websocket.TextMessage {
			log.Printf("clientReadPump(): Unsupported message type from user %s: %d", participant, messageType)
			continue
		}
		select {
		case clientChan <- message:
		case <-ctx.Done():
			log.Printf("clientReadPump(): Canceled with %s", participant)
			return
		}
	}
}

func clientWritePump(ctx context.Context, conn *websocket.Conn, participant string, serverChan <-chan outbound) {
	log.Printf("clientWritePump(): started for user: %s", participant)
	for {
		select {
		case <-ctx.Done():
			log.Printf("clientWritePump(): Canceled with %s", participant)
			conn.WriteMessage(websocket.CloseMessage, []byte{})
			// 읽기 펌프를 깨우기 위해 연결 종료
			conn.Close()
			return

		case msg := <-serverChan:
			var err error
			if msg.frame != nil {
				err = conn.WriteJSON(msg.frame)
			} else {
				err = conn.WriteMessage(msg.messageType, msg.data)
			}
			if err != nil {
				log.Printf("clientWritePump(): Error sending to user %s: %v", participant, err)
				return
			}
		}
	}
}
