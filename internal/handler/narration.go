package handler

import (
	"context"
	"log"

	"AwarenessSimulator_SecurityProject/internal/playback"

	"github.com/gorilla/websocket"
)

// queueNarration enqueues the counterpart entries after the first `done` transcript
// entries and returns the new count.
func queueNarration(snap playback.Snapshot, done int, texts chan<- string) int {
	if done > len(snap.Transcript) {
		done = 0
	}
	for _, entry := range snap.Transcript[done:] {
		if entry.Speaker != playback.SpeakerCounterpart {
			continue
		}
		select {
		case texts <- entry.Text:
		default:
			log.Printf("queueNarration(): narration queue full, skipping message")
		}
	}
	return len(snap.Transcript)
}

// runNarrator converts queued texts to audio in order and sends them as binary frames.
func (h *Handler) runNarrator(ctx context.Context, texts <-chan string, serverChan chan<- outbound) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-texts:
			audio, err := h.narrator.Narrate(ctx, text)
			if err != nil {
				log.Printf("runNarrator(): TTS Error: %v", err)
				continue
			}
			if !send(ctx, serverChan, outbound{messageType: websocket.BinaryMessage, data: audio}) {
				return
			}
		}
	}
}
