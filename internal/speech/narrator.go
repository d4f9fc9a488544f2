/**
* Name: 			narrator.go
* Description: 		상대방 메시지 음성 안내 (Google Cloud TTS)
* Workflow: 		TTS 클라이언트 생성, 메시지 텍스트 전송, LINEAR16 오디오 수신
 */

package speech

import (
	"context"
	"errors"
	"log"

	"google.golang.org/api/option"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

const SampleRateHertz = 16000

var ErrEmptyText = errors.New("speech: empty text")

// Narrator turns counterpart messages into audio.
type Narrator interface {
	Narrate(ctx context.Context, text string) ([]byte, error)
	Close() error
}

type GoogleNarrator struct {
	client   *texttospeech.Client
	language string
	voice    string
}

func NewGoogleNarrator(ctx context.Context, credentialsFile, language, voice string) (*GoogleNarrator, error) {
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errors.New("NewGoogleNarrator(): failed to create TTS client: " + err.Error())
	}
	return &GoogleNarrator{
		client:   client,
		language: language,
		voice:    voice,
	}, nil
}

func (n *GoogleNarrator) Narrate(ctx context.Context, text string) ([]byte, error) {
	req, err := synthesizeRequest(text, n.language, n.voice)
	if err != nil {
		return nil, err
	}
	resp, err := n.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		log.Printf("GoogleNarrator.Narrate(): SynthesizeSpeech failed: %v", err)
		return nil, err
	}
	log.Printf("GoogleNarrator.Narrate(): audio size: %d bytes", len(resp.AudioContent))
	return resp.AudioContent, nil
}

func (n *GoogleNarrator) Close() error {
	if n.client != nil {
		return n.client.Close()
	}
	return nil
}

func synthesizeRequest(text, language, voice string) (*texttospeechpb.SynthesizeSpeechRequest, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: language,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: SampleRateHertz,
		},
	}, nil
}
