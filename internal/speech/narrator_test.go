package speech

import (
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeRequest(t *testing.T) {
	req, err := synthesizeRequest("Здравствуйте", "ru-RU", "ru-RU-Wavenet-A")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте", req.GetInput().GetText())
	assert.Equal(t, "ru-RU", req.GetVoice().GetLanguageCode())
	assert.Equal(t, "ru-RU-Wavenet-A", req.GetVoice().GetName())
	assert.Equal(t, texttospeechpb.AudioEncoding_LINEAR16, req.GetAudioConfig().GetAudioEncoding())
	assert.EqualValues(t, SampleRateHertz, req.GetAudioConfig().GetSampleRateHertz())

	_, err = synthesizeRequest("", "ru-RU", "")
	assert.ErrorIs(t, err, ErrEmptyText)
}
