package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"go.uber.org/zap"
)

// TTSProvider implements Synthesis using the OpenAI text-to-speech API.
type TTSProvider struct {
	apiKey string
	voice  openai.SpeechVoice
}

// NewTTSProvider creates a new text-to-speech provider using the tts-1
// model with the alloy voice.
func NewTTSProvider(apiKey string) (*TTSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required for speech synthesis")
	}
	return &TTSProvider{
		apiKey: apiKey,
		voice:  openai.VoiceAlloy,
	}, nil
}

// Synthesize converts text to MP3 audio bytes.
func (p *TTSProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("synthesis text is empty")
	}

	client := openai.NewClient(p.apiKey)
	const maxRetries = 3
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		resp, err := client.CreateSpeech(ctx, openai.CreateSpeechRequest{
			Model: openai.TTSModel1,
			Input: text,
			Voice: p.voice,
		})
		if err == nil {
			defer resp.Close()
			audio, readErr := io.ReadAll(resp)
			if readErr != nil {
				return nil, fmt.Errorf("failed to read synthesized audio: %w", readErr)
			}
			if len(audio) == 0 {
				return nil, errors.New("TTS API returned empty audio")
			}
			return audio, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyOpenAIError(err)
		if !shouldRetry {
			return nil, fmt.Errorf("TTS API error: %w", err)
		}

		logger.Get().Warn("TTS API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(waitTime * time.Duration(i+1)):
			}
		}
	}

	return nil, fmt.Errorf("TTS API: exhausted %d retries: %w", maxRetries, lastErr)
}
