// Package pipeline implements the multilingual query-answering flow:
// normalize the incoming audio or text into a transcript, answer it through
// the generation collaborator (directly for English, via the
// translate/answer/translate-back chain otherwise), and render the final
// answer to speech while logging the exchange.
package pipeline

import (
	"context"
	"strings"

	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/language"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"go.uber.org/zap"
)

// Transcript is the normalized text form of a query.
type Transcript string

// TranscriptUnrecognized is the sentinel transcript signaling failed speech
// recognition. It must never be forwarded to the answer pipeline; callers
// substitute a canned reply instead.
const TranscriptUnrecognized Transcript = "UNRECOGNIZED"

// IsUnrecognized reports whether the transcript is the recognition-failure
// sentinel.
func (t Transcript) IsUnrecognized() bool {
	return t == TranscriptUnrecognized
}

// Normalizer turns raw query input into a Transcript.
type Normalizer struct {
	stt ai.Transcription
}

// NewNormalizer creates a Normalizer over the given transcription
// collaborator.
func NewNormalizer(stt ai.Transcription) *Normalizer {
	return &Normalizer{stt: stt}
}

// FromText passes query text through verbatim. Text input can never produce
// the sentinel.
func (n *Normalizer) FromText(text string) Transcript {
	return Transcript(text)
}

// FromAudio transcribes an audio payload using the declared language as a
// hint (English declares no hint, letting the service auto-detect). Any
// transcription failure or empty result yields the sentinel transcript,
// never an error.
func (n *Normalizer) FromAudio(ctx context.Context, audio []byte, lang language.Language) Transcript {
	text, err := n.stt.Transcribe(ctx, audio, lang.WhisperHint())
	if err != nil {
		logger.Get().Warn("transcription failed",
			zap.String("language", string(lang)),
			zap.Error(err))
		return TranscriptUnrecognized
	}
	if strings.TrimSpace(text) == "" {
		return TranscriptUnrecognized
	}

	return Transcript(text)
}
