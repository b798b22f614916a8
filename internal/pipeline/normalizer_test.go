package pipeline

import (
	"context"
	"testing"

	"github.com/gramvaani/gramvaani-api/internal/language"
	"github.com/gramvaani/gramvaani-api/internal/testutil"
)

func TestFromText_Verbatim(t *testing.T) {
	n := NewNormalizer(&testutil.MockTranscription{})

	got := n.FromText("  What is the wheat price?  ")

	if got != "  What is the wheat price?  " {
		t.Errorf("FromText = %q, want verbatim input", got)
	}
	if got.IsUnrecognized() {
		t.Error("text input must never be the unrecognized sentinel")
	}
}

func TestFromAudio_Success(t *testing.T) {
	stt := &testutil.MockTranscription{
		TranscribeFunc: func(ctx context.Context, audio []byte, hint string) (string, error) {
			return "मौसम कैसा है", nil
		},
	}
	n := NewNormalizer(stt)

	got := n.FromAudio(context.Background(), []byte("webm"), language.Hindi)

	if got != "मौसम कैसा है" {
		t.Errorf("FromAudio = %q", got)
	}
	if stt.LastHint != "hi" {
		t.Errorf("language hint = %q, want %q", stt.LastHint, "hi")
	}
}

func TestFromAudio_EnglishDeclaresNoHint(t *testing.T) {
	stt := &testutil.MockTranscription{
		TranscribeFunc: func(ctx context.Context, audio []byte, hint string) (string, error) {
			return "hello", nil
		},
	}
	n := NewNormalizer(stt)

	n.FromAudio(context.Background(), []byte("webm"), language.English)

	if stt.LastHint != "" {
		t.Errorf("language hint = %q, want empty for English", stt.LastHint)
	}
}

func TestFromAudio_TranscriptionError_YieldsSentinel(t *testing.T) {
	stt := &testutil.MockTranscription{
		TranscribeFunc: func(ctx context.Context, audio []byte, hint string) (string, error) {
			return "", errTest
		},
	}
	n := NewNormalizer(stt)

	got := n.FromAudio(context.Background(), []byte("webm"), language.Hindi)

	if !got.IsUnrecognized() {
		t.Errorf("FromAudio = %q, want unrecognized sentinel", got)
	}
}

func TestFromAudio_WhitespaceResult_YieldsSentinel(t *testing.T) {
	stt := &testutil.MockTranscription{
		TranscribeFunc: func(ctx context.Context, audio []byte, hint string) (string, error) {
			return "  \n\t ", nil
		},
	}
	n := NewNormalizer(stt)

	got := n.FromAudio(context.Background(), []byte("webm"), language.Tamil)

	if !got.IsUnrecognized() {
		t.Errorf("FromAudio = %q, want unrecognized sentinel", got)
	}
}
