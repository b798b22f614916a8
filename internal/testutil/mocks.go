package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/gramvaani/gramvaani-api/internal/models"
)

// --- MockGeneration ---

// GenerationCall records the arguments of one Complete invocation.
type GenerationCall struct {
	SystemPrompt string
	UserText     string
	MaxTokens    int
	Temperature  float32
}

// MockGeneration is a mock implementation of ai.Generation. Every call is
// recorded in Calls, in order.
type MockGeneration struct {
	mu           sync.Mutex
	Calls        []GenerationCall
	CompleteFunc func(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float32) (string, error)
}

func (m *MockGeneration) Complete(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float32) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, GenerationCall{
		SystemPrompt: systemPrompt,
		UserText:     userText,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userText, maxTokens, temperature)
	}
	return "", fmt.Errorf("Complete not configured")
}

// CallCount returns the number of Complete invocations so far.
func (m *MockGeneration) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// --- MockTranscription ---

// MockTranscription is a mock implementation of ai.Transcription.
type MockTranscription struct {
	TranscribeFunc func(ctx context.Context, audio []byte, languageHint string) (string, error)
	LastHint       string
}

func (m *MockTranscription) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	m.LastHint = languageHint
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, languageHint)
	}
	return "", fmt.Errorf("Transcribe not configured")
}

// --- MockSynthesis ---

// MockSynthesis is a mock implementation of ai.Synthesis.
type MockSynthesis struct {
	SynthesizeFunc func(ctx context.Context, text string) ([]byte, error)
}

func (m *MockSynthesis) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return nil, fmt.Errorf("Synthesize not configured")
}

// --- MockQueryRepo ---

// MockQueryRepo is a mock implementation of repository.QueryRepo that
// records appended entries and can simulate persistence failures.
type MockQueryRepo struct {
	mu        sync.Mutex
	Entries   []models.QueryLog
	AppendErr error
}

func (m *MockQueryRepo) AppendQueryLog(entry *models.QueryLog) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	m.Entries = append(m.Entries, *entry)
	m.mu.Unlock()
	return nil
}

func (m *MockQueryRepo) GetUserQueries(email string, limit int) ([]models.QueryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.QueryLog
	for i := len(m.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Entries[i].UserEmail == email {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}

// --- MockArchiver ---

// MockArchiver is a mock implementation of pipeline.Archiver.
type MockArchiver struct {
	ArchiveFunc func(ctx context.Context, audio []byte, key string) (string, error)
}

func (m *MockArchiver) ArchiveAudio(ctx context.Context, audio []byte, key string) (string, error) {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, audio, key)
	}
	return "", fmt.Errorf("ArchiveAudio not configured")
}
