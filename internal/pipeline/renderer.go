package pipeline

import (
	"context"

	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"go.uber.org/zap"
)

// Archiver persists a synthesized reply somewhere durable and returns a URL
// for it. Optional; a nil Archiver disables archiving.
type Archiver interface {
	ArchiveAudio(ctx context.Context, audio []byte, key string) (string, error)
}

// Renderer turns a final answer into an optional spoken reply and records
// the query/response pair. Neither synthesis nor logging failures ever fail
// the user-facing response.
type Renderer struct {
	tts     ai.Synthesis
	store   repository.QueryRepo
	archive Archiver
}

// NewRenderer creates a Renderer. tts and archive may be nil, in which case
// the corresponding step is skipped.
func NewRenderer(tts ai.Synthesis, store repository.QueryRepo, archive Archiver) *Renderer {
	return &Renderer{tts: tts, store: store, archive: archive}
}

// Render synthesizes the answer text to audio. On synthesis failure it
// returns nil audio and an empty URL; the text answer is still deliverable.
// When an Archiver is configured, the audio is also uploaded and its URL
// returned; archive failures are logged and ignored.
func (r *Renderer) Render(ctx context.Context, answerText string, archiveKey string) (audio []byte, archiveURL string) {
	if r.tts == nil || answerText == "" {
		return nil, ""
	}

	audio, err := r.tts.Synthesize(ctx, answerText)
	if err != nil {
		logger.Get().Warn("speech synthesis failed, returning text only", zap.Error(err))
		return nil, ""
	}

	if r.archive != nil && archiveKey != "" {
		url, err := r.archive.ArchiveAudio(ctx, audio, archiveKey)
		if err != nil {
			logger.Get().Warn("audio archive failed", zap.String("key", archiveKey), zap.Error(err))
		} else {
			archiveURL = url
		}
	}

	return audio, archiveURL
}

// Log appends a query/response pair to the user's history. Persistence
// failures are swallowed: history is best-effort and must never fail the
// response.
func (r *Renderer) Log(userEmail, query, response string, category models.QueryCategory) {
	if r.store == nil {
		return
	}

	entry := &models.QueryLog{
		UserEmail: userEmail,
		Query:     query,
		Response:  response,
		Category:  category,
	}
	if err := r.store.AppendQueryLog(entry); err != nil {
		logger.Get().Warn("query log append failed",
			zap.String("user_email", userEmail),
			zap.String("category", string(category)),
			zap.Error(err))
	}
}
