package handlers

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/language"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"github.com/gramvaani/gramvaani-api/internal/util"
)

const maxAudioUploadBytes = 25 << 20 // Whisper's upload ceiling

// AssistantHandler serves the voice and text query endpoints.
type AssistantHandler struct {
	Service *service.AssistantService
	Queries repository.QueryRepo
}

// NewAssistantHandler is the constructor function for initializing a new AssistantHandler.
func NewAssistantHandler(assistantService *service.AssistantService, queries repository.QueryRepo) *AssistantHandler {
	return &AssistantHandler{Service: assistantService, Queries: queries}
}

// ProcessAudio accepts a multipart audio upload plus a language code,
// transcribes and answers it, and returns the reply with synthesized audio.
func (h *AssistantHandler) ProcessAudio(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio file"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio file"})
		return
	}

	lang := language.Parse(c.PostForm("language"))

	resp := h.Service.ProcessVoice(c.Request.Context(), user, audio, lang)
	c.JSON(http.StatusOK, gin.H{
		"text":       resp.Transcript,
		"response":   resp.Response,
		"audio_data": encodeAudio(resp.Audio),
		"audio_url":  emptyToNil(resp.AudioURL),
	})
}

// ProcessText accepts a typed query plus a language code and returns the
// answer text.
func (h *AssistantHandler) ProcessText(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request struct {
		Text     string `json:"text" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text field is required"})
		return
	}

	lang := language.Parse(request.Language)

	resp := h.Service.ProcessText(c.Request.Context(), user, request.Text, lang)
	c.JSON(http.StatusOK, gin.H{
		"response_text": resp.Response,
		"audio_data":    nil,
	})
}

// ListQueries returns the authenticated user's recent query history.
func (h *AssistantHandler) ListQueries(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.Queries.GetUserQueries(user.Email, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load query history"})
		return
	}

	type queryEntry struct {
		Query     string `json:"query"`
		Response  string `json:"response"`
		Category  string `json:"category"`
		Timestamp string `json:"timestamp"`
	}

	out := make([]queryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, queryEntry{
			Query:     e.Query,
			Response:  e.Response,
			Category:  string(e.Category),
			Timestamp: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"queries": out})
}

// encodeAudio base64-encodes audio for the JSON envelope; nil stays null.
func encodeAudio(audio []byte) interface{} {
	if len(audio) == 0 {
		return nil
	}
	return base64.StdEncoding.EncodeToString(audio)
}

func emptyToNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
