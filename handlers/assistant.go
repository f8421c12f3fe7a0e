package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sapdoc/models"
	"sapdoc/services/assistant"
	"sapdoc/services/scheduling"
	"sapdoc/utils"
)

const allowedAudioExtension = ".wav"

// AssistantHandler serves text and voice questions to the scheduling assistant.
type AssistantHandler struct {
	Service     assistant.AssistantService
	Transcriber assistant.Transcriber // nil when speech is disabled
	Logger      *zap.Logger
}

func NewAssistantHandler(svc assistant.AssistantService, transcriber assistant.Transcriber, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{Service: svc, Transcriber: transcriber, Logger: logger}
}

// Query handles POST /api/assistant/query.
func (h *AssistantHandler) Query(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindValidation), "Message is required")
		return
	}

	reply, err := h.Service.Query(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Voice handles POST /api/assistant/voice with a multipart "audio" WAV file.
func (h *AssistantHandler) Voice(c *gin.Context) {
	if h.Transcriber == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, kindUnavailable, "Voice queries are not enabled")
		return
	}

	language := c.DefaultPostForm("language", "en-US")
	sessionID := c.PostForm("sessionId")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindValidation), "audio file is required")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedAudioExtension {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindValidation),
			fmt.Sprintf("invalid file type: expected %s, got %q", allowedAudioExtension, ext))
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, assistant.MaxAudioBytes+1))
	if err != nil {
		respondError(c, fmt.Errorf("read audio upload: %w", err))
		return
	}
	if len(audio) > assistant.MaxAudioBytes {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindValidation), "audio file exceeds 5MB")
		return
	}

	transcript, err := h.Transcriber.Transcribe(c.Request.Context(), audio, language)
	if errors.Is(err, assistant.ErrInvalidAudio) {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindValidation), err.Error())
		return
	}
	if err != nil {
		getLogger(c).Error("Speech recognition failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, kindUpstream, "speech recognition failed")
		return
	}

	out := models.VoiceReply{Transcription: transcript}
	if transcript != "" {
		reply, err := h.Service.Query(c.Request.Context(), sessionID, transcript)
		if err != nil {
			respondError(c, err)
			return
		}
		out.Reply = reply
	}
	c.JSON(http.StatusOK, out)
}
