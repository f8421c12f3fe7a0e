package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sapdoc/models"
	"sapdoc/services/assistant"
)

func TestAssistantQuery(t *testing.T) {
	r := newRouter(newSchedulingService(t), nil)

	w := do(t, r, http.MethodPost, "/api/assistant/query", `{"message":"What are your office hours?","sessionId":"s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	reply := decode[models.AssistantReply](t, w)
	if !reply.Success || reply.Intent != assistant.IntentOffice || reply.SessionID != "s1" {
		t.Errorf("unexpected reply %+v", reply)
	}

	expectError(t, do(t, r, http.MethodPost, "/api/assistant/query", `{"message":""}`), http.StatusBadRequest, "validation")
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

func voiceRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	mw.WriteField("sessionId", "voice-1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/voice", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAssistantVoice(t *testing.T) {
	svc := newSchedulingService(t)

	disabled := newRouter(svc, nil)
	w := httptest.NewRecorder()
	disabled.ServeHTTP(w, voiceRequest(t, "q.wav", []byte("RIFF")))
	expectError(t, w, http.StatusServiceUnavailable, "unavailable")

	r := newRouter(svc, fakeTranscriber{text: "show my appointments"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, "q.wav", []byte("RIFF....WAVE")))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	reply := decode[models.VoiceReply](t, w)
	if reply.Transcription != "show my appointments" || reply.Reply == nil || reply.Reply.Intent != assistant.IntentList {
		t.Errorf("unexpected voice reply %+v", reply)
	}
	if reply.Reply.SessionID != "voice-1" {
		t.Errorf("expected session id from form, got %q", reply.Reply.SessionID)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, "q.mp3", []byte("ID3")))
	expectError(t, w, http.StatusBadRequest, "validation")

	bad := newRouter(svc, fakeTranscriber{err: assistant.ErrInvalidAudio})
	w = httptest.NewRecorder()
	bad.ServeHTTP(w, voiceRequest(t, "q.wav", []byte("RIFF")))
	expectError(t, w, http.StatusBadRequest, "validation")

	failing := newRouter(svc, fakeTranscriber{err: errors.New("recognizer quota exceeded")})
	w = httptest.NewRecorder()
	failing.ServeHTTP(w, voiceRequest(t, "q.wav", []byte("RIFF")))
	expectError(t, w, http.StatusBadGateway, "upstream")
	if strings.Contains(w.Body.String(), "quota") {
		t.Errorf("recognizer error details must not leak: %s", w.Body.String())
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	r := newRouter(newSchedulingService(t), nil)

	if w := do(t, r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/metrics", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", w.Code)
	}
}
