package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gamemate-ai/gamemate/internal/chat"
	"github.com/gamemate-ai/gamemate/internal/history"
)

type fakeChat struct {
	answer   string
	err      error
	sessions []string
	inputs   []string
}

func (f *fakeChat) HandleTurn(_ context.Context, sessionID, input string) (string, error) {
	f.sessions = append(f.sessions, sessionID)
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestServer(chatSvc ChatService, hist history.Store) *Server {
	if hist == nil {
		hist = history.NewMemoryStore(0)
	}
	return New(Config{Port: 0}, chatSvc, hist)
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleChat(t *testing.T) {
	svc := &fakeChat{answer: "Try Alpha Quest."}
	srv := newTestServer(svc, nil)

	rec := postChat(t, srv, `{"session_id":"s1","input":"recommend an rpg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.SessionID != "s1" || resp.Answer != "Try Alpha Quest." {
		t.Errorf("response = %+v", resp)
	}
	if svc.sessions[0] != "s1" || svc.inputs[0] != "recommend an rpg" {
		t.Errorf("service called with session %q input %q", svc.sessions[0], svc.inputs[0])
	}
}

func TestHandleChat_AssignsSessionID(t *testing.T) {
	svc := &fakeChat{answer: "ok"}
	srv := newTestServer(svc, nil)

	rec := postChat(t, srv, `{"input":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp chatResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.SessionID == "" {
		t.Error("no session id handed out for a new session")
	}
	if svc.sessions[0] != resp.SessionID {
		t.Errorf("service saw session %q, response carries %q", svc.sessions[0], resp.SessionID)
	}
}

func TestHandleChat_BadRequests(t *testing.T) {
	svc := &fakeChat{answer: "ok"}
	srv := newTestServer(svc, nil)

	for name, body := range map[string]string{
		"empty input":  `{"session_id":"s1","input":""}`,
		"invalid json": `{not json`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postChat(t, srv, body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
	if len(svc.sessions) != 0 {
		t.Errorf("service called for a rejected request")
	}
}

func TestHandleChat_GenerationUnavailable(t *testing.T) {
	svc := &fakeChat{err: chat.ErrGenerationUnavailable}
	srv := newTestServer(svc, nil)

	rec := postChat(t, srv, `{"session_id":"s1","input":"hi"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.Error, "try again") {
		t.Errorf("error message = %q, want a retry hint", resp.Error)
	}
}

func TestHandleChat_InternalError(t *testing.T) {
	svc := &fakeChat{err: errors.New("transcript store corrupt")}
	srv := newTestServer(svc, nil)

	rec := postChat(t, srv, `{"session_id":"s1","input":"hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHandleGetMessages(t *testing.T) {
	hist := history.NewMemoryStore(0)
	hist.Append(context.Background(), "s1",
		history.Turn{Role: history.RoleUser, Content: "recommend an rpg"},
		history.Turn{Role: history.RoleAssistant, Content: "Alpha Quest."},
	)
	srv := newTestServer(&fakeChat{}, hist)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/s1/messages", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var messages []messageJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[1].Role != "assistant" {
		t.Errorf("message roles = %q, %q", messages[0].Role, messages[1].Role)
	}
}

func TestHandleGetMessages_UnknownSession(t *testing.T) {
	srv := newTestServer(&fakeChat{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/nope/messages", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	// Unknown sessions are empty, not missing.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var messages []messageJSON
	json.Unmarshal(rec.Body.Bytes(), &messages)
	if len(messages) != 0 {
		t.Errorf("got %d messages for an unknown session", len(messages))
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&fakeChat{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}
