package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"savas-backend/internal/config"
)

type fakePipeline struct {
	reply string
	err   error
	calls int
}

func (f *fakePipeline) Process(ctx context.Context, message string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) AccessToken(ctx context.Context) (string, error) { return f.token, f.err }

type fakeProfile struct {
	profile map[string]any
	err     error
}

func (f *fakeProfile) UserInfo(ctx context.Context, token string) (map[string]any, error) {
	return f.profile, f.err
}

type fakeMemory struct {
	values map[string]string
	err    error
}

func (f *fakeMemory) Get(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (f *fakeMemory) Set(ctx context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func newTestServer(pipeline *fakePipeline, profile *fakeProfile, mem MemoryStore) *Server {
	cfg := config.Config{Port: "0", AllowedOrigin: "*"}
	return newServer(cfg, pipeline, &fakeTokens{token: "tok"}, profile, mem)
}

func TestRootLiveness(t *testing.T) {
	s := newTestServer(&fakePipeline{}, &fakeProfile{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
}

func TestChatReturnsReply(t *testing.T) {
	pipeline := &fakePipeline{reply: "Good morning, Sir."}
	s := newTestServer(pipeline, &fakeProfile{}, nil)

	payload := []byte(`{"data": "good morning"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["data"] != "Good morning, Sir." {
		t.Fatalf("unexpected body: %v", body)
	}
	if pipeline.calls != 1 {
		t.Fatalf("expected one pipeline call, got %d", pipeline.calls)
	}
}

func TestChatMissingDataIs400(t *testing.T) {
	for _, payload := range []string{`{}`, `{"data": ""}`} {
		s := newTestServer(&fakePipeline{}, &fakeProfile{}, nil)
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
		resp := httptest.NewRecorder()
		s.Router().ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, resp.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(resp.Body.Bytes(), &body)
		if body["error"] == "" {
			t.Fatalf("payload %s: expected error field", payload)
		}
	}
}

func TestChatWhitespaceOnlyDataIsProcessed(t *testing.T) {
	// Only the empty string is rejected; "   " is a valid message.
	pipeline := &fakePipeline{reply: "Yes, Sir?"}
	s := newTestServer(pipeline, &fakeProfile{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"data": "   "}`))
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for whitespace-only data, got %d", resp.Code)
	}
	if pipeline.calls != 1 {
		t.Fatalf("expected pipeline to be invoked, got %d calls", pipeline.calls)
	}
}

func TestChatPipelineFailureIs500(t *testing.T) {
	s := newTestServer(&fakePipeline{err: errors.New("upstream: groq down")}, &fakeProfile{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"data": "hi"}`))
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Fatalf("expected error field, got %v", body)
	}
}

func TestUserReturnsProfile(t *testing.T) {
	profile := &fakeProfile{profile: map[string]any{"given_name": "Ada", "email": "ada@example.com"}}
	s := newTestServer(&fakePipeline{}, profile, nil)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Data map[string]any `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Data["given_name"] != "Ada" {
		t.Fatalf("unexpected profile: %v", body.Data)
	}
}

func TestUserTokenFailureIs500(t *testing.T) {
	cfg := config.Config{Port: "0", AllowedOrigin: "*"}
	s := newServer(cfg, &fakePipeline{}, &fakeTokens{err: errors.New("no refresh token")}, &fakeProfile{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	mem := &fakeMemory{values: map[string]string{}}
	s := newTestServer(&fakePipeline{}, &fakeProfile{}, mem)

	req := httptest.NewRequest(http.MethodPost, "/memory", strings.NewReader(`{"key":"coffee","value":"black"}`))
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on set, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/memory/coffee", nil)
	resp = httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", resp.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["value"] != "black" {
		t.Fatalf("unexpected memory value: %v", body)
	}
}

func TestMemoryDisabledWithoutSheet(t *testing.T) {
	s := newTestServer(&fakePipeline{}, &fakeProfile{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/memory/coffee", nil)
	resp := httptest.NewRecorder()
	s.Router().ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when memory store is disabled, got %d", resp.Code)
	}
}
