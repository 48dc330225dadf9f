package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"savas-backend/internal/assistant"
	"savas-backend/internal/config"
	"savas-backend/internal/google"
	"savas-backend/internal/groq"
	"savas-backend/internal/memory"
	"savas-backend/internal/registry"
	"savas-backend/internal/types"
)

// Pipeline is the chat entry point the server dispatches to.
type Pipeline interface {
	Process(ctx context.Context, message string) (string, error)
}

type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type ProfileAPI interface {
	UserInfo(ctx context.Context, token string) (map[string]any, error)
}

type MemoryStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	pipeline Pipeline
	tokens   TokenSource
	profile  ProfileAPI
	memory   MemoryStore
	devices  *registry.Registry
}

func NewServer(cfg config.Config) (*Server, error) {
	tokens := google.NewTokenProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRefreshToken)
	gclient := google.NewClient()
	llm := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	prompts, err := assistant.LoadPromptSpec("./prompts/assistant.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt spec: %w", err)
	}
	pipeline := assistant.NewWithPrompts(tokens, gclient, llm, cfg.DefaultUserName, prompts)

	var mem MemoryStore
	if cfg.MemorySheetID != "" {
		mem = memory.NewStore(tokens, gclient, cfg.MemorySheetID)
	}
	return newServer(cfg, pipeline, tokens, gclient, mem), nil
}

// newServer wires an explicit dependency set; tests use it directly.
func newServer(cfg config.Config, pipeline Pipeline, tokens TokenSource, profile ProfileAPI, mem MemoryStore) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{
		router:   r,
		cfg:      cfg,
		pipeline: pipeline,
		tokens:   tokens,
		profile:  profile,
		memory:   mem,
		devices:  registry.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleRoot)
	s.router.Post("/chat", s.handleChat)
	s.router.Get("/user", s.handleUser)
	s.router.Get("/device", s.handleDevice)
	if s.memory != nil {
		s.router.Get("/memory/{key}", s.handleMemoryGet)
		s.router.Post("/memory", s.handleMemorySet)
	}
}

func (s *Server) Router() http.Handler { return s.router }

// Devices exposes the registry for inspection.
func (s *Server) Devices() *registry.Registry { return s.devices }

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Data == "" {
		s.writeError(w, http.StatusBadRequest, "Data is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	reply, err := s.pipeline.Process(ctx, req.Data)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.ChatResponse{Data: reply})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	profile, err := s.profile.UserInfo(ctx, token)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.UserResponse{Data: profile})
}

func (s *Server) handleMemoryGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	value, err := s.memory.Get(ctx, key)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.MemoryResponse{Key: key, Value: value})
}

func (s *Server) handleMemorySet(w http.ResponseWriter, r *http.Request) {
	var req types.MemorySetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Key) == "" {
		s.writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	if err := s.memory.Set(ctx, req.Key, req.Value); err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
