package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"sentinel/internal/api"
	"sentinel/internal/articlestore"
	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
	"sentinel/internal/services"
)

// Server exposes the dispatch workflows over HTTP.
type Server struct {
	bind    string
	token   string
	logger  *slog.Logger
	service *api.Service

	listener net.Listener
	server   *http.Server
}

// New constructs the HTTP server. An empty token disables authentication.
func New(bind, token string, service *api.Service, logger *slog.Logger) (*Server, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("server: bind address required")
	}
	if service == nil {
		return nil, errors.New("server: service required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:    bind,
		token:   strings.TrimSpace(token),
		logger:  logging.WithComponent(logger, "server"),
		service: service,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.withRequest(srv.handleHealth))
	mux.HandleFunc("/api/fetch", srv.withRequest(srv.handleFetch))
	mux.HandleFunc("/api/articles", srv.withRequest(srv.handleArticles))
	mux.HandleFunc("/api/dispatch", srv.withRequest(srv.handleDispatch))
	mux.HandleFunc("/api/dispatches", srv.withRequest(srv.handleDispatches))
	mux.HandleFunc("/api/dispatches/latest", srv.withRequest(srv.handleLatest))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start binds the listener and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the request handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) withRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		if s.token != "" {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			if auth != "Bearer "+s.token {
				s.writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
		}
		s.logger.Debug("request",
			logging.String(logging.FieldRequestID, requestID),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
		next(w, r.WithContext(services.WithRequestID(r.Context(), requestID)))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type fetchRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Country  string `json:"country"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req fetchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := s.service.FetchNews(r.Context(), api.FetchRequest{
		Topic:    req.Topic,
		Category: req.Category,
		Country:  req.Country,
		Limit:    req.Limit,
	})
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	articles, err := s.service.ListArticles(r.Context(), articlestore.Filter{
		BatchID: strings.TrimSpace(query.Get("batch")),
		Source:  strings.TrimSpace(query.Get("source")),
		Limit:   limit,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

type dispatchRequest struct {
	ArticleID  string   `json:"articleId"`
	ArticleIDs []string `json:"articleIds"`
	BatchID    string   `json:"batchId"`
	Limit      int      `json:"limit"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dispatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if id := strings.TrimSpace(req.ArticleID); id != "" {
		result, err := s.service.GenerateDispatch(r.Context(), id)
		if err != nil {
			if errors.Is(err, articlestore.ErrNotFound) {
				s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown article id %q", id))
				return
			}
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, result)
		return
	}

	report, err := s.service.GenerateBatch(r.Context(), api.GenerateRequest{
		ArticleIDs: req.ArticleIDs,
		BatchID:    strings.TrimSpace(req.BatchID),
		Limit:      req.Limit,
	})
	if err != nil {
		if errors.Is(err, articlestore.ErrNotFound) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDispatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	dispatches, err := s.service.ListDispatches(dispatch.Filter{
		Tag:  strings.TrimSpace(query.Get("tag")),
		Date: strings.TrimSpace(query.Get("date")),
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.DispatchListResponse{Dispatches: dispatches})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	latest, err := s.service.LatestDispatch(dispatch.Filter{
		Tag:  strings.TrimSpace(query.Get("tag")),
		Date: strings.TrimSpace(query.Get("date")),
	})
	if err != nil {
		if errors.Is(err, dispatch.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no dispatches archived")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc, err := s.service.ReadDispatch(latest.Path)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.DispatchDocumentResponse{Dispatch: latest, Body: doc.Body})
}

func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
