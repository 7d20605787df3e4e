package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskbot/internal/export"
	"taskbot/internal/store"
	"taskbot/pkg/cache"
)

// Server is a small read-only admin API over the task store.
type Server struct {
	store store.Store
	cache *cache.MemoryCache
}

func New(st store.Store) *Server {
	return &Server{store: st, cache: cache.NewMemory(time.Minute)}
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/tasks", s.handleListTasks)
	mux.HandleFunc("/export", s.handleExport)

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	return server.ListenAndServe()
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	tasks, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, tasks)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	key := strconv.FormatInt(userID, 10) + "/" + format
	b, ok := s.cache.Get(key)
	if !ok {
		ex := export.NewExporter(s.store)
		b, err = ex.Export(r.Context(), userID, format)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		s.cache.Set(key, b)
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(b)
}

func userIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, errStr("user_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errStr("user_id must be an integer")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

type errStr string

func (e errStr) Error() string { return string(e) }
