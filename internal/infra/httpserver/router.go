package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/reelcheck/reelcheck/internal/application/analysis"
	domai "github.com/reelcheck/reelcheck/internal/domain/ai"
	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
	"github.com/reelcheck/reelcheck/internal/domain/media"
	"github.com/reelcheck/reelcheck/internal/middleware"
)

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1/{session}", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/failures", r.wrap(r.handleFailures))
		rt.Post("/chat", r.wrap(r.handleChat))
		rt.Post("/reset", r.wrap(r.handleReset))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			var resErr *media.ResolutionError
			if errors.As(err, &resErr) {
				http.Error(w, resErr.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{session}/analyze
// Body: {"url": "...", "language": "Hindi|English"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")

	var body struct {
		URL      string `json:"url"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateMediaURL(body.URL); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	lang, err := middleware.ValidateLanguage(body.Language)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	cmd := appanalysis.AnalyzeCommand{
		SessionID: session,
		URL:       body.URL,
		Language:  lang,
	}

	// 🚀 Jalankan di background, biar jalan sampai selesai
	go func() {
		middleware.IncrementAnalyses()
		middleware.IncrementAnalysesRunning()
		defer middleware.DecrementAnalysesRunning()

		result, err := r.svc.AnalyzeUntilDone(cmd)
		if err != nil {
			middleware.IncrementAnalysesFailed()
			fmt.Printf("background analysis error for session=%s url=%s: %v\n",
				session, cmd.URL, err)
			return
		}
		fmt.Printf("analysis finished: session=%s id=%s status=%s\n",
			session, result.ID, result.Status)
	}()

	// 🔙 langsung balikin respons ke client
	resp := map[string]any{
		"status":   "queued",
		"session":  session,
		"url":      body.URL,
		"language": string(lang),
		"message":  "analysis started in background",
		"queuedAt": time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// GET /v1/{session}/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.Latest(req.Context(), session, limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{session}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")
	id := chi.URLParam(req, "id")

	a, err := r.svc.Get(req.Context(), session, domain.ID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/{session}/failures?limit=20
func (r *Router) handleFailures(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.LatestFailures(req.Context(), session, limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// POST /v1/{session}/chat
// Body: {"analysis_id": "<id>", "question": "..."}
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")

	var body struct {
		AnalysisID string `json:"analysis_id"`
		Question   string `json:"question"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	body.Question = middleware.SanitizeString(body.Question)
	if body.AnalysisID == "" || body.Question == "" {
		return fmt.Errorf("analysis_id and question are required")
	}

	answer, err := r.svc.Answer(req.Context(), session, domain.ID(body.AnalysisID), body.Question)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

// POST /v1/{session}/reset
func (r *Router) handleReset(w http.ResponseWriter, req *http.Request) error {
	session := chi.URLParam(req, "session")
	if err := r.svc.Reset(req.Context(), session); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}
