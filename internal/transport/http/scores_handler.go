package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"word-quiz/internal/app"
	"word-quiz/internal/domain"
)

type scoreView struct {
	ID         int64   `json:"id"`
	Score      float64 `json:"score"`
	Difficulty string  `json:"difficulty"`
}

// ScoresHandler serves the high-score list as JSON.
type ScoresHandler struct {
	service *app.GameService
	logger  *slog.Logger
}

func NewScoresHandler(service *app.GameService, logger *slog.Logger) *ScoresHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoresHandler{service: service, logger: logger.With("component", "scores")}
}

func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := h.service.Scores(r.Context())
	if err != nil {
		h.logger.Error("list scores failed", slog.Any("error", err))
		http.Error(w, "scores unavailable", http.StatusServiceUnavailable)
		return
	}

	views := make([]scoreView, 0, len(records))
	for _, rec := range records {
		views = append(views, toScoreView(rec))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func toScoreView(rec domain.ScoreRecord) scoreView {
	return scoreView{ID: rec.ID, Score: rec.Score, Difficulty: rec.Difficulty.String()}
}

// NewMux wires every HTTP route of the game server.
func NewMux(service *app.GameService, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", NewWSHandler(service, logger).ServeWS)
	mux.Handle("/scores", NewScoresHandler(service, logger))
	return mux
}
