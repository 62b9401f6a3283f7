package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type matchHistory interface {
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	ListByPlayer(ctx context.Context, playerID string, limit int64) ([]*entity.MatchResult, error)
}

type matchesHandler struct {
	logger  *slog.Logger
	history matchHistory
}

func (that *matchesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListMatches")

	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if that.history == nil {
		http.Error(w, "match history is disabled", http.StatusServiceUnavailable)
		return
	}

	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "playerId is required", http.StatusBadRequest)
		return
	}

	limit := int64(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}

		limit = min(parsed, maxHistoryLimit)
	}

	results, err := that.history.ListByPlayer(r.Context(), playerID, limit)
	if err != nil {
		log.Error("failed to list matches", "playerID", playerID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(log, w, map[string]any{"matches": results})
}

// getMatch serves GET /matches/{id}.
func (that *matchesHandler) getMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetMatch")

	if that.history == nil {
		http.Error(w, "match history is disabled", http.StatusServiceUnavailable)
		return
	}

	id := r.PathValue("id")

	result, err := that.history.GetByID(r.Context(), id)
	if errors.Is(err, apperror.ErrNotFound) {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get match", "matchID", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(log, w, result)
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
