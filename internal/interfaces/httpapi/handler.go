package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/pitchside/dream-eleven/internal/domain/pitch"
	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/domain/reference"
	"github.com/pitchside/dream-eleven/internal/domain/selection"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
	"github.com/pitchside/dream-eleven/internal/usecase"
)

type Handler struct {
	playerStatsService    *usecase.PlayerStatsService
	recommendationService *usecase.RecommendationService
	referenceService      *usecase.ReferenceService
	metricsHandler        http.Handler
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	playerStatsService *usecase.PlayerStatsService,
	recommendationService *usecase.RecommendationService,
	referenceService *usecase.ReferenceService,
	metricsHandler http.Handler,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerStatsService:    playerStatsService,
		recommendationService: recommendationService,
		referenceService:      referenceService,
		metricsHandler:        metricsHandler,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(ctx, w, fmt.Errorf("%w: name query parameter is required", usecase.ErrInvalidInput))
		return
	}

	stats, err := h.playerStatsService.Resolve(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats lookup failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(stats))
}

type recommendationRequest struct {
	Players     []string `json:"players" validate:"required,len=22,dive,required"`
	PitchReport string   `json:"pitchReport" validate:"required"`
}

func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRecommendation")
	defer span.End()

	var req recommendationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rec, err := h.recommendationService.Recommend(ctx, usecase.RecommendationInput{
		Players:     req.Players,
		PitchReport: req.PitchReport,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recommendation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendationToDTO(rec))
}

func (h *Handler) SuggestPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestPlayers")
	defer span.End()

	query := r.URL.Query().Get("q")
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	matches, err := h.referenceService.Suggest(ctx, query, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionsToDTO(matches))
}

func (h *Handler) ReloadReferenceDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadReferenceDataset")
	defer span.End()

	entries, err := h.referenceService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reference dataset reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"entries": entries})
}

type playerStatsDTO struct {
	Name         string             `json:"name"`
	ProviderID   string             `json:"providerId,omitempty"`
	Role         string             `json:"role"`
	BowlingStyle string             `json:"bowlingStyle,omitempty"`
	Batting      map[string]float64 `json:"batting"`
	Bowling      map[string]float64 `json:"bowling"`
	FetchedAt    time.Time          `json:"fetchedAt"`
}

func statsToDTO(stats playerstats.Stats) playerStatsDTO {
	batting := stats.BattingMetrics
	if batting == nil {
		batting = map[string]float64{}
	}
	bowling := stats.BowlingMetrics
	if bowling == nil {
		bowling = map[string]float64{}
	}
	return playerStatsDTO{
		Name:         stats.Identity.Name,
		ProviderID:   stats.Identity.ProviderID,
		Role:         string(stats.Role),
		BowlingStyle: string(stats.BowlingStyle),
		Batting:      batting,
		Bowling:      bowling,
		FetchedAt:    stats.FetchedAt,
	}
}

type scoredPlayerDTO struct {
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Score         float64 `json:"score"`
	SquadPosition int     `json:"squadPosition"`
	Degraded      bool    `json:"degraded"`
}

type pitchDTO struct {
	PaceFriendly bool `json:"paceFriendly"`
	SpinFriendly bool `json:"spinFriendly"`
	HighScoring  bool `json:"highScoring"`
	LowScoring   bool `json:"lowScoring"`
}

type recommendationDTO struct {
	BestEleven  []scoredPlayerDTO `json:"bestEleven"`
	Captain     scoredPlayerDTO   `json:"captain"`
	ViceCaptain scoredPlayerDTO   `json:"viceCaptain"`
	Pitch       pitchDTO          `json:"pitch"`
	Warnings    []string          `json:"warnings"`
}

func scoredPlayerToDTO(player selection.ScoredPlayer) scoredPlayerDTO {
	return scoredPlayerDTO{
		Name:          player.Stats.Identity.Name,
		Role:          string(player.Stats.Role),
		Score:         player.Score,
		SquadPosition: player.SquadPosition,
		Degraded:      player.Degraded,
	}
}

func pitchToDTO(characteristics pitch.Characteristics) pitchDTO {
	return pitchDTO{
		PaceFriendly: characteristics.PaceFriendly,
		SpinFriendly: characteristics.SpinFriendly,
		HighScoring:  characteristics.HighScoring,
		LowScoring:   characteristics.LowScoring,
	}
}

func recommendationToDTO(rec usecase.Recommendation) recommendationDTO {
	eleven := make([]scoredPlayerDTO, 0, len(rec.BestEleven))
	for _, player := range rec.BestEleven {
		eleven = append(eleven, scoredPlayerToDTO(player))
	}
	warnings := rec.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return recommendationDTO{
		BestEleven:  eleven,
		Captain:     scoredPlayerToDTO(rec.Captain),
		ViceCaptain: scoredPlayerToDTO(rec.ViceCaptain),
		Pitch:       pitchToDTO(rec.Pitch),
		Warnings:    warnings,
	}
}

type suggestionDTO struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Role    string `json:"role"`
}

func suggestionsToDTO(entries []reference.Entry) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, suggestionDTO{
			Name:    entry.Name,
			Country: entry.Country,
			Role:    string(entry.Role),
		})
	}
	return out
}
