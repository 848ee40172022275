package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/repository"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/usecase"
)

// MaxAutoplayTurns bounds a series started over HTTP.
const MaxAutoplayTurns = 10000

var (
	ErrTurnsOutOfRange = errors.New("max_turns out of range")
	ErrNoArchive       = errors.New("series archive is not configured")
)

type seriesStore interface {
	CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error
	GetByID(ctx context.Context, id string) (*entity.SeriesSummary, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// AutoplayDefaults fill fields a request leaves out.
type AutoplayDefaults struct {
	StrategyA string
	StrategyB string
	MaxTurns  int
	Starter   entity.StarterPolicy
	P1Mark    string
	P2Mark    string
}

type autoplayRequest struct {
	StrategyA string `json:"strategy_a"`
	StrategyB string `json:"strategy_b"`
	MaxTurns  int    `json:"max_turns"`
	Starter   string `json:"starter"`
	Seed      int64  `json:"seed"`
}

type SeriesHandler struct {
	logger   *slog.Logger
	store    seriesStore
	defaults AutoplayDefaults
}

// NewSeriesHandler serves autoplay runs and, when store is not nil, the archive.
func NewSeriesHandler(logger *slog.Logger, store seriesStore, defaults AutoplayDefaults) *SeriesHandler {
	return &SeriesHandler{
		logger:   logger.With("component", "series_handler"),
		store:    store,
		defaults: defaults,
	}
}

func (that *SeriesHandler) Strategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, bot.Names())
}

func (that *SeriesHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Autoplay")

	var req autoplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	conf, err := that.autoplayConfig(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var opts []usecase.AutoplayOption
	if that.store != nil {
		opts = append(opts, usecase.WithArchive(that.store))
	}

	autoplay, err := usecase.NewAutoplay(that.logger, conf, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	summary, err := autoplay.Run(r.Context())
	if err != nil {
		log.Error("autoplay failed", "series", autoplay.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

func (that *SeriesHandler) autoplayConfig(req autoplayRequest) (usecase.AutoplayConfig, error) {
	if req.StrategyA == "" {
		req.StrategyA = that.defaults.StrategyA
	}

	if req.StrategyB == "" {
		req.StrategyB = that.defaults.StrategyB
	}

	if req.MaxTurns == 0 {
		req.MaxTurns = that.defaults.MaxTurns
	}

	if req.MaxTurns < 1 || req.MaxTurns > MaxAutoplayTurns {
		return usecase.AutoplayConfig{}, fmt.Errorf("%w: %d not in 1..%d", ErrTurnsOutOfRange, req.MaxTurns, MaxAutoplayTurns)
	}

	starter := that.defaults.Starter
	if req.Starter != "" {
		policy, err := entity.ParseStarterPolicy(req.Starter)
		if err != nil {
			return usecase.AutoplayConfig{}, err
		}

		starter = policy
	}

	rngA, rngB := bot.NewRand(req.Seed), bot.NewRand(req.Seed+1)
	if req.Seed == 0 {
		rngA, rngB = nil, nil
	}

	strategyA, err := bot.New(req.StrategyA, rngA)
	if err != nil {
		return usecase.AutoplayConfig{}, err
	}

	strategyB, err := bot.New(req.StrategyB, rngB)
	if err != nil {
		return usecase.AutoplayConfig{}, err
	}

	return usecase.AutoplayConfig{
		StrategyA: strategyA,
		StrategyB: strategyB,
		MaxTurns:  req.MaxTurns,
		Starter:   starter,
		P1Mark:    that.defaults.P1Mark,
		P2Mark:    that.defaults.P2Mark,
	}, nil
}

func (that *SeriesHandler) List(w http.ResponseWriter, r *http.Request) {
	if that.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoArchive)
		return
	}

	ids, err := that.store.ListIDs(r.Context())
	if err != nil {
		that.logger.Error("failed to list series", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if ids == nil {
		ids = []string{}
	}

	writeJSON(w, http.StatusOK, ids)
}

func (that *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if that.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoArchive)
		return
	}

	id := chi.URLParam(r, "id")

	summary, err := that.store.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrSeriesNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if err != nil {
		that.logger.Error("failed to get series", "series", id, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
