package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/repository"
)

var errConnectionRefused = errors.New("connection refused")

type mockSeriesStore struct {
	mock.Mock
}

func (that *mockSeriesStore) CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error {
	args := that.Called(ctx, summary)
	return args.Error(0)
}

func (that *mockSeriesStore) GetByID(ctx context.Context, id string) (*entity.SeriesSummary, error) {
	args := that.Called(ctx, id)
	if summary, ok := args.Get(0).(*entity.SeriesSummary); ok {
		return summary, args.Error(1)
	}

	return nil, args.Error(1)
}

func (that *mockSeriesStore) ListIDs(ctx context.Context) ([]string, error) {
	args := that.Called(ctx)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}

	return nil, args.Error(1)
}

var defaults = AutoplayDefaults{
	StrategyA: bot.RandomName,
	StrategyB: bot.TacticsName,
	MaxTurns:  100,
	Starter:   entity.StarterFixed,
	P1Mark:    entity.PlayerX,
	P2Mark:    entity.PlayerO,
}

func newTestRouter(store seriesStore) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(logger, NewSeriesHandler(logger, store, defaults))
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec
}

func TestPing(t *testing.T) {
	rec := serve(newTestRouter(nil), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestSeriesHandler_Strategies(t *testing.T) {
	rec := serve(newTestRouter(nil), http.MethodGet, "/strategies", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&names))
	assert.Equal(t, bot.Names(), names)
}

func TestSeriesHandler_Autoplay(t *testing.T) {
	t.Run("Runs a series and archives it", func(t *testing.T) {
		// Given: an archive that accepts the summary
		store := &mockSeriesStore{}
		store.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(summary *entity.SeriesSummary) bool {
			return summary.TurnsPlayed == 50
		})).Return(nil).Once()

		// When: a series of 50 turns is requested
		rec := serve(newTestRouter(store), http.MethodPost, "/autoplay",
			`{"strategy_a":"corner","strategy_b":"center","max_turns":50,"starter":"alternate","seed":5}`)

		// Then: the summary comes back with 201
		require.Equal(t, http.StatusCreated, rec.Code)

		var summary entity.SeriesSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.NotEmpty(t, summary.ID)
		assert.Equal(t, bot.CornerName, summary.StrategyA)
		assert.Equal(t, bot.CenterName, summary.StrategyB)
		assert.Equal(t, entity.StarterAlternate, summary.Starter)
		assert.Equal(t, 50, summary.TurnsPlayed)
		assert.InDelta(t, float64(summary.GamesPlayed), summary.PointsA+summary.PointsB, 1e-9)
		store.AssertExpectations(t)
	})

	t.Run("Defaults fill an empty request", func(t *testing.T) {
		rec := serve(newTestRouter(nil), http.MethodPost, "/autoplay", `{}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var summary entity.SeriesSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, bot.RandomName, summary.StrategyA)
		assert.Equal(t, bot.TacticsName, summary.StrategyB)
		assert.Equal(t, defaults.MaxTurns, summary.TurnsPlayed)
		assert.Equal(t, entity.StarterFixed, summary.Starter)
	})

	t.Run("Bad input", func(t *testing.T) {
		for _, body := range []string{
			`not json`,
			`{"max_turns":-1}`,
			`{"max_turns":10001}`,
			`{"strategy_a":"minimax"}`,
			`{"starter":"loser"}`,
		} {
			rec := serve(newTestRouter(nil), http.MethodPost, "/autoplay", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Contains(t, rec.Body.String(), `"error"`, body)
		}
	})

	t.Run("Archive failure", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errConnectionRefused).Once()

		rec := serve(newTestRouter(store), http.MethodPost, "/autoplay", `{"max_turns":10}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), errConnectionRefused.Error())
	})
}

func TestSeriesHandler_List(t *testing.T) {
	t.Run("Lists archived ids", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("ListIDs", mock.Anything).Return([]string{"new", "old"}, nil).Once()

		rec := serve(newTestRouter(store), http.MethodGet, "/series", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["new","old"]`, rec.Body.String())
	})

	t.Run("Empty archive is an empty list", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("ListIDs", mock.Anything).Return(nil, nil).Once()

		rec := serve(newTestRouter(store), http.MethodGet, "/series", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("No archive configured", func(t *testing.T) {
		rec := serve(newTestRouter(nil), http.MethodGet, "/series", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSeriesHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("GetByID", mock.Anything, "123").Return(&entity.SeriesSummary{ID: "123", GamesPlayed: 7}, nil).Once()

		rec := serve(newTestRouter(store), http.MethodGet, "/series/123", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var summary entity.SeriesSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, "123", summary.ID)
		assert.Equal(t, 7, summary.GamesPlayed)
	})

	t.Run("Not found", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("GetByID", mock.Anything, "404").Return(nil, repository.ErrSeriesNotFound).Once()

		rec := serve(newTestRouter(store), http.MethodGet, "/series/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		store := &mockSeriesStore{}
		store.On("GetByID", mock.Anything, "123").Return(nil, errConnectionRefused).Once()

		rec := serve(newTestRouter(store), http.MethodGet, "/series/123", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("No archive configured", func(t *testing.T) {
		rec := serve(newTestRouter(nil), http.MethodGet, "/series/123", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
