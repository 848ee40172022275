package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

const (
	seriesKeyPrefix = "series:"
	seriesIndexKey  = "series:index"
)

var ErrSeriesNotFound = errors.New("series not found")

type SeriesRepository interface {
	CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error
	GetByID(ctx context.Context, id string) (*entity.SeriesSummary, error)
	DeleteByID(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type dbSeries struct {
	client *redis.Client
}

func NewSeriesRepository(client *redis.Client) SeriesRepository {
	return &dbSeries{
		client: client,
	}
}

// CreateOrUpdate stores the summary and indexes it by finish time.
func (that *dbSeries) CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("could not marshal series: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, seriesKeyPrefix+summary.ID, summaryJSON, 0)
		pipe.ZAdd(ctx, seriesIndexKey, redis.Z{
			Score:  float64(summary.FinishedAt.UnixMilli()),
			Member: summary.ID,
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set series: %w", err)
	}

	return nil
}

func (that *dbSeries) GetByID(ctx context.Context, id string) (*entity.SeriesSummary, error) {
	response, err := that.client.Get(ctx, seriesKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.SeriesSummary{}, ErrSeriesNotFound
	}

	if err != nil {
		return &entity.SeriesSummary{}, fmt.Errorf("failed to get series by id: %w", err)
	}

	var summary entity.SeriesSummary
	if err = json.Unmarshal([]byte(response), &summary); err != nil {
		return &entity.SeriesSummary{}, fmt.Errorf("failed to unmarshal series: %w", err)
	}

	return &summary, nil
}

func (that *dbSeries) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, seriesKeyPrefix+id)
		pipe.ZRem(ctx, seriesIndexKey, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete series by id: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrSeriesNotFound
	}

	return nil
}

// ListIDs returns archived series ids, most recently finished first.
func (that *dbSeries) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := that.client.ZRevRange(ctx, seriesIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	return ids, nil
}
