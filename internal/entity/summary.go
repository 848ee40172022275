package entity

import "time"

// SeriesSummary reports one autoplay run.
type SeriesSummary struct {
	ID          string        `json:"id"`
	StrategyA   string        `json:"strategy_a"`
	StrategyB   string        `json:"strategy_b"`
	MarkA       string        `json:"mark_a"`
	MarkB       string        `json:"mark_b"`
	Starter     StarterPolicy `json:"starter"`
	MaxTurns    int           `json:"max_turns"`
	TurnsPlayed int           `json:"turns_played"`
	GamesPlayed int           `json:"games_played"`
	PointsA     float64       `json:"points_a"`
	PointsB     float64       `json:"points_b"`
	WinsA       int           `json:"wins_a"`
	WinsB       int           `json:"wins_b"`
	Ties        int           `json:"ties"`
	Canceled    bool          `json:"canceled"`
	Abandoned   bool          `json:"abandoned"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
}
