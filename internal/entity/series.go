package entity

import (
	"errors"
	"fmt"
)

type Side int

const (
	SideA Side = iota
	SideB
)

func (that Side) Other() Side {
	if that == SideA {
		return SideB
	}
	return SideA
}

func (that Side) String() string {
	if that == SideA {
		return "A"
	}
	return "B"
}

type StarterPolicy string

const (
	// StarterFixed lets side A open every game.
	StarterFixed StarterPolicy = "fixed"
	// StarterAlternate lets side A open even-numbered games and side B odd ones.
	StarterAlternate StarterPolicy = "alternate"
)

var ErrUnknownStarter = errors.New("unknown starter policy")

func ParseStarterPolicy(value string) (StarterPolicy, error) {
	switch policy := StarterPolicy(value); policy {
	case StarterFixed, StarterAlternate:
		return policy, nil
	case "":
		return StarterFixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStarter, value)
	}
}

// Series is the cross-game tally. Ties award half a point to each side.
type Series struct {
	Policy      StarterPolicy `json:"starter"`
	PointsA     float64       `json:"points_a"`
	PointsB     float64       `json:"points_b"`
	WinsA       int           `json:"wins_a"`
	WinsB       int           `json:"wins_b"`
	Ties        int           `json:"ties"`
	GamesPlayed int           `json:"games_played"`
}

func NewSeries(policy StarterPolicy) *Series {
	return &Series{Policy: policy}
}

// NextStarter applies the starter policy to the number of games played so far.
func (that *Series) NextStarter() Side {
	if that.Policy == StarterAlternate && that.GamesPlayed%2 == 1 {
		return SideB
	}
	return SideA
}

// Record scores one finished game; winner is the side that completed a line
// and is ignored for ties.
func (that *Series) Record(outcome Outcome, winner Side) {
	switch {
	case outcome.IsTie():
		that.PointsA += 0.5
		that.PointsB += 0.5
		that.Ties++
	case outcome.IsWin() && winner == SideA:
		that.PointsA++
		that.WinsA++
	case outcome.IsWin():
		that.PointsB++
		that.WinsB++
	default:
		return
	}

	that.GamesPlayed++
}
