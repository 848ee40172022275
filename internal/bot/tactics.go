package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

// defense maps a cell to play onto the pair of opponent cells it answers.
type defense struct {
	play     int
	opponent [2]int
}

var (
	// orthoSides: opponent holds two sides that meet at a corner.
	orthoSides = []defense{
		{play: 0, opponent: [2]int{1, 3}},
		{play: 2, opponent: [2]int{1, 5}},
		{play: 6, opponent: [2]int{3, 7}},
		{play: 8, opponent: [2]int{5, 7}},
	}

	// metaPositions: opponent holds a corner and the far side next to the
	// corner being defended.
	metaPositions = []defense{
		{play: 0, opponent: [2]int{2, 3}},
		{play: 2, opponent: [2]int{0, 5}},
		{play: 6, opponent: [2]int{3, 8}},
		{play: 8, opponent: [2]int{5, 6}},
	}

	paraCorners = [][2]int{{0, 8}, {2, 6}}
)

// Tactics is a defensive heuristic for the side moving second. Rules run in
// a fixed priority order and the first one that yields a cell wins.
type Tactics struct {
	rng      *rand.Rand
	fallback *Random
}

func NewTactics(rng *rand.Rand) *Tactics {
	return &Tactics{rng: rng, fallback: NewRandom(rng)}
}

func (that *Tactics) Name() string {
	return TacticsName
}

func (that *Tactics) Select(board entity.Board, mark, opponent string) (int, error) {
	rules := []func(entity.Board, string, string) (int, bool){
		Rudiments,
		openingDefense,
		func(b entity.Board, _, opp string) (int, bool) { return tableDefense(b, opp, orthoSides) },
		func(b entity.Board, _, opp string) (int, bool) { return tableDefense(b, opp, metaPositions) },
		that.oppositeCornersDefense,
		that.cornerFill,
	}

	for _, rule := range rules {
		if cell, ok := rule(board, mark, opponent); ok {
			return cell, nil
		}
	}

	return that.fallback.Select(board, mark, opponent)
}

// openingDefense answers a side opening with the center.
func openingDefense(board entity.Board, _, opponent string) (int, bool) {
	if board.TurnCount() != 1 || !board.IsEmpty(entity.Center) {
		return 0, false
	}

	for _, side := range entity.Sides {
		if board.Has(side, opponent) {
			return entity.Center, true
		}
	}

	return 0, false
}

func tableDefense(board entity.Board, opponent string, table []defense) (int, bool) {
	for _, entry := range table {
		if board.IsEmpty(entry.play) &&
			board.Has(entry.opponent[0], opponent) &&
			board.Has(entry.opponent[1], opponent) {
			return entry.play, true
		}
	}

	return 0, false
}

// oppositeCornersDefense plays a side when the opponent holds a diagonal
// pair of corners; that fork cannot be blocked at a single point.
func (that *Tactics) oppositeCornersDefense(board entity.Board, _, opponent string) (int, bool) {
	for _, pair := range paraCorners {
		if board.Has(pair[0], opponent) && board.Has(pair[1], opponent) {
			return pick(that.rng, board.EmptyOf(entity.Sides))
		}
	}

	return 0, false
}

func (that *Tactics) cornerFill(board entity.Board, _, _ string) (int, bool) {
	return pick(that.rng, board.EmptyOf(entity.Corners))
}
