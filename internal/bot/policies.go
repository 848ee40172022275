package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

// Random plays any empty cell with equal probability.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (that *Random) Name() string {
	return RandomName
}

func (that *Random) Select(board entity.Board, _, _ string) (int, error) {
	cell, ok := pick(that.rng, board.EmptyCells())
	if !ok {
		return 0, ErrNoEmptyCell
	}

	return cell, nil
}

// Center takes the center square while it is open, then plays rudiments,
// then a random cell.
type Center struct {
	fallback *Random
}

func NewCenter(rng *rand.Rand) *Center {
	return &Center{fallback: NewRandom(rng)}
}

func (that *Center) Name() string {
	return CenterName
}

func (that *Center) Select(board entity.Board, mark, opponent string) (int, error) {
	if board.IsEmpty(entity.Center) {
		return entity.Center, nil
	}

	if cell, ok := Rudiments(board, mark, opponent); ok {
		return cell, nil
	}

	return that.fallback.Select(board, mark, opponent)
}

// Corner plays rudiments, then any open corner, then a random cell.
type Corner struct {
	rng      *rand.Rand
	fallback *Random
}

func NewCorner(rng *rand.Rand) *Corner {
	return &Corner{rng: rng, fallback: NewRandom(rng)}
}

func (that *Corner) Name() string {
	return CornerName
}

func (that *Corner) Select(board entity.Board, mark, opponent string) (int, error) {
	if cell, ok := Rudiments(board, mark, opponent); ok {
		return cell, nil
	}

	if cell, ok := pick(that.rng, board.EmptyOf(entity.Corners)); ok {
		return cell, nil
	}

	return that.fallback.Select(board, mark, opponent)
}
