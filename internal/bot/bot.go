// Package bot holds the move-selection policies a computer player uses.
// A policy only reads the board and proposes a cell; applying the move is
// left to the game controller.
package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

var (
	ErrNoEmptyCell     = errors.New("no empty cell to play")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

const (
	RandomName  = "random"
	CenterName  = "center"
	CornerName  = "corner"
	TacticsName = "tactics"
)

// Strategy picks the next cell for mark against opponent.
type Strategy interface {
	Name() string
	Select(board entity.Board, mark, opponent string) (int, error)
}

var constructors = map[string]func(rng *rand.Rand) Strategy{
	RandomName:  func(rng *rand.Rand) Strategy { return NewRandom(rng) },
	CenterName:  func(rng *rand.Rand) Strategy { return NewCenter(rng) },
	CornerName:  func(rng *rand.Rand) Strategy { return NewCorner(rng) },
	TacticsName: func(rng *rand.Rand) Strategy { return NewTactics(rng) },
}

// New builds the strategy registered under name. A nil rng is replaced by a
// time-seeded source.
func New(name string, rng *rand.Rand) (Strategy, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}

	return constructor(rng), nil
}

// Names lists the registered strategies in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint: gosec // game moves, not secrets
}

// pick returns a uniformly chosen element of cells.
func pick(rng *rand.Rand, cells []int) (int, bool) {
	if len(cells) == 0 {
		return 0, false
	}

	return cells[rng.Intn(len(cells))], true
}
