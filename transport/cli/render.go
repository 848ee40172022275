package cli

import (
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

const rowSeparator = "---+---+---"

// Renderer draws a board as text. Each mark gets its own colour and the
// cells of a winning line are shown in reverse video.
type Renderer struct {
	profile termenv.Profile
	colors  map[string]termenv.Color
	hints   *KeyMap
}

type RendererOption func(*Renderer)

// WithKeyHints shows the selecting key in every empty cell.
func WithKeyHints(keys KeyMap) RendererOption {
	return func(that *Renderer) {
		that.hints = &keys
	}
}

func NewRenderer(profile termenv.Profile, p1Mark, p2Mark string, opts ...RendererOption) *Renderer {
	renderer := &Renderer{
		profile: profile,
		colors: map[string]termenv.Color{
			p1Mark: profile.Color("#1E90FF"),
			p2Mark: profile.Color("#FF8C00"),
		},
	}

	for _, opt := range opts {
		opt(renderer)
	}

	return renderer
}

func (that *Renderer) Board(board entity.Board, line *entity.WinningLine) string {
	var sb strings.Builder

	for row := 0; row < entity.BoardSize; row += 3 {
		if row > 0 {
			sb.WriteString(rowSeparator)
			sb.WriteString("\n")
		}

		cells := make([]string, 0, 3)
		for cell := row; cell < row+3; cell++ {
			cells = append(cells, that.cell(board, cell, line))
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Renderer) cell(board entity.Board, cell int, line *entity.WinningLine) string {
	mark := board[cell]
	if mark == entity.EmptyCell {
		if that.hints == nil {
			return "   "
		}

		return " " + that.profile.String(that.hints.Key(cell)).Faint().String() + " "
	}

	if line != nil && slices.Contains(line[:], cell) {
		return that.profile.String(" " + mark + " ").Foreground(that.colors[mark]).Bold().Reverse().String()
	}

	return " " + that.profile.String(mark).Foreground(that.colors[mark]).Bold().String() + " "
}
