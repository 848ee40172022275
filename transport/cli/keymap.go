package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

const (
	// keypadDigits lists the key for each cell in row-major order, laid out like a numeric keypad.
	keypadDigits = "789456123"
	indexDigits  = "012345678"
	letterKeys   = "qweasdzxc"
)

var ErrUnknownKey = errors.New("unknown key")

// KeyMap translates a typed key into a board cell. Letters always work;
// digits follow either the keypad layout or plain cell indices.
type KeyMap struct {
	digits string
}

func KeypadKeyMap() KeyMap {
	return KeyMap{digits: keypadDigits}
}

func IndexKeyMap() KeyMap {
	return KeyMap{digits: indexDigits}
}

func (that KeyMap) Cell(input string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if len(key) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, input)
	}

	if cell := strings.Index(that.digits, key); cell >= 0 {
		return cell, nil
	}

	if cell := strings.Index(letterKeys, key); cell >= 0 {
		return cell, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, input)
}

// Key returns the digit that selects cell.
func (that KeyMap) Key(cell int) string {
	if cell < 0 || cell >= entity.BoardSize {
		return "?"
	}

	return that.digits[cell : cell+1]
}

// Legend is the digit layout as three rows.
func (that KeyMap) Legend() string {
	rows := make([]string, 0, 3)
	for row := 0; row < entity.BoardSize; row += 3 {
		rows = append(rows, strings.Join(strings.Split(that.digits[row:row+3], ""), " "))
	}

	return strings.Join(rows, "\n")
}
