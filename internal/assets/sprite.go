// Package assets loads the character-art sprites drawn by the terminal
// renderer. Sprites are small YAML files; a default set is embedded in the
// binary and an on-disk directory may override individual files.
package assets

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

var (
	// ErrNotFound is returned when no provider layer has the requested sprite.
	ErrNotFound = errors.New("assets: sprite not found")
	// ErrInvalidSprite is returned for sprite files that decode but cannot be drawn.
	ErrInvalidSprite = errors.New("assets: invalid sprite")
)

// Sprite is a decoded image: a grid of runes in one color.
// Spaces are transparent.
type Sprite struct {
	Name  string
	Color core.Color
	Rows  [][]rune
}

type spriteFile struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Rows  []string `yaml:"rows"`
}

// Width returns the widest row in runes.
func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return len(s.Rows)
}

// Sample returns the rune at normalized coordinates u, v in [0, 1).
// Flip mirrors the sprite horizontally. Out-of-range samples and short
// rows yield a transparent space.
func (s *Sprite) Sample(u, v float64, flip bool) rune {
	h, w := s.Height(), s.Width()
	if h == 0 || w == 0 || u < 0 || v < 0 || u >= 1 || v >= 1 {
		return ' '
	}
	if flip {
		u = 1 - u - 1e-9
	}
	row := s.Rows[int(v*float64(h))]
	col := int(u * float64(w))
	if col >= len(row) {
		return ' '
	}
	return mirrorRune(row[col], flip)
}

// mirrorRune swaps direction-sensitive glyphs so flipped art still reads right.
func mirrorRune(r rune, flip bool) rune {
	if !flip {
		return r
	}
	switch r {
	case '/':
		return '\\'
	case '\\':
		return '/'
	case '<':
		return '>'
	case '>':
		return '<'
	case '(':
		return ')'
	case ')':
		return '('
	}
	return r
}

// ParseSprite decodes a YAML sprite file.
func ParseSprite(data []byte) (*Sprite, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSprite, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSprite)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrInvalidSprite, f.Name)
	}
	color, ok := core.ParseColor(f.Color)
	if !ok {
		return nil, fmt.Errorf("%w: %s has unknown color %q", ErrInvalidSprite, f.Name, f.Color)
	}

	s := &Sprite{Name: f.Name, Color: color, Rows: make([][]rune, len(f.Rows))}
	for i, row := range f.Rows {
		if !utf8.ValidString(row) {
			return nil, fmt.Errorf("%w: %s row %d is not UTF-8", ErrInvalidSprite, f.Name, i)
		}
		s.Rows[i] = []rune(row)
	}
	if s.Width() == 0 {
		return nil, fmt.Errorf("%w: %s rows are empty", ErrInvalidSprite, f.Name)
	}
	return s, nil
}
