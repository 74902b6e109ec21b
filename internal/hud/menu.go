package hud

import (
	"fmt"

	"github.com/neon-racer/neon_racer/internal/profile"
)

// MenuItem is one row of the garage menu.
type MenuItem int

const (
	ItemCar MenuItem = iota
	ItemPaint
	ItemBiome
	ItemControl
	ItemSound
	menuItemCount
)

var menuLabels = [...]string{
	ItemCar:     "CAR",
	ItemPaint:   "PAINT",
	ItemBiome:   "ROAD",
	ItemControl: "STEERING",
	ItemSound:   "SOUND",
}

// Menu is the settings list shown before a run.
type Menu struct {
	Cursor MenuItem
}

// Up moves the cursor to the previous row, wrapping around.
func (m *Menu) Up() {
	m.Cursor = (m.Cursor + menuItemCount - 1) % menuItemCount
}

// Down moves the cursor to the next row, wrapping around.
func (m *Menu) Down() {
	m.Cursor = (m.Cursor + 1) % menuItemCount
}

// Cycle advances the setting under the cursor and reports which row changed.
func (m *Menu) Cycle(s *profile.Settings) MenuItem {
	switch m.Cursor {
	case ItemCar:
		s.Car = s.Car.Next()
	case ItemPaint:
		s.Paint = s.Paint.Next()
	case ItemBiome:
		s.Biome = s.Biome.Next()
	case ItemControl:
		s.Control = s.Control.Next()
	case ItemSound:
		s.Muted = !s.Muted
	}
	return m.Cursor
}

// MenuLine is one formatted menu row.
type MenuLine struct {
	Text     string
	Selected bool
}

// Lines formats every row with its current value.
func (m *Menu) Lines(s profile.Settings) []MenuLine {
	values := [...]string{
		ItemCar:     s.Car.Title(),
		ItemPaint:   s.Paint.String(),
		ItemBiome:   s.Biome.Title(),
		ItemControl: s.Control.String(),
		ItemSound:   "on",
	}
	if s.Muted {
		values[ItemSound] = "off"
	}
	lines := make([]MenuLine, menuItemCount)
	for i := range lines {
		lines[i] = MenuLine{
			Text:     fmt.Sprintf("%-9s %s", menuLabels[i], values[i]),
			Selected: MenuItem(i) == m.Cursor,
		}
	}
	return lines
}
