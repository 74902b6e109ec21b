package render

import "unicode/utf8"

// Cell represents a single character cell on screen.
type Cell struct {
	Glyph byte  // CP437 code (0-255)
	FG    uint8 // Foreground palette index
	BG    uint8 // Background palette index
}

// CellBuffer is a 2D grid of character cells. Both clients draw it: the
// desktop one through a glyph atlas, the terminal one cell by cell.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a new cell buffer filled with blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

// Resize changes the dimensions and clears the buffer.
func (b *CellBuffer) Resize(cols, rows int) {
	if cols*rows > cap(b.Cells) {
		b.Cells = make([]Cell, cols*rows)
	}
	b.Cols, b.Rows = cols, rows
	b.Cells = b.Cells[:cols*rows]
	b.Clear()
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// SetGlyph writes a glyph at (x, y) over the existing background.
func (b *CellBuffer) SetGlyph(x, y int, glyph byte, fg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		c := &b.Cells[y*b.Cols+x]
		c.Glyph = glyph
		c.FG = fg
	}
}

// SetBG recolors the background at (x, y), keeping the glyph.
func (b *CellBuffer) SetBG(x, y int, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x].BG = bg
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a blank cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets all cells to blank (space on black).
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}
	}
}

// Fill paints a rectangle with one cell value, clipped to the buffer.
func (b *CellBuffer) Fill(x, y, w, h int, glyph byte, fg, bg uint8) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, glyph, fg, bg)
		}
	}
}

// WriteString writes a string starting at (x, y). Each rune occupies one
// cell; runes without a CP437 glyph are shown as '?'.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	offset := 0
	for _, ch := range s {
		code, ok := ToCP437(ch)
		if !ok {
			code = '?'
		}
		b.Set(x+offset, y, code, fg, bg)
		offset++
	}
	return offset
}

// WriteCentered writes s centered on row y.
func (b *CellBuffer) WriteCentered(y int, s string, fg, bg uint8) {
	b.WriteString((b.Cols-utf8.RuneCountInString(s))/2, y, s, fg, bg)
}
