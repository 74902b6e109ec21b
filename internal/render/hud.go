package render

import (
	"strings"
	"unicode/utf8"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/hud"
)

const nitroBarWidth = 12

// MessageColor returns the palette index for a race log priority.
func MessageColor(p game.MsgPriority) uint8 {
	switch p {
	case game.MsgCritical:
		return ColorLightRed
	case game.MsgWarning:
		return ColorYellow
	case game.MsgBonus:
		return ColorLightGreen
	case game.MsgRecord:
		return ColorWhite
	default:
		return ColorCyan
	}
}

// DrawHUD draws the readouts, effects and race log of m over the scene.
func DrawHUD(buf *CellBuffer, m hud.Model) {
	buf.WriteString(1, 0, m.Score, ColorYellow, ColorBlack)
	buf.WriteString(buf.Cols-1-utf8.RuneCountInString(m.Speed), 0, m.Speed, ColorWhite, ColorBlack)
	for i := range m.MaxHealth {
		clr := uint8(ColorLightRed)
		if i >= m.Health {
			clr = ColorDarkGray
		}
		buf.Set(1+i, 1, GlyphHeart, clr, ColorBlack)
	}
	drawNitro(buf, buf.Cols-nitroBarWidth-12, 1, m)
	if m.ComboTimer != "" {
		buf.WriteString(buf.Cols-nitroBarWidth-12, 2, m.ComboTimer, ColorLightMagenta, ColorBlack)
	}

	top := buf.Rows / 4
	for i, line := range m.ComboLines {
		clr := uint8(ColorLightMagenta)
		if i > 0 {
			clr = ColorYellow
		}
		buf.WriteCentered(top+i, line, clr, ColorBlack)
	}

	for i, msg := range m.Log {
		row := buf.Rows - 1 - len(m.Log) + i
		buf.WriteString(1, row, msg.Text, MessageColor(msg.Priority), ColorBlack)
	}
	if m.Flash {
		drawFrame(buf, ColorRed)
	}
}

// drawNitro shows the boost meter as a bar with its label and seconds left.
func drawNitro(buf *CellBuffer, x, y int, m hud.Model) {
	labelClr, barClr := uint8(ColorLightCyan), uint8(ColorNitro)
	switch {
	case m.Recharging:
		labelClr, barClr = ColorLightRed, ColorRed
	case m.Boosting:
		labelClr = ColorWhite
	}
	n := buf.WriteString(x, y, m.BoostLabel, labelClr, ColorBlack)
	filled := int(m.BoostFraction*nitroBarWidth + 0.5)
	for i := range nitroBarWidth {
		if i < filled {
			buf.Set(x+n+1+i, y, GlyphFullBlock, barClr, ColorBlack)
		} else {
			buf.Set(x+n+1+i, y, GlyphLightShade, ColorDarkGray, ColorBlack)
		}
	}
	buf.WriteString(x+n+2+nitroBarWidth, y, m.BoostReadout, labelClr, ColorBlack)
}

func drawFrame(buf *CellBuffer, clr uint8) {
	for x := 0; x < buf.Cols; x++ {
		buf.SetBG(x, 0, clr)
		buf.SetBG(x, buf.Rows-1, clr)
	}
	for y := 0; y < buf.Rows; y++ {
		buf.SetBG(0, y, clr)
		buf.SetBG(buf.Cols-1, y, clr)
	}
}

// DrawOverlay draws the title box of the menu or game-over screen with the
// garage menu below it. hint is shown on the last row.
func DrawOverlay(buf *CellBuffer, m hud.Model, menu []hud.MenuLine, hint string) {
	if m.Title == "" {
		return
	}
	lines := []string{m.Title}
	if m.FinalScore != "" {
		lines = append(lines, m.FinalScore)
	}
	lines = append(lines, m.Best, "", "[ "+m.Prompt+" ]")

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	for _, l := range menu {
		width = max(width, utf8.RuneCountInString(l.Text)+2)
	}
	width += 4
	height := len(lines) + 2
	if len(menu) > 0 {
		height += len(menu) + 1
	}
	x0 := (buf.Cols - width) / 2
	y0 := (buf.Rows - height) / 2
	drawBox(buf, x0, y0, width, height, ColorLightMagenta)

	titleClr := uint8(ColorLightCyan)
	switch {
	case m.Title == "NEW HIGH SCORE!":
		titleClr = ColorYellow
	case m.GameOver:
		titleClr = ColorLightRed
	}
	row := y0 + 1
	for i, l := range lines {
		clr := uint8(ColorWhite)
		switch {
		case i == 0:
			clr = titleClr
		case strings.HasPrefix(l, "["):
			clr = ColorLightGreen
		}
		buf.WriteCentered(row, l, clr, ColorBlack)
		row++
	}
	if len(menu) > 0 {
		row++
		for _, l := range menu {
			clr, marker := uint8(ColorLightGray), "  "
			if l.Selected {
				clr, marker = ColorWhite, string(CP437ToUnicode[GlyphRight])+" "
			}
			buf.WriteString(x0+2, row, marker+l.Text, clr, ColorBlack)
			row++
		}
	}
	if hint != "" {
		buf.WriteCentered(buf.Rows-1, hint, ColorDarkGray, ColorBlack)
	}
}

// drawBox fills a rectangle and outlines it with double lines.
func drawBox(buf *CellBuffer, x, y, w, h int, clr uint8) {
	buf.Fill(x, y, w, h, ' ', ColorWhite, ColorBlack)
	for i := 1; i < w-1; i++ {
		buf.Set(x+i, y, 205, clr, ColorBlack)     // ═
		buf.Set(x+i, y+h-1, 205, clr, ColorBlack) // ═
	}
	for j := 1; j < h-1; j++ {
		buf.Set(x, y+j, 186, clr, ColorBlack)     // ║
		buf.Set(x+w-1, y+j, 186, clr, ColorBlack) // ║
	}
	buf.Set(x, y, 201, clr, ColorBlack)         // ╔
	buf.Set(x+w-1, y, 187, clr, ColorBlack)     // ╗
	buf.Set(x, y+h-1, 200, clr, ColorBlack)     // ╚
	buf.Set(x+w-1, y+h-1, 188, clr, ColorBlack) // ╝
}
