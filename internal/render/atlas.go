package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

var ink = color.NRGBA{255, 255, 255, 255}

// AtlasRect returns the atlas region of a CP437 code.
func AtlasRect(code byte) image.Rectangle {
	x := int(code) % AtlasCols * GlyphWidth
	y := int(code) / AtlasCols * GlyphHeight
	return image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
}

// BuildAtlas rasterizes the CP437 glyphs used by the game into a white on
// transparent 256x256 image. ASCII comes from basicfont.Face7x13, line and
// block characters are drawn directly and the card suits, arrows and dots
// come from 8x8 bitmaps scaled up twice. Codes without artwork stay blank.
func BuildAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cell := AtlasRect(byte(code))
		r := CP437ToUnicode[code]

		if r >= 33 && r <= 126 {
			drawFontGlyph(img, face, cell.Min.X, cell.Min.Y, r)
			continue
		}
		if arms, ok := boxChars[byte(code)]; ok {
			drawBoxGlyph(img, cell.Min.X, cell.Min.Y, arms)
			continue
		}
		if bits, ok := symbolBitmaps[byte(code)]; ok {
			drawBitmapGlyph(img, cell.Min.X, cell.Min.Y, bits)
			continue
		}
		drawBlockGlyph(img, cell.Min.X, cell.Min.Y, byte(code))
	}
	return img
}

// drawFontGlyph renders a single ASCII character into the atlas.
// basicfont.Face7x13 glyphs are 7x13, centered in a 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

// Line weights of a box-drawing arm.
const (
	armNone = iota
	armSingle
	armDouble
)

// boxChars maps CP437 codes to the weight of their {left, right, top, bottom} arms.
var boxChars = map[byte][4]uint8{
	179: {0, 0, 1, 1}, // │
	180: {1, 0, 1, 1}, // ┤
	186: {0, 0, 2, 2}, // ║
	187: {2, 0, 0, 2}, // ╗
	188: {2, 0, 2, 0}, // ╝
	191: {1, 0, 0, 1}, // ┐
	192: {0, 1, 1, 0}, // └
	193: {1, 1, 1, 0}, // ┴
	194: {1, 1, 0, 1}, // ┬
	195: {0, 1, 1, 1}, // ├
	196: {1, 1, 0, 0}, // ─
	197: {1, 1, 1, 1}, // ┼
	200: {0, 2, 2, 0}, // ╚
	201: {0, 2, 0, 2}, // ╔
	205: {2, 2, 0, 0}, // ═
	215: {1, 1, 2, 2}, // ╫
	217: {1, 0, 1, 0}, // ┘
	218: {0, 1, 0, 1}, // ┌
}

// drawBoxGlyph draws a box-drawing character. Single lines are 2 pixels
// wide through the cell center; double lines are two such strokes 6 pixels apart.
func drawBoxGlyph(img *image.NRGBA, cellX, cellY int, arms [4]uint8) {
	cx := cellX + 7
	cy := cellY + 7
	offsets := func(weight uint8) []int {
		switch weight {
		case armSingle:
			return []int{0}
		case armDouble:
			return []int{-3, 3}
		}
		return nil
	}
	hline := func(x0, x1, y int) {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, ink)
			img.SetNRGBA(x, y+1, ink)
		}
	}
	vline := func(x, y0, y1 int) {
		for y := y0; y < y1; y++ {
			img.SetNRGBA(x, y, ink)
			img.SetNRGBA(x+1, y, ink)
		}
	}

	for _, o := range offsets(arms[0]) {
		hline(cellX, cx+2+max(o, 0), cy+o)
	}
	for _, o := range offsets(arms[1]) {
		hline(cx+min(o, 0), cellX+GlyphWidth, cy+o)
	}
	for _, o := range offsets(arms[2]) {
		vline(cx+o, cellY, cy+2+max(o, 0))
	}
	for _, o := range offsets(arms[3]) {
		vline(cx+o, cy+min(o, 0), cellY+GlyphHeight)
	}
}

// symbolBitmaps holds 8x8 artwork, one byte per row, most significant bit left.
var symbolBitmaps = map[byte][8]byte{
	GlyphHeart:      {0x6c, 0xfe, 0xfe, 0xfe, 0x7c, 0x38, 0x10, 0x00},
	GlyphDiamond:    {0x10, 0x38, 0x7c, 0xfe, 0x7c, 0x38, 0x10, 0x00},
	GlyphClub:       {0x38, 0x7c, 0x38, 0xfe, 0xfe, 0x7c, 0x38, 0x7c},
	GlyphSpade:      {0x10, 0x10, 0x38, 0x7c, 0xfe, 0x7c, 0x38, 0x7c},
	GlyphBullet:     {0x00, 0x00, 0x18, 0x3c, 0x3c, 0x18, 0x00, 0x00},
	GlyphCircle:     {0x00, 0x3c, 0x66, 0x42, 0x42, 0x66, 0x3c, 0x00},
	GlyphSun:        {0x99, 0x5a, 0x3c, 0xe7, 0xe7, 0x3c, 0x5a, 0x99},
	GlyphRight:      {0x80, 0xe0, 0xf8, 0xfe, 0xf8, 0xe0, 0x80, 0x00},
	GlyphLeft:       {0x02, 0x0e, 0x3e, 0xfe, 0x3e, 0x0e, 0x02, 0x00},
	GlyphUp:         {0x18, 0x3c, 0x7e, 0x18, 0x18, 0x18, 0x18, 0x00},
	GlyphTriangle:   {0x00, 0x18, 0x3c, 0x7e, 0xff, 0xff, 0x00, 0x00},
	GlyphTriangleDn: {0x00, 0xff, 0xff, 0x7e, 0x3c, 0x18, 0x00, 0x00},
	GlyphTripleBar:  {0x00, 0x7e, 0x00, 0x7e, 0x00, 0x7e, 0x00, 0x00},
	GlyphApprox:     {0x00, 0x76, 0xdc, 0x00, 0x76, 0xdc, 0x00, 0x00},
	GlyphDot:        {0x00, 0x00, 0x00, 0x18, 0x18, 0x00, 0x00, 0x00},
	GlyphSmallDot:   {0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00},
}

// drawBitmapGlyph scales an 8x8 bitmap to the 16x16 cell.
func drawBitmapGlyph(img *image.NRGBA, cellX, cellY int, bits [8]byte) {
	for row, b := range bits {
		for col := 0; col < 8; col++ {
			if b&(0x80>>col) == 0 {
				continue
			}
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					img.SetNRGBA(cellX+col*2+dx, cellY+row*2+dy, ink)
				}
			}
		}
	}
}

// fillRect sets every pixel of the cell-relative rectangle for which keep reports true.
func fillRect(img *image.NRGBA, cellX, cellY, x0, y0, x1, y1 int, keep func(x, y int) bool) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if keep == nil || keep(x, y) {
				img.SetNRGBA(cellX+x, cellY+y, ink)
			}
		}
	}
}

// drawBlockGlyph draws block elements and shading characters.
func drawBlockGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	const w, h = GlyphWidth, GlyphHeight
	switch code {
	case GlyphLightShade:
		fillRect(img, cellX, cellY, 0, 0, w, h, func(x, y int) bool { return (x+y)%4 == 0 })
	case GlyphMediumShade:
		fillRect(img, cellX, cellY, 0, 0, w, h, func(x, y int) bool { return (x+y)%2 == 0 })
	case GlyphDarkShade:
		fillRect(img, cellX, cellY, 0, 0, w, h, func(x, y int) bool { return (x+y)%4 != 0 })
	case GlyphFullBlock:
		fillRect(img, cellX, cellY, 0, 0, w, h, nil)
	case GlyphLowerHalf:
		fillRect(img, cellX, cellY, 0, h/2, w, h, nil)
	case GlyphLeftHalf:
		fillRect(img, cellX, cellY, 0, 0, w/2, h, nil)
	case GlyphRightHalf:
		fillRect(img, cellX, cellY, w/2, 0, w, h, nil)
	case GlyphUpperHalf:
		fillRect(img, cellX, cellY, 0, 0, w, h/2, nil)
	case GlyphSquare:
		fillRect(img, cellX, cellY, 4, 4, 12, 12, nil)
	case GlyphHouse:
		// roof, walls and floor of an open box
		fillRect(img, cellX, cellY, 3, 3, 13, 5, nil)
		fillRect(img, cellX, cellY, 3, 3, 5, 13, nil)
		fillRect(img, cellX, cellY, 11, 3, 13, 13, nil)
		fillRect(img, cellX, cellY, 3, 11, 13, 13, nil)
	}
}
