package render

// Code page 437 glyph codes used by the road and HUD drawing.
const (
	GlyphHeart       = 3
	GlyphDiamond     = 4
	GlyphClub        = 5
	GlyphSpade       = 6
	GlyphBullet      = 7
	GlyphCircle      = 9
	GlyphSun         = 15
	GlyphRight       = 16
	GlyphLeft        = 17
	GlyphUp          = 24
	GlyphTriangle    = 30
	GlyphTriangleDn  = 31
	GlyphHouse       = 127
	GlyphLightShade  = 176
	GlyphMediumShade = 177
	GlyphDarkShade   = 178
	GlyphVLine       = 179
	GlyphHLine       = 196
	GlyphFullBlock   = 219
	GlyphLowerHalf   = 220
	GlyphLeftHalf    = 221
	GlyphRightHalf   = 222
	GlyphUpperHalf   = 223
	GlyphTripleBar   = 240
	GlyphApprox      = 247
	GlyphDot         = 249
	GlyphSmallDot    = 250
	GlyphSquare      = 254
)

// Printable renderings of codes 0-31 and 128-255.
const (
	cp437Low  = "\u0000☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼"
	cp437High = "ÇüéâäàåçêëèïîìÄÅÉæÆôöòûùÿÖÜ¢£¥₧ƒáíóúñÑªº¿⌐¬½¼¡«»" +
		"░▒▓│┤╡╢╖╕╣║╗╝╜╛┐└┴┬├─┼╞╟╚╔╩╦╠═╬╧╨╤╥╙╘╒╓╫╪┘┌█▄▌▐▀" +
		"αßΓπΣσµτΦΘΩδ∞φε∩≡±≥≤⌠⌡÷≈°∙·√ⁿ²■\u00a0"
)

// CP437ToUnicode maps every code page 437 byte to the rune it displays as.
var CP437ToUnicode [256]rune

var unicodeToCP437 = make(map[rune]byte, 256)

func init() {
	i := 0
	for _, r := range cp437Low {
		CP437ToUnicode[i] = r
		i++
	}
	for c := 32; c < 127; c++ {
		CP437ToUnicode[c] = rune(c)
	}
	CP437ToUnicode[127] = '⌂'
	i = 128
	for _, r := range cp437High {
		CP437ToUnicode[i] = r
		i++
	}
	for code := 255; code >= 0; code-- {
		unicodeToCP437[CP437ToUnicode[code]] = byte(code)
	}
}

// ToCP437 returns the code page 437 byte that displays r.
func ToCP437(r rune) (byte, bool) {
	if r >= 32 && r < 127 {
		return byte(r), true
	}
	b, ok := unicodeToCP437[r]
	return b, ok
}
