package render

import (
	"image/color"

	"github.com/neon-racer/neon_racer/internal/world"
)

// CGA 16-color palette indices.
const (
	ColorBlack        = 0
	ColorBlue         = 1
	ColorGreen        = 2
	ColorCyan         = 3
	ColorRed          = 4
	ColorMagenta      = 5
	ColorBrown        = 6
	ColorLightGray    = 7
	ColorDarkGray     = 8
	ColorLightBlue    = 9
	ColorLightGreen   = 10
	ColorLightCyan    = 11
	ColorLightRed     = 12
	ColorLightMagenta = 13
	ColorYellow       = 14
	ColorWhite        = 15
)

// Road and sky colors, past the CGA range.
const (
	ColorAsphalt    = 16 + iota // city road
	ColorSandRoad               // desert road
	ColorDirtRoad               // jungle road
	ColorSlateRoad              // village road
	ColorPierRoad               // ocean road
	ColorAmberLine              // city centre line
	ColorPaleLine               // light line paint
	ColorFoamLine               // ocean centre line
	ColorPierEdge               // ocean outer edge
	ColorSkyCity
	ColorSkyDesert
	ColorSkyJungle
	ColorSkyVillage
	ColorSkyOcean
	ColorNitro // trail particles
	colorPaint // first player paint, world.PaintCount entries
)

// PaletteSize is the number of palette entries.
const PaletteSize = int(colorPaint) + world.PaintCount

// Palette holds the classic CGA 16-color palette followed by the road,
// sky and paint colors.
var Palette = [PaletteSize]color.RGBA{
	{0, 0, 0, 255},       // 0: Black
	{0, 0, 170, 255},     // 1: Blue
	{0, 170, 0, 255},     // 2: Green
	{0, 170, 170, 255},   // 3: Cyan
	{170, 0, 0, 255},     // 4: Red
	{170, 0, 170, 255},   // 5: Magenta
	{170, 85, 0, 255},    // 6: Brown
	{170, 170, 170, 255}, // 7: Light Gray
	{85, 85, 85, 255},    // 8: Dark Gray
	{85, 85, 255, 255},   // 9: Light Blue
	{85, 255, 85, 255},   // 10: Light Green
	{85, 255, 255, 255},  // 11: Light Cyan
	{255, 85, 85, 255},   // 12: Light Red
	{255, 85, 255, 255},  // 13: Light Magenta
	{255, 255, 85, 255},  // 14: Yellow
	{255, 255, 255, 255}, // 15: White

	ColorAsphalt:    rgb(0x333333),
	ColorSandRoad:   rgb(0x7f6f50),
	ColorDirtRoad:   rgb(0x4b3621),
	ColorSlateRoad:  rgb(0x596275),
	ColorPierRoad:   rgb(0x95a5a6),
	ColorAmberLine:  rgb(0xf1c40f),
	ColorPaleLine:   rgb(0xdcdde1),
	ColorFoamLine:   rgb(0xf5f6fa),
	ColorPierEdge:   rgb(0x7f8c8d),
	ColorSkyCity:    rgb(0x050510),
	ColorSkyDesert:  rgb(0x2c1e0f),
	ColorSkyJungle:  rgb(0x0a1a0a),
	ColorSkyVillage: rgb(0x1a1a2e),
	ColorSkyOcean:   rgb(0x0f1e2c),
	ColorNitro:      rgb(0x00ffff),
}

func init() {
	for i, c := range world.PaintRGB {
		Palette[int(colorPaint)+i] = rgb(c)
	}
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}

// PaintColor returns the palette index of a player paint.
func PaintColor(p world.Paint) uint8 {
	if int(p) >= world.PaintCount {
		p = world.PaintRed
	}
	return uint8(int(colorPaint) + int(p))
}

// BiomeColors is the road paint job and backdrop of a biome.
type BiomeColors struct {
	Sky         uint8
	Ground      uint8
	GroundFG    uint8 // texture glyph color on the ground
	Road        uint8
	Centre      uint8
	Edge        uint8
	HasEdge     bool
	Shoulder    uint8 // outermost strip; only drawn when HasShoulder
	HasShoulder bool
	Stars       bool // dots in the sky
}

var biomeColors = map[world.Biome]BiomeColors{
	world.BiomeCity: {
		Sky: ColorSkyCity, Ground: ColorBlack, GroundFG: ColorDarkGray,
		Road: ColorAsphalt, Centre: ColorAmberLine, Edge: ColorWhite, HasEdge: true,
		Stars: true,
	},
	world.BiomeDesert: {
		Sky: ColorSkyDesert, Ground: ColorBrown, GroundFG: ColorYellow,
		Road: ColorSandRoad, Centre: ColorPaleLine, Edge: ColorPaleLine, HasEdge: true,
	},
	world.BiomeJungle: {
		Sky: ColorSkyJungle, Ground: ColorGreen, GroundFG: ColorLightGreen,
		Road: ColorDirtRoad, Centre: ColorPaleLine,
	},
	world.BiomeVillage: {
		Sky: ColorSkyVillage, Ground: ColorGreen, GroundFG: ColorBrown,
		Road: ColorSlateRoad, Centre: ColorPaleLine, Edge: ColorWhite, HasEdge: true,
		Stars: true,
	},
	world.BiomeOcean: {
		Sky: ColorSkyOcean, Ground: ColorBlue, GroundFG: ColorLightBlue,
		Road: ColorPierRoad, Centre: ColorFoamLine, Edge: ColorWhite, HasEdge: true,
		Shoulder: ColorPierEdge, HasShoulder: true,
	},
}

// ColorsFor returns the colors of biome b, falling back to the city.
func ColorsFor(b world.Biome) BiomeColors {
	if c, ok := biomeColors[b]; ok {
		return c
	}
	return biomeColors[world.BiomeCity]
}
