package world

import "strings"

// Biome is the environment theme of a run. It only changes what scenery
// spawns and how the road is painted.
type Biome uint8

const (
	BiomeCity    Biome = iota // night city: buildings and traffic lights
	BiomeVillage              // houses
	BiomeDesert               // cacti and rocks
	BiomeJungle               // trees
	BiomeOcean                // islands
)

// Biomes lists every biome in menu order.
var Biomes = []Biome{BiomeCity, BiomeVillage, BiomeDesert, BiomeJungle, BiomeOcean}

var biomeNames = [...]string{
	BiomeCity:    "city",
	BiomeVillage: "village",
	BiomeDesert:  "desert",
	BiomeJungle:  "jungle",
	BiomeOcean:   "ocean",
}

var biomeTitles = [...]string{
	BiomeCity:    "Night City",
	BiomeVillage: "Village",
	BiomeDesert:  "Desert",
	BiomeJungle:  "Jungle",
	BiomeOcean:   "Ocean",
}

// String returns the settings key of the biome ("city", "desert", ...).
func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// Title returns the menu label of the biome.
func (b Biome) Title() string {
	if int(b) < len(biomeTitles) {
		return biomeTitles[b]
	}
	return "Unknown"
}

// ParseBiome maps a settings key to a Biome. Unknown names report false.
func ParseBiome(name string) (Biome, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range biomeNames {
		if n == name {
			return Biome(i), true
		}
	}
	return BiomeCity, false
}

// Next returns the biome after b in menu order, wrapping around.
func (b Biome) Next() Biome {
	return Biome((int(b) + 1) % len(Biomes))
}

// SceneryKind identifies which sub-element of a scenery group is visible.
type SceneryKind uint8

const (
	SceneryTree SceneryKind = iota
	SceneryBuilding
	SceneryCactus
	SceneryRock
	SceneryHouse
	SceneryIsland
	SceneryTrafficLight
	sceneryKindCount
)

// SceneryKindCount is the number of sub-elements every scenery group carries.
const SceneryKindCount = int(sceneryKindCount)

var sceneryNames = [...]string{
	SceneryTree:         "tree",
	SceneryBuilding:     "building",
	SceneryCactus:       "cactus",
	SceneryRock:         "rock",
	SceneryHouse:        "house",
	SceneryIsland:       "island",
	SceneryTrafficLight: "trafficlight",
}

func (k SceneryKind) String() string {
	if int(k) < len(sceneryNames) {
		return sceneryNames[k]
	}
	return "unknown"
}

// SceneryChoices is the fixed biome -> scenery table. Each entry is picked
// with equal probability. Biomes missing from the table grow trees.
var SceneryChoices = map[Biome][]SceneryKind{
	BiomeCity:    {SceneryBuilding, SceneryTrafficLight},
	BiomeDesert:  {SceneryCactus, SceneryRock},
	BiomeOcean:   {SceneryIsland},
	BiomeVillage: {SceneryHouse},
	BiomeJungle:  {SceneryTree},
}

// PickScenery selects the scenery variant for a biome from a uniform roll in [0, 1).
func PickScenery(b Biome, roll float64) SceneryKind {
	choices := SceneryChoices[b]
	if len(choices) == 0 {
		return SceneryTree
	}
	idx := int(roll * float64(len(choices)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(choices) {
		idx = len(choices) - 1
	}
	return choices[idx]
}
