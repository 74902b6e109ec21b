package game

import "github.com/neon-racer/neon_racer/internal/world"

// Cue is a one-shot sound effect.
type Cue uint8

const (
	CueCrash    Cue = iota // falling square sweep
	CueNearMiss            // rising sine chirp
)

func (c Cue) String() string {
	if c == CueNearMiss {
		return "near-miss"
	}
	return "crash"
}

// Audio receives sound requests from the simulation. Implementations must
// not block the step.
type Audio interface {
	Cue(c Cue)
	Engine(speed float64, car world.CarType)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) Cue(Cue) {}
func (NopAudio) Engine(float64, world.CarType) {}

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	HighScore() int
	SetHighScore(score int)
}

// MemoryScores keeps the high score in memory only.
type MemoryScores struct {
	Best int
}

func (m *MemoryScores) HighScore() int { return m.Best }
func (m *MemoryScores) SetHighScore(score int) { m.Best = score }
