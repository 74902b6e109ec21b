// Package audio synthesizes the engine drone and the crash and near-miss
// cues with beep. Nothing is sampled; every sound is an oscillator.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

// SampleRate is the output rate of the synthesizer.
const SampleRate = beep.SampleRate(44100)

// Waveform selects the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
)

func sample(w Waveform, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// EngineVoice returns the drone pitch and waveform for a car at speed km/h.
func EngineVoice(speed float64, car world.CarType) (float64, Waveform) {
	switch car {
	case world.CarTruck:
		return 30 + 1.5*speed, WaveSquare
	case world.CarF1:
		return 100 + 4*speed, WaveSaw
	default:
		return 50 + 2.5*speed, WaveSaw
	}
}

const (
	engineGain   = 0.08
	wobbleDepth  = 5.0 // Hz
	wobbleRate   = 6.0 // Hz
	engineGlide  = 0.05
	cueCrashGain = 0.3
	cueMissGain  = 0.25
)

// engine is an endless drone. Its pitch glides toward the target set by
// the game so speed changes do not click.
type engine struct {
	sr     beep.SampleRate
	wave   Waveform
	freq   float64
	target float64
	phase  float64
	wobble float64
}

func (e *engine) Stream(samples [][2]float64) (int, bool) {
	glide := 1 - math.Exp(-1/(engineGlide*float64(e.sr)))
	for i := range samples {
		e.freq += (e.target - e.freq) * glide
		f := e.freq + wobbleDepth*math.Sin(2*math.Pi*e.wobble)
		v := engineGain * sample(e.wave, e.phase)
		samples[i][0] = v
		samples[i][1] = v

		e.phase += f / float64(e.sr)
		e.phase -= math.Floor(e.phase)
		e.wobble += wobbleRate / float64(e.sr)
		e.wobble -= math.Floor(e.wobble)
	}
	return len(samples), true
}

func (e *engine) Err() error { return nil }

// sweep is a one-shot tone whose pitch moves exponentially from f0 to f1
// over glide seconds while its gain decays to silence over decay seconds.
// It never ends by itself; wrap it in beep.Take.
type sweep struct {
	sr     beep.SampleRate
	wave   Waveform
	f0, f1 float64
	glide  float64
	decay  float64
	gain   float64
	pos    int
	phase  float64
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(s.pos) / float64(s.sr)
		k := min(t/s.glide, 1)
		f := s.f0 * math.Pow(s.f1/s.f0, k)
		env := s.gain * math.Max(1-t/s.decay, 0)
		v := env * sample(s.wave, s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += f / float64(s.sr)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// CueStreamer returns the finite sound of a cue.
func CueStreamer(sr beep.SampleRate, c game.Cue) beep.Streamer {
	switch c {
	case game.CueCrash:
		return beep.Take(sr.N(500*time.Millisecond), &sweep{
			sr: sr, wave: WaveSquare, f0: 100, f1: 10, glide: 0.5, decay: 0.5, gain: cueCrashGain,
		})
	default:
		return beep.Take(sr.N(300*time.Millisecond), &sweep{
			sr: sr, wave: WaveSine, f0: 200, f1: 800, glide: 0.1, decay: 0.3, gain: cueMissGain,
		})
	}
}

// Synth implements game.Audio. It builds its mixer at construction and
// only touches the speaker in Start, so it can be driven without a device.
type Synth struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	volume *effects.Volume
	drone  *beep.Ctrl
	engine *engine
	live   bool
}

// New creates a silent synthesizer with the engine drone paused.
func New() *Synth {
	s := &Synth{sr: SampleRate, mixer: &beep.Mixer{}}
	s.engine = &engine{sr: s.sr, wave: WaveSaw}
	s.drone = &beep.Ctrl{Streamer: s.engine, Paused: true}
	s.mixer.Add(s.drone)
	s.volume = &effects.Volume{Streamer: s.mixer, Base: 2}
	return s
}

// Start opens the audio device and begins playback.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		return nil
	}
	if err := speaker.Init(s.sr, s.sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	speaker.Play(s.volume)
	s.live = true
	return nil
}

// Close stops playback. The synthesizer can be started again.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		speaker.Clear()
		s.live = false
	}
}

// with runs fn while holding the speaker lock when playback is live.
func (s *Synth) with(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// Cue plays a one-shot sound over the drone.
func (s *Synth) Cue(c game.Cue) {
	st := CueStreamer(s.sr, c)
	s.with(func() { s.mixer.Add(st) })
}

// Engine retunes the drone. A stopped car pauses it.
func (s *Synth) Engine(speed float64, car world.CarType) {
	freq, wave := EngineVoice(speed, car)
	s.with(func() {
		s.drone.Paused = speed <= 0
		s.engine.target = freq
		s.engine.wave = wave
		if s.engine.freq == 0 {
			s.engine.freq = freq
		}
	})
}

// SetMuted silences or restores all output.
func (s *Synth) SetMuted(muted bool) {
	s.with(func() { s.volume.Silent = muted })
}

// Muted reports whether output is silenced.
func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume.Silent
}

// Output returns the final stream, for rendering without a device.
func (s *Synth) Output() beep.Streamer { return s.volume }

// Voices returns the number of streams in the mixer, drone included.
func (s *Synth) Voices() int {
	n := 0
	s.with(func() { n = s.mixer.Len() })
	return n
}
