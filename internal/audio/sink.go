// Package audio plays the platformer's sound cues through the system
// speaker. Every cue is synthesized, so there are no audio files to ship.
// When no output device is available the sink stays silent.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Sink is the speaker-backed cue player.
// All methods are safe to call before Initialize, after Close, or when
// initialization failed; they do nothing in those cases.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	theme       *beep.Ctrl
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSink creates an uninitialized sink. Volume is clamped to [0, 1].
func NewSink(volume float64, logger *log.Logger) *Sink {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Sink{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the speaker. A failure leaves the sink silent and is
// returned only so callers can log it.
func (s *Sink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		s.warn("audio disabled", err)
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Enabled reports whether cues reach the speaker.
func (s *Sink) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Close silences everything. The speaker itself stays open since beep
// cannot re-init it.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	if s.theme != nil {
		s.theme.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()

	s.theme = nil
	s.initialized = false
}

// Jump plays the short rising jump chirp.
func (s *Sink) Jump() {
	s.play(beep.Take(sampleRate.N(time.Millisecond*140), NewSweepGenerator(sampleRate, 320, 760, 0.35*s.volume)))
}

// Coin plays the two-note pickup ding.
func (s *Sink) Coin() {
	s.play(NewMelodyGenerator(sampleRate, coinNotes, 0.3*s.volume))
}

// Win plays the level-complete fanfare.
func (s *Sink) Win() {
	s.play(NewMelodyGenerator(sampleRate, winNotes, 0.35*s.volume))
}

// StartTheme starts the looping background theme. Calling it while the
// theme is already playing does nothing.
func (s *Sink) StartTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	if s.theme != nil && !s.theme.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewLoopingMelody(sampleRate, themeNotes, 0.12*s.volume), Paused: false}
	speaker.Lock()
	s.mixer.Add(ctrl)
	speaker.Unlock()
	s.theme = ctrl
}

// StopTheme pauses the background theme.
func (s *Sink) StopTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == nil || !s.initialized {
		return
	}
	speaker.Lock()
	s.theme.Paused = true
	speaker.Unlock()
	s.theme = nil
}

func (s *Sink) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.volume == 0 {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Sink) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "err", err)
	}
}

// Nop is a sink that never makes a sound. Used for headless runs and
// SSH sessions, where the server's speaker is not the player's.
type Nop struct{}

func (Nop) Jump()       {}
func (Nop) Coin()       {}
func (Nop) Win()        {}
func (Nop) StartTheme() {}
func (Nop) StopTheme()  {}
