package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note is one step of a melody. Freq 0 is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

var (
	coinNotes = []Note{
		{988, 70 * time.Millisecond},  // B5
		{1319, 180 * time.Millisecond}, // E6
	}
	winNotes = []Note{
		{523, 120 * time.Millisecond}, // C5
		{659, 120 * time.Millisecond}, // E5
		{784, 120 * time.Millisecond}, // G5
		{1047, 360 * time.Millisecond},
	}
	themeNotes = []Note{
		{262, 200 * time.Millisecond},
		{330, 200 * time.Millisecond},
		{392, 200 * time.Millisecond},
		{330, 200 * time.Millisecond},
		{349, 200 * time.Millisecond},
		{440, 200 * time.Millisecond},
		{392, 400 * time.Millisecond},
		{0, 200 * time.Millisecond},
		{294, 200 * time.Millisecond},
		{349, 200 * time.Millisecond},
		{440, 200 * time.Millisecond},
		{349, 200 * time.Millisecond},
		{330, 200 * time.Millisecond},
		{294, 200 * time.Millisecond},
		{262, 400 * time.Millisecond},
		{0, 200 * time.Millisecond},
	}
)

// SweepGenerator is a sine tone gliding from one frequency to another.
// It never ends on its own; wrap it in beep.Take.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	amp      float64
	phase    float64
	pos      int
	length   int
}

// NewSweepGenerator creates a sweep that reaches `to` after 150ms.
func NewSweepGenerator(sr beep.SampleRate, from, to, amp float64) *SweepGenerator {
	return &SweepGenerator{
		sr:     sr,
		from:   from,
		to:     to,
		amp:    amp,
		length: sr.N(time.Millisecond * 150),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress

		// Short attack, linear release
		env := math.Min(float64(g.pos)/float64(g.sr.N(time.Millisecond*5)), 1) * (1 - 0.8*progress)

		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := g.amp * env * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// MelodyGenerator plays a note sequence with a soft square voice.
// It finishes after the last note unless it loops.
type MelodyGenerator struct {
	sr     beep.SampleRate
	notes  []Note
	amp    float64
	loop   bool
	index  int
	pos    int // Position inside the current note
	length int // Current note length in samples
	phase  float64
}

// NewMelodyGenerator creates a generator for the given notes.
func NewMelodyGenerator(sr beep.SampleRate, notes []Note, amp float64) *MelodyGenerator {
	g := &MelodyGenerator{sr: sr, notes: notes, amp: amp}
	if len(notes) > 0 {
		g.length = sr.N(notes[0].Duration)
	}
	return g
}

// NewLoopingMelody creates a generator that restarts after the last note forever.
func NewLoopingMelody(sr beep.SampleRate, notes []Note, amp float64) *MelodyGenerator {
	g := NewMelodyGenerator(sr, notes, amp)
	g.loop = len(notes) > 0
	return g
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if g.index >= len(g.notes) {
			break
		}
		if g.pos >= g.length {
			g.index++
			g.pos = 0
			if g.loop && g.index >= len(g.notes) {
				g.index = 0
			}
			if g.index < len(g.notes) {
				g.length = g.sr.N(g.notes[g.index].Duration)
			}
			continue
		}

		note := g.notes[g.index]
		sample := 0.0
		if note.Freq > 0 {
			g.phase += 2 * math.Pi * note.Freq / float64(g.sr)
			// Square wave softened with its fundamental
			square := 1.0
			if math.Sin(g.phase) < 0 {
				square = -1.0
			}
			sample = 0.5*square + 0.5*math.Sin(g.phase)

			// Fade the tail of each note to avoid clicks
			remaining := float64(g.length-g.pos) / float64(g.sr.N(time.Millisecond*20))
			sample *= g.amp * math.Min(remaining, 1)
		}

		samples[n][0] = sample
		samples[n][1] = sample
		g.pos++
		n++
	}
	return n, n > 0
}

func (g *MelodyGenerator) Err() error {
	return nil
}

// Len returns the total melody length in samples.
func (g *MelodyGenerator) Len() int {
	total := 0
	for _, note := range g.notes {
		total += g.sr.N(note.Duration)
	}
	return total
}
