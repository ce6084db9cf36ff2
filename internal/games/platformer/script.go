package platformer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ScriptStep holds a set of actions for a number of frames.
type ScriptStep struct {
	Frames  int      `yaml:"frames"`
	Actions []string `yaml:"actions"`
}

// Script is a scripted input sequence for headless runs.
//
// Example:
//
//	loop: true
//	steps:
//	  - frames: 30
//	    actions: [right]
//	  - frames: 1
//	    actions: [right, jump]
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
	Loop  bool         `yaml:"loop"`

	frames []core.InputFrame
}

// ParseScript parses and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("platformer: parse script: %w", err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DefaultScript runs right and jumps every half second.
func DefaultScript() *Script {
	s := &Script{
		Loop: true,
		Steps: []ScriptStep{
			{Frames: 29, Actions: []string{"right"}},
			{Frames: 1, Actions: []string{"right", "jump"}},
		},
	}
	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}

func (s *Script) compile() error {
	s.frames = s.frames[:0]
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("platformer: script step %d: frames must be positive", i+1)
		}
		frame := core.NewInputFrame()
		for _, name := range step.Actions {
			a, ok := scriptAction(name)
			if !ok {
				return fmt.Errorf("platformer: script step %d: unknown action %q", i+1, name)
			}
			frame.Set(a)
		}
		for n := 0; n < step.Frames; n++ {
			s.frames = append(s.frames, frame)
		}
	}
	return nil
}

// scriptAction accepts the game actions a script may use.
func scriptAction(name string) (core.Action, bool) {
	a, ok := core.ParseAction(name)
	if !ok {
		return core.ActionNone, false
	}
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionJump,
		core.ActionRestart, core.ActionNext, core.ActionPause, core.ActionNone:
		return a, true
	}
	return core.ActionNone, false
}

// Len returns the number of frames in one pass of the script.
func (s *Script) Len() int {
	return len(s.frames)
}

// Frame returns the input for frame i. Past the end the script repeats
// when looping, otherwise it yields empty frames.
func (s *Script) Frame(i int) core.InputFrame {
	n := len(s.frames)
	if n == 0 || i < 0 {
		return core.NewInputFrame()
	}
	if i >= n {
		if !s.Loop {
			return core.NewInputFrame()
		}
		i %= n
	}
	return s.frames[i]
}

// SimResult summarizes a headless run.
type SimResult struct {
	Ticks    int          `yaml:"ticks"`
	Events   []core.Event `yaml:"-"`
	Final    Snapshot     `yaml:"snapshot"`
	Hash     uint64       `yaml:"hash"`
	Complete int          `yaml:"levels_completed"`
	RunsLost int          `yaml:"runs_lost"`
}

// Simulate resets g and steps it ticks times with input from script.
func Simulate(g *Game, runtime core.RuntimeConfig, script *Script, ticks int) SimResult {
	if script == nil {
		script = DefaultScript()
	}
	g.Reset(runtime)

	var res SimResult
	for i := 0; i < ticks; i++ {
		step := g.Step(script.Frame(i))
		res.Ticks++
		for _, ev := range step.Events {
			res.Events = append(res.Events, ev)
			switch ev.Kind {
			case core.EventLevelComplete:
				res.Complete++
			case core.EventRunOver:
				res.RunsLost++
			}
		}
	}

	res.Final = g.Snapshot()
	res.Hash = res.Final.Hash()
	return res
}
