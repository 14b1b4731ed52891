package reels

import (
	"context"
	"fmt"
)

// scriptStep represents a single action in an autoplay script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an autoplay script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences spins, waits and screenshots across frames so a machine
// can be driven without input, e.g. for demos and visual regression runs.
//
// Supported actions:
//
//	spin        request a spin (retried each frame until accepted)
//	wait        pause for Frames frames
//	waitIdle    pause until the current spin has completed
//	screenshot  call the screenshot hook with Label
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// Screenshot is called for "screenshot" steps. Nil ignores them.
	Screenshot func(label string)
}

// LoadScript parses a JSON autoplay script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "spin", "wait", "waitIdle", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame. Call it once per frame, before
// Machine.Tick.
func (s *Script) Step(ctx context.Context, m *Machine) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	switch st.Action {
	case "spin":
		if !m.StartSpin(ctx) {
			return // still busy; try again next frame
		}
	case "waitIdle":
		if m.Running() {
			return
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if s.Screenshot != nil {
			s.Screenshot(st.Label)
		}
	}
	s.cursor++

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
