package beanfall

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action in a scene script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Section  string  `json:"section,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// sceneScript is the top-level JSON structure of a script file.
type sceneScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script actions.
const (
	ActionScroll     = "scroll"
	ActionScrollTo   = "scrollTo"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionUnmount    = "unmount"
	ActionRemount    = "remount"
	ActionActivate   = "activate"
)

// ScriptRunner plays a scripted sequence of page scrolls, waits, lifecycle
// changes and screenshots across frames, for automated visual checks of a
// page with a mounted SceneHost.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON scene script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script sceneScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case ActionScroll, ActionWait, ActionScreenshot,
			ActionUnmount, ActionRemount, ActionActivate:
		case ActionScrollTo:
			if st.Section == "" && st.Y < 0 {
				return nil, fmt.Errorf("parse script: step %d: negative scroll target %g", i, st.Y)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// LoadScriptFile reads and parses a JSON scene script file.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return LoadScript(data)
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame. Call it once per Update, before
// page.Update. A smooth scroll in progress holds the script until it ends.
func (r *ScriptRunner) Step(page *Page, host *SceneHost) error {
	if r.done {
		return nil
	}
	if page.Scrolling() {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case ActionScroll:
		page.ScrollBy(st.DY)
	case ActionScrollTo:
		if st.Section != "" {
			if !page.ScrollToSection(st.Section, st.Duration) {
				err = fmt.Errorf("script step %d: no section %q", r.cursor-1, st.Section)
			}
		} else {
			page.ScrollTo(st.Y, st.Duration)
		}
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case ActionScreenshot:
		host.Screenshot(st.Label)
	case ActionUnmount:
		host.Unmount()
	case ActionRemount:
		host.Unmount()
		err = host.Mount()
	case ActionActivate:
		host.Activate()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !page.Scrolling() {
		r.done = true
	}
	return err
}
