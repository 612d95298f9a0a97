package dto

import (
	"fmt"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

type ControlKind string

const (
	ControlToggle ControlKind = "toggle" // multi-select member
	ControlChoice ControlKind = "choice" // single-select option
	ControlSwitch ControlKind = "switch"
	ControlRange  ControlKind = "range"
)

// Control is one input on a widget's settings panel. Toggle, choice and
// switch controls carry the patch their activation applies; range controls
// build it from the value passed to SetValue.
type Control struct {
	Key      string       `json:"key"`
	Kind     ControlKind  `json:"kind"`
	Label    string       `json:"label"`
	Active   bool         `json:"active"`
	Disabled bool         `json:"disabled,omitempty"`
	Value    int          `json:"value"`
	Min      int          `json:"min,omitempty"`
	Max      int          `json:"max,omitempty"`
	Step     int          `json:"step,omitempty"`
	Patch    models.Patch `json:"patch,omitempty"`
}

// ConfigPanel is a widget's settings surface. OnChange receives every patch
// a control produces.
type ConfigPanel struct {
	WidgetID models.WidgetID          `json:"widgetId"`
	Title    string                   `json:"title"`
	Controls []Control                `json:"controls"`
	OnChange func(models.Patch) error `json:"-"`
}

// Activate applies the patch of the control at index i.
func (p ConfigPanel) Activate(i int) error {
	c, err := p.control(i)
	if err != nil {
		return err
	}
	if c.Kind == ControlRange {
		return errs.NewValidationError(fmt.Sprintf("control %q takes a value", c.Key))
	}
	if c.Disabled {
		return errs.NewValidationError(fmt.Sprintf("%s cannot be changed", c.Label))
	}
	return p.emit(c.Patch)
}

// SetValue sets the range control at index i to v.
func (p ConfigPanel) SetValue(i, v int) error {
	c, err := p.control(i)
	if err != nil {
		return err
	}
	if c.Kind != ControlRange {
		return errs.NewValidationError(fmt.Sprintf("control %q is not a range", c.Key))
	}
	if v < c.Min || v > c.Max {
		return errs.NewValidationError(fmt.Sprintf("%s must be between %d and %d", c.Key, c.Min, c.Max))
	}
	patch, err := models.NewPatch(map[string]any{c.Key: v})
	if err != nil {
		return err
	}
	return p.emit(patch)
}

func (p ConfigPanel) control(i int) (Control, error) {
	if i < 0 || i >= len(p.Controls) {
		return Control{}, errs.NewValidationError(fmt.Sprintf("no control at index %d", i))
	}
	return p.Controls[i], nil
}

func (p ConfigPanel) emit(patch models.Patch) error {
	if p.OnChange == nil {
		return nil
	}
	return p.OnChange(patch)
}
