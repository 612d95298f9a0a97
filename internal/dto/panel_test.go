package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

func TestConfigPanel_ActivateEmitsPatch(t *testing.T) {
	var got models.Patch
	panel := ConfigPanel{
		Controls: []Control{{Key: "showStats", Kind: ControlSwitch, Patch: models.MustPatch(map[string]any{"showStats": false})}},
		OnChange: func(p models.Patch) error { got = p; return nil },
	}
	if err := panel.Activate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got["showStats"]) != "false" {
		t.Errorf("expected showStats=false patch, got %v", got)
	}
}

func TestConfigPanel_ActivateDisabled(t *testing.T) {
	called := false
	panel := ConfigPanel{
		Controls: []Control{{Key: "enabledMetrics", Kind: ControlToggle, Label: "Power", Disabled: true}},
		OnChange: func(models.Patch) error { called = true; return nil },
	}
	err := panel.Activate(0)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if called {
		t.Error("disabled control must not emit a patch")
	}
}

func TestConfigPanel_SetValue(t *testing.T) {
	var got models.Patch
	panel := ConfigPanel{
		Controls: []Control{{Key: "limit", Kind: ControlRange, Min: 1, Max: 4, Step: 1, Value: 4}},
		OnChange: func(p models.Patch) error { got = p; return nil },
	}
	if err := panel.SetValue(0, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got["limit"]) != "2" {
		t.Errorf("expected limit=2 patch, got %v", got)
	}
	if err := panel.SetValue(0, 5); err == nil {
		t.Error("expected error for out-of-range value")
	}
	if err := panel.Activate(0); err == nil {
		t.Error("expected error activating a range control")
	}
}

func TestConfigPanel_BadIndex(t *testing.T) {
	panel := ConfigPanel{}
	if err := panel.Activate(3); err == nil {
		t.Error("expected error for missing control")
	}
}

func TestControl_RangeValueZeroEncoded(t *testing.T) {
	data, err := json.Marshal(Control{Key: "limit", Kind: ControlRange, Value: 0, Min: 1, Max: 4, Step: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"value":0`) {
		t.Errorf("expected value 0 in %s", data)
	}
}
