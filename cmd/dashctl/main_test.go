package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

func TestBuildPatch(t *testing.T) {
	patch, err := buildPatch([]string{
		"limit=2",
		"timeRange=This Month",
		`enabledMetrics=["Power","VFX"]`,
		"showStats=false",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"limit":          "2",
		"timeRange":      `"This Month"`,
		"enabledMetrics": `["Power","VFX"]`,
		"showStats":      "false",
	}
	if len(patch) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(patch))
	}
	for k, v := range want {
		if string(patch[k]) != v {
			t.Errorf("%s: expected %s, got %s", k, v, patch[k])
		}
	}
}

func TestBuildPatch_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"missing equals", []string{"limit"}},
		{"empty key", []string{"=2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildPatch(tt.args)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestParseMoveArgs(t *testing.T) {
	index, dir, err := parseMoveArgs([]string{"2", "up"})
	if err != nil || index != 2 || dir != models.DirectionUp {
		t.Errorf("unexpected result %d %q %v", index, dir, err)
	}
	if _, _, err := parseMoveArgs([]string{"two", "up"}); err == nil {
		t.Error("expected error for non-integer index")
	}
	if _, _, err := parseMoveArgs([]string{"1", "sideways"}); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func runCLI(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCMD()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.Bytes(), err
}

func TestCLI_PersistsAcrossInvocations(t *testing.T) {
	t.Setenv("STOREBACKEND", "file")
	t.Setenv("STOREDIR", t.TempDir())

	if _, err := runCLI(t, "toggle", "rewards_card"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := runCLI(t, "patch", "critique_panel", "limit=2"); err != nil {
		t.Fatalf("patch: %v", err)
	}

	out, err := runCLI(t, "visible")
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	var view struct {
		Widgets []struct {
			ID       models.WidgetID `json:"id"`
			Subtitle string          `json:"subtitle"`
		} `json:"widgets"`
	}
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(view.Widgets) != 3 {
		t.Fatalf("expected 3 visible widgets, got %d", len(view.Widgets))
	}
	last := view.Widgets[2]
	if last.ID != models.WidgetCritiquePanel || last.Subtitle != "Latest 2 Reviews" {
		t.Errorf("unexpected critique widget %+v", last)
	}
}

func TestCLI_PerUserDashboards(t *testing.T) {
	t.Setenv("STOREBACKEND", "file")
	t.Setenv("STOREDIR", t.TempDir())

	if _, err := runCLI(t, "move", "0", "down", "--user", "alice"); err != nil {
		t.Fatalf("move: %v", err)
	}

	out, err := runCLI(t, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var view dto.ManageView
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if view.Rows[0].ID != models.WidgetSkillsRadar {
		t.Errorf("another user's move leaked into the local dashboard: %+v", view.Rows[0])
	}
}

func TestCLI_RejectedPatch(t *testing.T) {
	t.Setenv("STOREBACKEND", "memory")

	_, err := runCLI(t, "patch", "critique_panel", "limit=9")
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestCLI_Catalog(t *testing.T) {
	t.Setenv("STOREBACKEND", "memory")

	out, err := runCLI(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	var entries []struct {
		ID models.WidgetID `json:"id"`
	}
	if err := json.Unmarshal(out, &entries); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 widget types, got %d", len(entries))
	}
}
