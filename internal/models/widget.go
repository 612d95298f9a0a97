package models

import (
	"encoding/json"
	"fmt"
)

// WidgetID identifies a widget kind. The set of known ids is closed and owned
// by the registry; ids outside that set only appear through stale persisted
// state and are carried through untouched.
type WidgetID string

const (
	WidgetSkillsRadar   WidgetID = "skills_radar"
	WidgetRewardsCard   WidgetID = "rewards_card"
	WidgetStudentList   WidgetID = "student_list"
	WidgetCritiquePanel WidgetID = "critique_panel"
)

// KnownWidgetIDs lists the known ids in registry-declared order.
var KnownWidgetIDs = []WidgetID{
	WidgetSkillsRadar,
	WidgetRewardsCard,
	WidgetStudentList,
	WidgetCritiquePanel,
}

// IsKnown reports whether id is one of the known widget kinds.
func (id WidgetID) IsKnown() bool {
	for _, k := range KnownWidgetIDs {
		if k == id {
			return true
		}
	}
	return false
}

// WidgetEntry is one configured widget instance. Its position in the
// dashboard's entry sequence is its display rank.
type WidgetEntry struct {
	ID       WidgetID `json:"id"`
	Label    string   `json:"label"`
	Visible  bool     `json:"visible"`
	Settings Settings `json:"settings"`
}

type widgetEntryWire struct {
	ID       WidgetID        `json:"id"`
	Label    string          `json:"label"`
	Visible  bool            `json:"visible"`
	Settings json.RawMessage `json:"settings"`
}

// UnmarshalJSON decodes the entry and dispatches its settings to the variant
// matching the entry id.
func (e *WidgetEntry) UnmarshalJSON(data []byte) error {
	var wire widgetEntryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	settings, err := DecodeSettings(wire.ID, wire.Settings)
	if err != nil {
		return fmt.Errorf("widget %q: %w", wire.ID, err)
	}
	*e = WidgetEntry{
		ID:       wire.ID,
		Label:    wire.Label,
		Visible:  wire.Visible,
		Settings: settings,
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e WidgetEntry) Clone() WidgetEntry {
	e.Settings = CloneSettings(e.Settings)
	return e
}

// CloneEntries deep-copies an entry sequence.
func CloneEntries(entries []WidgetEntry) []WidgetEntry {
	out := make([]WidgetEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Direction is a single-step reorder direction.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionUp:
		return DirectionUp, true
	case DirectionDown:
		return DirectionDown, true
	}
	return "", false
}
