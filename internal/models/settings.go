package models

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// Settings is the per-widget settings record. It is a closed union: one
// variant per known widget kind plus OpaqueSettings for ids the registry does
// not know.
type Settings interface {
	isWidgetSettings()
}

// SkillsRadarSettings configures the metrics radar.
type SkillsRadarSettings struct {
	EnabledMetrics []string `json:"enabledMetrics"`
	Extra          Extra    `json:"-"`
}

// RewardsCardSettings configures the reward progress card.
type RewardsCardSettings struct {
	ShowStats bool  `json:"showStats"`
	Extra     Extra `json:"-"`
}

// StudentListSettings configures the ranked student list.
type StudentListSettings struct {
	TimeRange string `json:"timeRange"`
	Extra     Extra  `json:"-"`
}

// CritiquePanelSettings configures the paginated review feed.
type CritiquePanelSettings struct {
	Limit int   `json:"limit"`
	Extra Extra `json:"-"`
}

// Extra holds persisted settings keys a typed variant does not declare. They
// are carried through and written back unchanged.
type Extra map[string]json.RawMessage

func (s SkillsRadarSettings) MarshalJSON() ([]byte, error) {
	type plain SkillsRadarSettings
	return marshalWithExtra(plain(s), s.Extra)
}

func (s RewardsCardSettings) MarshalJSON() ([]byte, error) {
	type plain RewardsCardSettings
	return marshalWithExtra(plain(s), s.Extra)
}

func (s StudentListSettings) MarshalJSON() ([]byte, error) {
	type plain StudentListSettings
	return marshalWithExtra(plain(s), s.Extra)
}

func (s CritiquePanelSettings) MarshalJSON() ([]byte, error) {
	type plain CritiquePanelSettings
	return marshalWithExtra(plain(s), s.Extra)
}

// marshalWithExtra encodes v and adds the extra keys it does not declare.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, declared := fields[k]; !declared {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

// OpaqueSettings holds the settings of a widget id the registry does not
// know. Values are kept as raw JSON so they survive a save unchanged.
type OpaqueSettings map[string]json.RawMessage

func (SkillsRadarSettings) isWidgetSettings()   {}
func (RewardsCardSettings) isWidgetSettings()   {}
func (StudentListSettings) isWidgetSettings()   {}
func (CritiquePanelSettings) isWidgetSettings() {}
func (OpaqueSettings) isWidgetSettings()        {}

// Patch is a partial settings update: top-level keys to replace.
type Patch map[string]json.RawMessage

// NewPatch builds a Patch from plain Go values.
func NewPatch(values map[string]any) (Patch, error) {
	p := make(Patch, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		p[k] = raw
	}
	return p, nil
}

// MustPatch is NewPatch for values known to encode.
func MustPatch(values map[string]any) Patch {
	p, err := NewPatch(values)
	if err != nil {
		panic(err)
	}
	return p
}

// DecodeSettings decodes raw settings JSON into the variant for id.
func DecodeSettings(id WidgetID, raw json.RawMessage) (Settings, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch id {
	case WidgetSkillsRadar:
		var s SkillsRadarSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.Extra = extraKeys(raw, "enabledMetrics")
		return s, nil
	case WidgetRewardsCard:
		var s RewardsCardSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.Extra = extraKeys(raw, "showStats")
		return s, nil
	case WidgetStudentList:
		var s StudentListSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.Extra = extraKeys(raw, "timeRange")
		return s, nil
	case WidgetCritiquePanel:
		var s CritiquePanelSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s.Extra = extraKeys(raw, "limit")
		return s, nil
	default:
		var s OpaqueSettings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == nil {
			s = OpaqueSettings{}
		}
		return s, nil
	}
}

// extraKeys returns the keys of the raw settings object other than declared,
// or nil when there are none.
func extraKeys(raw json.RawMessage, declared string) Extra {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil
	}
	delete(all, declared)
	if len(all) == 0 {
		return nil
	}
	return Extra(all)
}

// CloneSettings deep-copies a settings record.
func CloneSettings(s Settings) Settings {
	switch v := s.(type) {
	case SkillsRadarSettings:
		v.EnabledMetrics = slices.Clone(v.EnabledMetrics)
		v.Extra = v.Extra.clone()
		return v
	case RewardsCardSettings:
		v.Extra = v.Extra.clone()
		return v
	case StudentListSettings:
		v.Extra = v.Extra.clone()
		return v
	case CritiquePanelSettings:
		v.Extra = v.Extra.clone()
		return v
	case OpaqueSettings:
		out := make(OpaqueSettings, len(v))
		for k, raw := range v {
			out[k] = slices.Clone(raw)
		}
		return out
	default:
		return s
	}
}

func (e Extra) clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, raw := range e {
		out[k] = slices.Clone(raw)
	}
	return out
}

// MergeSettings shallow-merges patch into s and returns the result; s is
// never modified. For typed variants the patch is decoded over a copy of the
// current record, so absent keys keep their value and present keys win.
// Keys that are not part of the variant are rejected.
func MergeSettings(s Settings, patch Patch) (Settings, error) {
	switch v := CloneSettings(s).(type) {
	case SkillsRadarSettings:
		if err := decodePatch(patch, &v); err != nil {
			return s, err
		}
		return v, nil
	case RewardsCardSettings:
		if err := decodePatch(patch, &v); err != nil {
			return s, err
		}
		return v, nil
	case StudentListSettings:
		if err := decodePatch(patch, &v); err != nil {
			return s, err
		}
		return v, nil
	case CritiquePanelSettings:
		if err := decodePatch(patch, &v); err != nil {
			return s, err
		}
		return v, nil
	case OpaqueSettings:
		maps.Copy(v, patch)
		return v, nil
	default:
		out := make(OpaqueSettings, len(patch))
		maps.Copy(out, patch)
		return out, nil
	}
}

func decodePatch(patch Patch, dst any) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
