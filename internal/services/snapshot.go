package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

var errEmptySnapshot = errors.New("snapshot has no entries")

// parseSnapshot decodes a persisted entry sequence. The document must be a
// non-empty array of objects, each with a non-empty string id, a boolean
// visible and an object settings, and no id may repeat. An entry whose
// settings do not decode into its variant keeps its place and visibility and
// takes the default settings for its id; its id is returned in recovered.
func parseSnapshot(data []byte, defaults []models.WidgetEntry) (entries []models.WidgetEntry, recovered []models.WidgetID, err error) {
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, nil, errors.New("snapshot is not an array")
	}

	items := doc.Array()
	if len(items) == 0 {
		return nil, nil, errEmptySnapshot
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, nil, fmt.Errorf("entry %d is not an object", i)
		}
		id := item.Get("id")
		if id.Type != gjson.String || id.String() == "" {
			return nil, nil, fmt.Errorf("entry %d has no string id", i)
		}
		if seen[id.String()] {
			return nil, nil, fmt.Errorf("entry %d repeats id %q", i, id.String())
		}
		seen[id.String()] = true
		if v := item.Get("visible"); v.Type != gjson.True && v.Type != gjson.False {
			return nil, nil, fmt.Errorf("entry %q has no boolean visible", id.String())
		}
		if !item.Get("settings").IsObject() {
			return nil, nil, fmt.Errorf("entry %q has no settings object", id.String())
		}
	}

	entries = make([]models.WidgetEntry, 0, len(items))
	for _, item := range items {
		var e models.WidgetEntry
		if err := json.Unmarshal([]byte(item.Raw), &e); err == nil {
			entries = append(entries, e)
			continue
		}
		id := models.WidgetID(item.Get("id").String())
		entries = append(entries, models.WidgetEntry{
			ID:       id,
			Label:    item.Get("label").String(),
			Visible:  item.Get("visible").Bool(),
			Settings: recoverSettings(id, item.Get("settings"), defaults),
		})
		recovered = append(recovered, id)
	}
	return entries, recovered, nil
}

// recoverSettings returns the default settings of id, or the raw settings
// kept opaque when the registry has no default for it.
func recoverSettings(id models.WidgetID, raw gjson.Result, defaults []models.WidgetEntry) models.Settings {
	for _, d := range defaults {
		if d.ID == id {
			return d.Settings
		}
	}
	opaque := models.OpaqueSettings{}
	raw.ForEach(func(k, v gjson.Result) bool {
		opaque[k.String()] = json.RawMessage(v.Raw)
		return true
	})
	return opaque
}

// reconcile appends a default entry for every default id missing from
// entries. Entries whose id has no default are kept in place.
func reconcile(entries, defaults []models.WidgetEntry) ([]models.WidgetEntry, int) {
	present := make(map[models.WidgetID]bool, len(entries))
	for _, e := range entries {
		present[e.ID] = true
	}
	added := 0
	for _, d := range defaults {
		if !present[d.ID] {
			entries = append(entries, d)
			added++
		}
	}
	return entries, added
}
