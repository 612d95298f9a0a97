package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

// buildPatch turns key=value arguments into a settings patch. A value that
// is valid JSON is used as is; anything else is taken as a string, so
// timeRange="This Week" and limit=2 both work without extra quoting.
func buildPatch(args []string) (models.Patch, error) {
	if len(args) == 0 {
		return nil, errs.NewValidationError("at least one key=value pair is required")
	}

	doc := "{}"
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errs.NewValidationError(fmt.Sprintf("expected key=value, got %q", arg))
		}

		var err error
		if gjson.Valid(value) {
			doc, err = sjson.SetRaw(doc, key, value)
		} else {
			doc, err = sjson.Set(doc, key, value)
		}
		if err != nil {
			return nil, errs.NewValidationError(fmt.Sprintf("invalid setting %q: %v", key, err))
		}
	}

	var patch models.Patch
	if err := json.Unmarshal([]byte(doc), &patch); err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid settings: %v", err))
	}
	return patch, nil
}
