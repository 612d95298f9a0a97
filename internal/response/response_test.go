package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

func TestWriteSuccess(t *testing.T) {
	h := New(logger.NewDiscard())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.WriteSuccess(rr, req, http.StatusOK, map[string]int{"n": 1})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !env.Success || env.Data["n"] != 1 {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("missing"), http.StatusNotFound, "not_found"},
		{"validation", errs.NewValidationError("bad limit"), http.StatusBadRequest, "invalid_input"},
		{"wrapped validation", fmt.Errorf("patch: %w", errs.NewValidationError("bad")), http.StatusBadRequest, "invalid_input"},
		{"database", errs.NewDatabaseError("write", "failed", errors.New("io")), http.StatusInternalServerError, "internal_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := New(logger.NewDiscard())
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(rr, req, tc.err)

			if rr.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rr.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if body.Code != tc.code {
				t.Errorf("expected code %q, got %q", tc.code, body.Code)
			}
		})
	}
}
