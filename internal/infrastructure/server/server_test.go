package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entities.ErrItemNotFound, http.StatusNotFound},
		{entities.ErrNoteNotFound, http.StatusNotFound},
		{entities.ErrWidgetNotFound, http.StatusNotFound},
		{entities.ErrSettingsNotFound, http.StatusNotFound},
		{entities.ErrEmptyText, http.StatusBadRequest},
		{entities.ErrInvalidURL, http.StatusBadRequest},
		{entities.ErrInsecureURL, http.StatusBadRequest},
		{entities.ErrUnknownListKind, http.StatusBadRequest},
		{entities.ErrInvalidSetting, http.StatusBadRequest},
		{entities.ErrUnauthorized, http.StatusUnauthorized},
		{entities.ErrNoOwner, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		got, ok := statusForError(tt.err)
		if !ok || got != tt.want {
			t.Errorf("statusForError(%v) = %d, %v; want %d", tt.err, got, ok, tt.want)
		}

		// Wrapped sentinels map the same way.
		wrapped := fmt.Errorf("add %q: %w", "milk", tt.err)
		got, ok = statusForError(wrapped)
		if !ok || got != tt.want {
			t.Errorf("statusForError(wrapped %v) = %d, %v; want %d", tt.err, got, ok, tt.want)
		}
	}
}

func TestStatusForErrorUnknown(t *testing.T) {
	if _, ok := statusForError(errors.New("something else")); ok {
		t.Error("unknown errors should not map to a status")
	}
}
