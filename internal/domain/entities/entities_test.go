package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		wantErr  bool
	}{
		{"valid", "a@b.com", "secret1", "Ada Lovelace", false},
		{"valid without name", "a@b.com", "secret1", "", false},
		{"missing email", "", "secret1", "", true},
		{"missing password", "a@b.com", "", "", true},
		{"short password", "a@b.com", "12345", "", true},
		{"six char password ok", "a@b.com", "123456", "", false},
		{"one char name", "a@b.com", "secret1", "A", true},
		{"whitespace name", "a@b.com", "secret1", "  X ", true},
		{"two char name ok", "a@b.com", "secret1", "Al", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignUp(tt.email, tt.password, tt.fullName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSignUp() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestListKindIsValid(t *testing.T) {
	for _, k := range []ListKind{ListKindTasks, ListKindHabits, ListKindSchedules} {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if ListKind("groceries").IsValid() {
		t.Error("unknown kind should be invalid")
	}
	if ListKind("").IsValid() {
		t.Error("empty kind should be invalid")
	}
}

func TestLayoutEntryClamp(t *testing.T) {
	e := LayoutEntry{W: 1, H: 1, MinW: 4, MinH: 2}
	e.Clamp()
	if e.W != 4 || e.H != 2 {
		t.Errorf("Clamp: got w=%d h=%d", e.W, e.H)
	}

	e = LayoutEntry{W: 6, H: 3, MinW: 4, MinH: 2}
	e.Clamp()
	if e.W != 6 || e.H != 3 {
		t.Errorf("Clamp changed an already valid entry: %+v", e)
	}
}

func TestLayoutsValid(t *testing.T) {
	good := Layouts{
		BreakpointLG: {{I: "a", W: 4, H: 2, MinW: 4, MinH: 2}},
	}
	if !good.Valid() {
		t.Error("expected valid")
	}

	bad := Layouts{
		BreakpointLG: {{I: "a", W: 2, H: 2, MinW: 4, MinH: 2}},
	}
	if bad.Valid() {
		t.Error("expected invalid")
	}
}

func TestAppearanceValidate(t *testing.T) {
	s := DefaultAppearance(uuid.New())
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	s.Theme = Theme("neon")
	if err := s.Validate(); err != ErrInvalidSetting {
		t.Errorf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestRefreshTokenState(t *testing.T) {
	rt := RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	if rt.IsExpired() {
		t.Error("future token reported expired")
	}
	if rt.IsRevoked() {
		t.Error("token without RevokedAt reported revoked")
	}

	rt.ExpiresAt = time.Now().Add(-time.Minute)
	if !rt.IsExpired() {
		t.Error("past token not reported expired")
	}

	now := time.Now()
	rt.RevokedAt = &now
	if !rt.IsRevoked() {
		t.Error("revoked token not reported revoked")
	}
}
