package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// fakeSettingsRepo is an in-memory SettingsRepository with failure injection.
type fakeSettingsRepo struct {
	rows map[uuid.UUID]entities.AppearanceSettings
	fail bool
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: make(map[uuid.UUID]entities.AppearanceSettings)}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*entities.AppearanceSettings, error) {
	if r.fail {
		return nil, errStoreDown
	}
	s, ok := r.rows[userID]
	if !ok {
		return nil, entities.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *entities.AppearanceSettings) error {
	if r.fail {
		return errStoreDown
	}
	r.rows[settings.UserID] = *settings
	return nil
}

func newTestSettingsService(t *testing.T) (*SettingsService, *fakeSettingsRepo, *memCache) {
	t.Helper()
	repo := newFakeSettingsRepo()
	c := newMemCache()
	return NewSettingsService(repo, c, logger.NewNop()), repo, c
}

func TestSettingsGetReturnsDefaultsForNewUser(t *testing.T) {
	svc, _, _ := newTestSettingsService(t)
	owner := uuid.New()

	settings, err := svc.Get(context.Background(), owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := entities.DefaultAppearance(owner)
	if settings.Theme != want.Theme || settings.AccentColor != want.AccentColor || settings.LayoutWidth != want.LayoutWidth {
		t.Errorf("got %+v, want defaults %+v", settings, want)
	}
}

func TestSettingsUpdatePatchesOnlySetFields(t *testing.T) {
	svc, _, _ := newTestSettingsService(t)
	owner := uuid.New()
	ctx := context.Background()

	dark := entities.ThemeDark
	updated, err := svc.Update(ctx, owner, ports.UpdateSettingsRequest{Theme: &dark})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Theme != entities.ThemeDark {
		t.Errorf("Theme = %q", updated.Theme)
	}
	if updated.AccentColor != entities.AccentBlue {
		t.Errorf("unset field changed: AccentColor = %q", updated.AccentColor)
	}

	// Second patch must not clobber the first.
	green := entities.AccentGreen
	updated, err = svc.Update(ctx, owner, ports.UpdateSettingsRequest{AccentColor: &green})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Theme != entities.ThemeDark {
		t.Errorf("earlier patch lost: Theme = %q", updated.Theme)
	}
	if updated.AccentColor != entities.AccentGreen {
		t.Errorf("AccentColor = %q", updated.AccentColor)
	}
}

func TestSettingsUpdateRejectsInvalidEnum(t *testing.T) {
	svc, _, _ := newTestSettingsService(t)

	bogus := entities.Theme("neon")
	_, err := svc.Update(context.Background(), uuid.New(), ports.UpdateSettingsRequest{Theme: &bogus})
	if !errors.Is(err, entities.ErrInvalidSetting) {
		t.Errorf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestSettingsGetFallsBackToCache(t *testing.T) {
	svc, repo, _ := newTestSettingsService(t)
	owner := uuid.New()
	ctx := context.Background()

	purple := entities.AccentPurple
	if _, err := svc.Update(ctx, owner, ports.UpdateSettingsRequest{AccentColor: &purple}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	repo.fail = true
	settings, err := svc.Get(ctx, owner)
	if err != nil {
		t.Fatalf("Get should fall back to cache, got %v", err)
	}
	if settings.AccentColor != entities.AccentPurple {
		t.Errorf("expected cached settings, got %+v", settings)
	}
}

func TestSettingsGetFallsBackToDefaultsWithoutCache(t *testing.T) {
	svc, repo, _ := newTestSettingsService(t)
	repo.fail = true
	owner := uuid.New()

	settings, err := svc.Get(context.Background(), owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.Theme != entities.ThemeSystem {
		t.Errorf("expected defaults, got %+v", settings)
	}
}

func TestSettingsRequireOwner(t *testing.T) {
	svc, _, _ := newTestSettingsService(t)

	if _, err := svc.Get(context.Background(), uuid.Nil); !errors.Is(err, entities.ErrNoOwner) {
		t.Errorf("Get: expected ErrNoOwner, got %v", err)
	}
	if _, err := svc.Update(context.Background(), uuid.Nil, ports.UpdateSettingsRequest{}); !errors.Is(err, entities.ErrNoOwner) {
		t.Errorf("Update: expected ErrNoOwner, got %v", err)
	}
}
