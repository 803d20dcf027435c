package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

const layoutCacheKey = "dashboard-layouts"

// sizePolicy is the per-widget-type default and minimum size for the largest
// breakpoint. The other breakpoints are derived from it.
type sizePolicy struct {
	minW, minH, w, h int
}

// policyFor picks a size policy by widget ID substring. Unknown widgets get
// the default policy.
func policyFor(widgetID string) sizePolicy {
	id := strings.ToLower(widgetID)
	switch {
	case strings.Contains(id, "clock"):
		return sizePolicy{minW: 4, minH: 2, w: 6, h: 3}
	case strings.Contains(id, "weather"):
		return sizePolicy{minW: 5, minH: 3, w: 6, h: 4}
	case strings.Contains(id, "stats"), strings.Contains(id, "chart"):
		return sizePolicy{minW: 6, minH: 4, w: 8, h: 5}
	case strings.Contains(id, "todo"), strings.Contains(id, "tasks"):
		return sizePolicy{minW: 4, minH: 3, w: 6, h: 5}
	default:
		return sizePolicy{minW: 3, minH: 2, w: 4, h: 3}
	}
}

// LayoutService computes and persists widget placement across the four
// responsive breakpoints. Layouts live in the local cache, one blob per
// owner, written on every drag or resize event without debouncing.
type LayoutService struct {
	cache  ports.LocalCache
	logger *logger.Logger
}

// NewLayoutService creates a new layout service
func NewLayoutService(cache ports.LocalCache, logger *logger.Logger) *LayoutService {
	return &LayoutService{cache: cache, logger: logger}
}

// GenerateDefaults produces one entry per widget per breakpoint. Placement
// is deterministic from the widget's index: the lg grid wraps at 3 columns
// of 8 units each, md at 2 columns of 10, and the two narrow tiers stack
// full-width.
func (s *LayoutService) GenerateDefaults(widgetIDs []string) entities.Layouts {
	layouts := entities.Layouts{
		entities.BreakpointLG: {},
		entities.BreakpointMD: {},
		entities.BreakpointSM: {},
		entities.BreakpointXS: {},
	}

	for i, id := range widgetIDs {
		p := policyFor(id)

		// Large screens: 24 columns.
		layouts[entities.BreakpointLG] = append(layouts[entities.BreakpointLG], entities.LayoutEntry{
			I:    id,
			X:    (i % 3) * 8,
			Y:    (i / 3) * p.h,
			W:    p.w,
			H:    p.h,
			MinW: p.minW,
			MinH: p.minH,
			MaxW: 12,
			MaxH: 8,
		})

		// Medium screens: 20 columns, slightly wider entries.
		layouts[entities.BreakpointMD] = append(layouts[entities.BreakpointMD], entities.LayoutEntry{
			I:    id,
			X:    (i % 2) * 10,
			Y:    (i / 2) * 3,
			W:    min(p.w+2, 10),
			H:    p.h,
			MinW: min(p.minW+1, 8),
			MinH: p.minH,
			MaxW: 15,
			MaxH: 8,
		})

		// Small screens: 12 columns, full width.
		layouts[entities.BreakpointSM] = append(layouts[entities.BreakpointSM], entities.LayoutEntry{
			I:    id,
			X:    0,
			Y:    i * 3,
			W:    12,
			H:    p.h,
			MinW: 8,
			MinH: p.minH,
			MaxW: 12,
			MaxH: 8,
		})

		// Extra small screens: 8 columns, full width.
		layouts[entities.BreakpointXS] = append(layouts[entities.BreakpointXS], entities.LayoutEntry{
			I:    id,
			X:    0,
			Y:    i * 3,
			W:    8,
			H:    p.h,
			MinW: 8,
			MinH: p.minH,
			MaxW: 8,
			MaxH: 8,
		})
	}

	return layouts
}

// LoadOrInit returns the persisted layout merged against freshly computed
// defaults, so constraint policy changes apply retroactively: min/max come
// from the defaults and the user's chosen position and size are kept,
// clamped up to the new minimums. A missing or unparseable blob falls back
// to pure defaults. The result always satisfies w >= minW and h >= minH.
func (s *LayoutService) LoadOrInit(ctx context.Context, owner uuid.UUID, widgetIDs []string) (entities.Layouts, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	defaults := s.GenerateDefaults(widgetIDs)

	blob, err := s.cache.Get(ctx, owner, layoutCacheKey)
	if err != nil {
		return defaults, nil
	}

	var saved entities.Layouts
	if err := json.Unmarshal(blob, &saved); err != nil {
		s.logger.Warnw("Failed to parse saved layouts, using defaults", "owner_id", owner, "error", err)
		return defaults, nil
	}

	for bp, entries := range saved {
		for i := range entries {
			def, ok := findEntry(defaults[bp], entries[i].I)
			if !ok {
				continue
			}
			entries[i].MinW = def.MinW
			entries[i].MinH = def.MinH
			entries[i].MaxW = def.MaxW
			entries[i].MaxH = def.MaxH
			entries[i].Clamp()
		}
		saved[bp] = entries
	}

	return saved, nil
}

// Save replaces the persisted layout with newLayouts. Called on every drag
// and resize.
func (s *LayoutService) Save(ctx context.Context, owner uuid.UUID, layouts entities.Layouts) error {
	if owner == uuid.Nil {
		return entities.ErrNoOwner
	}

	blob, err := json.Marshal(layouts)
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, owner, layoutCacheKey, blob)
}

// Reset discards the persisted layout and regenerates defaults.
func (s *LayoutService) Reset(ctx context.Context, owner uuid.UUID, widgetIDs []string) (entities.Layouts, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	defaults := s.GenerateDefaults(widgetIDs)
	if err := s.Save(ctx, owner, defaults); err != nil {
		return nil, err
	}

	return defaults, nil
}

func findEntry(entries []entities.LayoutEntry, id string) (entities.LayoutEntry, bool) {
	for _, e := range entries {
		if e.I == id {
			return e, true
		}
	}
	return entities.LayoutEntry{}, false
}
