package entities

import (
	"time"

	"github.com/google/uuid"
)

// Appearance preference enums
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

type FontFamily string

const (
	FontFamilyDefault FontFamily = "default"
	FontFamilySerif   FontFamily = "serif"
	FontFamilyMono    FontFamily = "mono"
)

type FontSize string

const (
	FontSizeNormal FontSize = "normal"
	FontSizeSmall  FontSize = "small"
	FontSizeLarge  FontSize = "large"
)

type AccentColor string

const (
	AccentBlue   AccentColor = "blue"
	AccentGreen  AccentColor = "green"
	AccentPurple AccentColor = "purple"
	AccentRed    AccentColor = "red"
	AccentOrange AccentColor = "orange"
)

type LayoutWidth string

const (
	LayoutWidthStandard LayoutWidth = "standard"
	LayoutWidthFull     LayoutWidth = "full"
	LayoutWidthCompact  LayoutWidth = "compact"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

func (f FontFamily) IsValid() bool {
	switch f {
	case FontFamilyDefault, FontFamilySerif, FontFamilyMono:
		return true
	}
	return false
}

func (f FontSize) IsValid() bool {
	switch f {
	case FontSizeNormal, FontSizeSmall, FontSizeLarge:
		return true
	}
	return false
}

func (a AccentColor) IsValid() bool {
	switch a {
	case AccentBlue, AccentGreen, AccentPurple, AccentRed, AccentOrange:
		return true
	}
	return false
}

func (w LayoutWidth) IsValid() bool {
	switch w {
	case LayoutWidthStandard, LayoutWidthFull, LayoutWidthCompact:
		return true
	}
	return false
}

// AppearanceSettings holds the five independent presentation preferences.
// Each field is persisted on its own; a partial update never touches the
// other fields.
type AppearanceSettings struct {
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	Theme       Theme       `json:"theme" db:"theme"`
	FontFamily  FontFamily  `json:"font_family" db:"font_family"`
	FontSize    FontSize    `json:"font_size" db:"font_size"`
	AccentColor AccentColor `json:"accent_color" db:"accent_color"`
	LayoutWidth LayoutWidth `json:"layout_width" db:"layout_width"`
	CreatedAt   time.Time   `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty" db:"updated_at"`
}

// DefaultAppearance returns the hardcoded defaults used before a user has
// saved anything.
func DefaultAppearance(userID uuid.UUID) AppearanceSettings {
	return AppearanceSettings{
		UserID:      userID,
		Theme:       ThemeSystem,
		FontFamily:  FontFamilyDefault,
		FontSize:    FontSizeNormal,
		AccentColor: AccentBlue,
		LayoutWidth: LayoutWidthStandard,
	}
}

// Validate checks every field against its enum.
func (s *AppearanceSettings) Validate() error {
	if !s.Theme.IsValid() || !s.FontFamily.IsValid() || !s.FontSize.IsValid() ||
		!s.AccentColor.IsValid() || !s.LayoutWidth.IsValid() {
		return ErrInvalidSetting
	}
	return nil
}
