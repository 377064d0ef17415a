package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/metrics"
	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/storage"
)

// FooterMargin is how close, in pixels, the footer may come to the bottom of
// the viewport before the floating theme widget docks to it.
const FooterMargin = 20

// ThemeService applies and persists theme presets
type ThemeService struct {
	kv     storage.KV
	logger *zap.Logger
}

// NewThemeService creates a new ThemeService
func NewThemeService(kv storage.KV, logger *zap.Logger) *ThemeService {
	return &ThemeService{kv: kv, logger: logging.OrNop(logger)}
}

// Current returns the stored theme, falling back to defaults for anything
// missing or unreadable.
func (s *ThemeService) Current(ctx context.Context) models.ThemeState {
	mode := catalog.DefaultMode
	stored, ok, err := s.kv.Get(ctx, storage.ThemeModeKey)
	if err != nil {
		s.logger.Warn("failed to read theme mode", zap.Error(err))
	} else if ok && catalog.IsMode(stored) {
		mode = stored
	}

	custom := s.loadCustom(ctx)
	return resolveTheme(mode, custom)
}

// Apply switches to mode. For the custom mode, settings replaces the stored
// composite; nil keeps the stored one.
func (s *ThemeService) Apply(ctx context.Context, mode string, settings *models.CustomSettings) (models.ThemeState, error) {
	if !catalog.IsMode(mode) {
		s.logger.Debug("unknown theme mode, using default", zap.String("mode", mode))
		mode = catalog.DefaultMode
	}

	custom := s.loadCustom(ctx)
	if mode == models.ThemeCustom {
		if settings != nil {
			custom = mergeCustom(custom, *settings)
		}
		data, err := json.Marshal(custom)
		if err != nil {
			return models.ThemeState{}, fmt.Errorf("failed to encode custom theme: %w", err)
		}
		if err := s.kv.Set(ctx, storage.ThemeCustomKey, string(data)); err != nil {
			return models.ThemeState{}, fmt.Errorf("failed to save custom theme: %w", err)
		}
	}

	if err := s.kv.Set(ctx, storage.ThemeModeKey, mode); err != nil {
		return models.ThemeState{}, fmt.Errorf("failed to save theme mode: %w", err)
	}

	metrics.ThemeApplied.WithLabelValues(mode).Inc()
	s.logger.Info("theme applied", zap.String("mode", mode))
	return resolveTheme(mode, custom), nil
}

// loadCustom reads the stored composite merged over the defaults
func (s *ThemeService) loadCustom(ctx context.Context) models.CustomSettings {
	raw, ok, err := s.kv.Get(ctx, storage.ThemeCustomKey)
	if err != nil {
		s.logger.Warn("failed to read custom theme", zap.Error(err))
		return catalog.DefaultCustom
	}
	if !ok || raw == "" {
		return catalog.DefaultCustom
	}

	var parsed models.CustomSettings
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("discarding unparseable custom theme", zap.Error(err))
		return catalog.DefaultCustom
	}
	return mergeCustom(catalog.DefaultCustom, parsed)
}

// mergeCustom overlays the non-empty keys of over onto base
func mergeCustom(base, over models.CustomSettings) models.CustomSettings {
	if over.BackgroundKey != "" {
		base.BackgroundKey = over.BackgroundKey
	}
	if over.AccentKey != "" {
		base.AccentKey = over.AccentKey
	}
	if over.FontKey != "" {
		base.FontKey = over.FontKey
	}
	return base
}

func resolveTheme(mode string, custom models.CustomSettings) models.ThemeState {
	state := models.ThemeState{Mode: mode, Custom: custom}
	if mode == models.ThemeCustom {
		state.Vars = CustomVars(custom)
	}
	return state
}

// CustomVars derives the style overrides for a custom composite. Unknown keys
// resolve to each catalog's default preset.
func CustomVars(custom models.CustomSettings) []models.CSSVar {
	bg := catalog.Background(custom.BackgroundKey)
	accent := catalog.Accent(custom.AccentKey)
	font := catalog.Font(custom.FontKey)

	button := bg.Text
	if bg.Key == catalog.DefaultBackground {
		button = "#333"
	}

	return []models.CSSVar{
		{Name: "--body-background-color", Value: bg.Body},
		{Name: "--header-footer-color", Value: bg.Header},
		{Name: "--text-color", Value: bg.Text},
		{Name: "--center-line-color", Value: bg.CenterLine},
		{Name: "--accent-color", Value: accent.Accent},
		{Name: "--accent-hover", Value: accent.Hover},
		{Name: "--button-color", Value: button},
		{Name: "--font-theme", Value: font.Font},
	}
}
