package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	cfgpkg "github.com/alexisbeaulieu97/folio/internal/config"
	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
	apperrors "github.com/alexisbeaulieu97/folio/pkg/errors"
)

// YAMLLoader reads folio configuration files from disk.
type YAMLLoader struct {
	logger ports.Logger
}

// NewYAMLLoader returns a loader that logs through logger.
func NewYAMLLoader(logger ports.Logger) *YAMLLoader {
	return &YAMLLoader{logger: logger}
}

// Load parses and validates the file at path.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*cfgpkg.Config, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	l.debug(ctx, "loading configuration", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, convertError(err, path)
	}
	if info.IsDir() {
		return nil, sceneError(scene.ErrCodeInvalidConfig, "configuration path is a directory", nil, map[string]interface{}{"path": path})
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
	default:
		return nil, sceneError(scene.ErrCodeInvalidConfig, "unsupported configuration file extension", nil,
			map[string]interface{}{"path": path, "extension": ext})
	}

	cfg, err := cfgpkg.ParseConfig(path)
	if err != nil {
		if l.logger != nil {
			l.logger.Error(ctx, "failed to load configuration", "path", path, "error", err)
		}
		return nil, convertError(err, path)
	}

	if l.logger != nil {
		l.logger.Info(ctx, "configuration loaded", "path", path, "sections", len(cfg.Sections))
	}
	return cfg, nil
}

// Resolve loads path when it is set. Otherwise it loads fallback if that
// file exists, and returns Default when it does not. The second result is
// the file actually read, empty for defaults.
func (l *YAMLLoader) Resolve(ctx context.Context, path, fallback string) (*cfgpkg.Config, string, error) {
	if path != "" {
		cfg, err := l.Load(ctx, path)
		return cfg, path, err
	}
	if fallback != "" {
		if _, err := os.Stat(fallback); err == nil {
			cfg, err := l.Load(ctx, fallback)
			return cfg, fallback, err
		}
	}
	l.debug(ctx, "no configuration file, using defaults")
	return cfgpkg.Default(), "", nil
}

func (l *YAMLLoader) debug(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, fields...)
}

func convertError(err error, path string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return sceneError(scene.ErrCodeNotFound, "configuration not found", err, map[string]interface{}{"path": path})
	}
	var parseErr *apperrors.ParseError
	if errors.As(err, &parseErr) {
		return sceneError(scene.ErrCodeInvalidConfig, "invalid configuration syntax", err,
			map[string]interface{}{"path": parseErr.Path, "line": parseErr.Line})
	}
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		context := map[string]interface{}{"path": path}
		if valErr.Field != "" {
			context["field"] = valErr.Field
		}
		if valErr.Rule != "" {
			context["rule"] = valErr.Rule
		}
		return sceneError(scene.ErrCodeInvalidConfig, valErr.Message, err, context)
	}
	return sceneError(scene.ErrCodeInvalidConfig, "configuration load failed", err, map[string]interface{}{"path": path})
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return sceneError(scene.ErrCodeCancelled, "operation cancelled", err, nil)
	}
	return nil
}

func sceneError(code scene.ErrorCode, message string, cause error, ctx map[string]interface{}) *scene.Error {
	return scene.NewError(code, message, cause, ctx)
}
