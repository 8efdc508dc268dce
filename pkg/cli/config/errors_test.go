package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/cli/config"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		sentinelError error
		wantMatch     bool
	}{
		{
			name:          "ErrConfigNotFound can be identified",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrConfigNotFound,
			wantMatch:     true,
		},
		{
			name:          "ErrInvalidConfig can be identified",
			err:           goerr.Wrap(config.ErrInvalidConfig, "validation failed"),
			sentinelError: config.ErrInvalidConfig,
			wantMatch:     true,
		},
		{
			name:          "ErrUnsupportedBackend can be identified",
			err:           goerr.Wrap(config.ErrUnsupportedBackend, "unknown driver"),
			sentinelError: config.ErrUnsupportedBackend,
			wantMatch:     true,
		},
		{
			name:          "ErrMissingOption can be identified",
			err:           goerr.Wrap(config.ErrMissingOption, "dsn is empty"),
			sentinelError: config.ErrMissingOption,
			wantMatch:     true,
		},
		{
			name:          "different sentinels do not match",
			err:           goerr.Wrap(config.ErrMissingOption, "dsn is empty"),
			sentinelError: config.ErrInvalidConfig,
			wantMatch:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, errors.Is(tt.err, tt.sentinelError)).Equal(tt.wantMatch)
		})
	}
}

func TestConfigErrors_ContextValues(t *testing.T) {
	err := goerr.Wrap(config.ErrUnsupportedBackend, "invalid database driver",
		goerr.V(config.BackendKey, "postgres"))

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	gt.Value(t, ge.Values()[config.BackendKey]).Equal("postgres")
}
