package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrUnsupportedBackend = goerr.New("unsupported backend")
	ErrMissingOption      = goerr.New("required option is missing")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	BackendKey    = "backend"
	OptionKey     = "option"
)
