package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model/config"
)

// AppConfig represents the application configuration file. Every section is
// optional; missing ids fall back to the defaults seeded by migrate.
type AppConfig struct {
	ReportStatus     ReportStatusSection     `toml:"report_status"`
	AssignmentStatus AssignmentStatusSection `toml:"assignment_status"`
	Roles            RolesSection            `toml:"roles"`

	path string
}

// ReportStatusSection maps report statuses to status code ids
type ReportStatusSection struct {
	Pending    int64 `toml:"pending"`
	InProgress int64 `toml:"in_progress"`
	Resolved   int64 `toml:"resolved"`
	Rejected   int64 `toml:"rejected"`
}

// AssignmentStatusSection maps assignment statuses to status code ids
type AssignmentStatusSection struct {
	Pending    int64 `toml:"pending"`
	Accepted   int64 `toml:"accepted"`
	Refused    int64 `toml:"refused"`
	InProgress int64 `toml:"in_progress"`
	Completed  int64 `toml:"completed"`
}

// RolesSection holds user type ids with special privileges
type RolesSection struct {
	ManagerUserTypeID int64 `toml:"manager_user_type_id"`
}

// Flags returns CLI flags for the configuration file
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file (status code ids, manager user type)",
			Sources:     cli.EnvVars("CIVICSYNC_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Path returns the configured file path
func (a *AppConfig) Path() string {
	return a.path
}

// Configure loads the configuration file when one is given and returns the
// status code ids, defaults otherwise.
func (a *AppConfig) Configure() (*domainConfig.StatusCodes, error) {
	if a.path == "" {
		return domainConfig.DefaultStatusCodes(), nil
	}

	loaded, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, err
	}
	return loaded.ToStatusCodes(), nil
}

// Validate checks that the merged status code ids are usable
func (a *AppConfig) Validate() error {
	if err := a.ToStatusCodes().Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, a.path))
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	config := AppConfig{path: path}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToStatusCodes converts AppConfig to domain StatusCodes, filling zero ids
// with the defaults
func (a *AppConfig) ToStatusCodes() *domainConfig.StatusCodes {
	codes := domainConfig.DefaultStatusCodes()

	override(&codes.Report.Pending, a.ReportStatus.Pending)
	override(&codes.Report.InProgress, a.ReportStatus.InProgress)
	override(&codes.Report.Resolved, a.ReportStatus.Resolved)
	override(&codes.Report.Rejected, a.ReportStatus.Rejected)

	override(&codes.Assignment.Pending, a.AssignmentStatus.Pending)
	override(&codes.Assignment.Accepted, a.AssignmentStatus.Accepted)
	override(&codes.Assignment.Refused, a.AssignmentStatus.Refused)
	override(&codes.Assignment.InProgress, a.AssignmentStatus.InProgress)
	override(&codes.Assignment.Completed, a.AssignmentStatus.Completed)

	override(&codes.ManagerUserTypeID, a.Roles.ManagerUserTypeID)
	return codes
}

func override(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}
