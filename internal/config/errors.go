package config

import (
	"errors"
)

var (
	// ErrNoDatabaseTarget error if neither db.url nor db.host is configured.
	ErrNoDatabaseTarget = errors.New("toml config db.url or db.host must be set for the configured engine")
)
