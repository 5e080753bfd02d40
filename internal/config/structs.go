package config

import (
	"github.com/pension-board/retiree-intake/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    `validate:"required,gt=0"` // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	URL            string `validate:"required,url"` // base url, used to build file download links in exports
}
