package config

// DB holds the database configuration settings.
type DB struct {
	// URL is a full connection string. When set it wins over the discrete
	// host/port/user fields below. The DATABASE_URL environment variable
	// overrides it.
	URL string

	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// GormEngine selects the gorm driver: "postgres" (default), "mysql"
	// or "sqlite".
	GormEngine string

	// MaxOpenConns caps the connection pool. Kept small to respect
	// serverless concurrency limits. Zero means the default of 5.
	MaxOpenConns int
}
