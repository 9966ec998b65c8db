package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"football-rag"`
	Environment                   string   `env:"ENVIRONMENT" env-default:"development"`
	Port                          int      `env:"PORT" env-default:"3000"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`

	// PostgreSQL (destination schema)
	DatabaseDriver              string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                string        `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName            string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword            string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                string        `env:"DB_NAME" env-default:"football"`
	DatabaseSSLMode             string        `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns        int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns        int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime     time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion    int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce      int           `env:"DB_MIGRATION_FORCE" env-default:"0"`

	// Source corpus layout. MatchesDir is a competition-id/season-id tree;
	// the per-match dirs hold one JSON file per match keyed by numeric filename.
	DataDir          string `env:"DATA_DIR" env-default:"data"`
	CompetitionsFile string `env:"COMPETITIONS_FILE" env-default:"competitions.json"`
	MatchesDir       string `env:"MATCHES_DIR" env-default:"matches"`
	LineupsDir       string `env:"LINEUPS_DIR" env-default:"lineups"`
	EventsDir        string `env:"EVENTS_DIR" env-default:"events"`
	ThreeSixtyDir    string `env:"THREE_SIXTY_DIR" env-default:"three-sixty"`

	// Loader behavior
	LoaderParamBudget   int `env:"LOADER_PARAM_BUDGET" env-default:"60000"`
	LoaderProgressEvery int `env:"LOADER_PROGRESS_EVERY" env-default:"250"`
	FullMatchMinutes    int `env:"FULL_MATCH_MINUTES" env-default:"90"`

	// Ad-hoc query sandbox
	QueryTimeout  time.Duration `env:"QUERY_TIMEOUT" env-default:"10s"`
	QueryRowLimit int           `env:"QUERY_ROW_LIMIT" env-default:"500"`

	// Schema introspection cache
	SchemaCacheTTL time.Duration `env:"SCHEMA_CACHE_TTL" env-default:"5m"`

	// Tracing
	TracingEnabled bool `env:"TRACING_ENABLED" env-default:"false"`
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.DatabaseHost +
		" port=" + c.DatabasePort +
		" user=" + c.DatabaseUserName +
		" password=" + c.DatabasePassword +
		" dbname=" + c.DatabaseName +
		" sslmode=" + c.DatabaseSSLMode
}

// IsProduction reports whether the service runs in production mode. Error
// responses omit internal details when it returns true.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
