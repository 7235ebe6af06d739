package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Server   ServerConfig            `mapstructure:"server"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Auth     AuthConfig              `mapstructure:"auth"`
	Scoring  ScoringConfig           `mapstructure:"scoring"`
	Content  ContentConfig           `mapstructure:"content"`
	Wizard   WizardConfig            `mapstructure:"wizard"`
	Leads    LeadsConfig             `mapstructure:"leads"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	MaxConnections  int    `mapstructure:"max_connections"`
	MaxIdle         int    `mapstructure:"max_idle"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // milliseconds
	SSLMode         string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// --- Specific Configuration Sections ---

// AuthConfig holds the identity provider and admin session settings.
type AuthConfig struct {
	Keycloak struct {
		URL          string `mapstructure:"url"`
		Realm        string `mapstructure:"realm"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		AdminClaim   string `mapstructure:"admin_claim"`
	} `mapstructure:"keycloak"`

	SessionTTL   int    `mapstructure:"session_ttl"` // milliseconds
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// ScoringConfig carries the case scoring weights. Defaults are registered
// with viper so an explicit zero in a config file is honored.
type ScoringConfig struct {
	HighValueAccident    int `mapstructure:"high_value_accident"`
	HighValueInjury      int `mapstructure:"high_value_injury"`
	SeverityCatastrophic int `mapstructure:"severity_catastrophic"`
	SeveritySevere       int `mapstructure:"severity_severe"`
	SeverityModerate     int `mapstructure:"severity_moderate"`
	SeverityMinor        int `mapstructure:"severity_minor"`
	NotAtFault           int `mapstructure:"not_at_fault"`
	NoAttorney           int `mapstructure:"no_attorney"`
	Threshold            int `mapstructure:"threshold"`
}

// ContentConfig holds content store settings.
type ContentConfig struct {
	CacheTTL     int  `mapstructure:"cache_ttl"` // milliseconds
	CacheEnabled bool `mapstructure:"cache_enabled"`
	QueryTimeout int  `mapstructure:"query_timeout"` // milliseconds
}

// WizardConfig holds the submission hand-off settings shared by both forms.
type WizardConfig struct {
	TicketTTL   int `mapstructure:"ticket_ttl"`   // milliseconds
	SubmitDelay int `mapstructure:"submit_delay"` // milliseconds
	InFlightTTL int `mapstructure:"inflight_ttl"` // milliseconds
}

// LeadsConfig selects where accepted submissions are queued for follow-up.
type LeadsConfig struct {
	Sink      string   `mapstructure:"sink"` // zeebe | kafka | log
	ProcessID string   `mapstructure:"process_id"`
	Topic     string   `mapstructure:"topic"`
	Brokers   []string `mapstructure:"brokers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
