package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "leadsniffer"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultConcurrency     = 10
	defaultBatchSize       = 100
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "leadsniffer"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultLLMTimeout      = 5 * time.Second
	defaultLLMRPS          = 5
	defaultTaggingStrategy = "rules"
)

// Default combiner weights. The engine refuses to start if they do not sum
// to 1.0, so changing one means changing another.
const (
	defaultKeywordWeight    = 0.35
	defaultQuestionWeight   = 0.25
	defaultUrgencyWeight    = 0.20
	defaultGeographicWeight = 0.10
	defaultEngagementWeight = 0.10
)

// Config holds all configuration for the lead scoring service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Tagging  TaggingConfig  `yaml:"tagging"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"LEADSNIFFER_PORT"        yaml:"port"`
	Debug       bool   `env:"APP_DEBUG"               yaml:"debug"`
	Concurrency int    `env:"LEADSNIFFER_CONCURRENCY" yaml:"concurrency"`
	BatchSize   int    `yaml:"batch_size"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// ScoringConfig holds the combiner weights. Each weight multiplies a
// detector sub-score in [0,100]; together they must sum to 1.0.
type ScoringConfig struct {
	KeywordWeight    float64 `yaml:"keyword_weight"`
	QuestionWeight   float64 `yaml:"question_weight"`
	UrgencyWeight    float64 `yaml:"urgency_weight"`
	GeographicWeight float64 `yaml:"geographic_weight"`
	EngagementWeight float64 `yaml:"engagement_weight"`
}

// TaggingConfig selects the tag resolution strategy.
// Strategy "rules" uses the deterministic resolver; "llm" delegates to the
// external classification service and falls back to rules-free exclusion on
// failure.
type TaggingConfig struct {
	Strategy   string        `env:"TAGGING_STRATEGY" yaml:"strategy"`
	LLMBaseURL string        `env:"LLM_BASE_URL"     yaml:"llm_base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RPS        int           `yaml:"rps"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// AuthConfig holds authentication configuration. An empty secret disables
// JWT protection on the API group.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setScoringDefaults(&cfg.Scoring)
	setTaggingDefaults(&cfg.Tagging)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setScoringDefaults(s *ScoringConfig) {
	if s.KeywordWeight == 0 && s.QuestionWeight == 0 && s.UrgencyWeight == 0 &&
		s.GeographicWeight == 0 && s.EngagementWeight == 0 {
		s.KeywordWeight = defaultKeywordWeight
		s.QuestionWeight = defaultQuestionWeight
		s.UrgencyWeight = defaultUrgencyWeight
		s.GeographicWeight = defaultGeographicWeight
		s.EngagementWeight = defaultEngagementWeight
	}
}

func setTaggingDefaults(t *TaggingConfig) {
	if t.Strategy == "" {
		t.Strategy = defaultTaggingStrategy
	}
	if t.Timeout == 0 {
		t.Timeout = defaultLLMTimeout
	}
	if t.RPS == 0 {
		t.RPS = defaultLLMRPS
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
