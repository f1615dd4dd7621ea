//nolint:testpackage
package database

import (
	"testing"
	"time"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     5433,
		User:     "sniffer",
		Password: "s3cret",
		DBName:   "leadsniffer",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=sniffer password=s3cret dbname=leadsniffer sslmode=require"
	if got := cfg.dsn(); got != want {
		t.Errorf("dsn:\n got %q\nwant %q", got, want)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.MaxOpenConns != defaultMaxOpenConns {
		t.Errorf("max open conns: got %d, want %d", cfg.MaxOpenConns, defaultMaxOpenConns)
	}
	if cfg.MaxIdleConns != defaultMaxIdleConns {
		t.Errorf("max idle conns: got %d, want %d", cfg.MaxIdleConns, defaultMaxIdleConns)
	}
	if cfg.ConnMaxLifetime != defaultConnMaxLifetime {
		t.Errorf("conn max lifetime: got %v, want %v", cfg.ConnMaxLifetime, defaultConnMaxLifetime)
	}
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		MaxOpenConns:    50,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
	}
	cfg.applyDefaults()

	if cfg.MaxOpenConns != 50 || cfg.MaxIdleConns != 10 || cfg.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("explicit pool settings overwritten: %+v", cfg)
	}
}
