package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "file", cfg.KeystoreDriver)
				assert.Equal(t, "./data", cfg.KeystorePath)
				assert.Empty(t, cfg.KeystoreKMSKeyURI)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "ephemeral", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":              "localhost",
				"SERVER_PORT":              "9090",
				"SHUTDOWN_TIMEOUT_SECONDS": "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name: "load custom keystore configuration",
			envVars: map[string]string{
				"KEYSTORE_DRIVER":      "mysql",
				"KEYSTORE_PATH":        "/var/lib/ephemeral",
				"KEYSTORE_KMS_KEY_URI": "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
				"DB_CONNECTION_STRING": "user:password@tcp(localhost:3306)/testdb",
				"DB_CONN_MAX_LIFETIME": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.KeystoreDriver)
				assert.Equal(t, "/var/lib/ephemeral", cfg.KeystorePath)
				assert.Equal(t, "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", cfg.KeystoreKMSKeyURI)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom rate limit configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":          "false",
				"RATE_LIMIT_REQUESTS_PER_SEC": "2.5",
				"RATE_LIMIT_BURST":            "4",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 4, cfg.RateLimitBurst)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "file", cfg: Config{KeystoreDriver: "file", KeystorePath: "./data"}},
		{name: "memory", cfg: Config{KeystoreDriver: "memory"}},
		{name: "postgres", cfg: Config{KeystoreDriver: "postgres", DBConnectionString: "postgres://x"}},
		{name: "redis", cfg: Config{KeystoreDriver: "redis", RedisURL: "redis://localhost:6379/0"}},
		{name: "file without path", cfg: Config{KeystoreDriver: "file"}, wantErr: "KEYSTORE_PATH is required"},
		{name: "mysql without dsn", cfg: Config{KeystoreDriver: "mysql"}, wantErr: "DB_CONNECTION_STRING is required"},
		{name: "redis without url", cfg: Config{KeystoreDriver: "redis"}, wantErr: "REDIS_URL is required"},
		{name: "unknown driver", cfg: Config{KeystoreDriver: "leveldb"}, wantErr: "unsupported KEYSTORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_SQLDriver(t *testing.T) {
	assert.Equal(t, "mysql", (&Config{KeystoreDriver: "mysql", DBDriver: "postgres"}).SQLDriver())
	assert.Equal(t, "postgres", (&Config{KeystoreDriver: "postgres", DBDriver: "mysql"}).SQLDriver())
	assert.Equal(t, "mysql", (&Config{KeystoreDriver: "file", DBDriver: "mysql"}).SQLDriver())
}

func TestConfig_KeystoreDir(t *testing.T) {
	cfg := &Config{KeystorePath: "/var/lib/ephemeral"}
	assert.Equal(t, filepath.Join("/var/lib/ephemeral", "ephemeral-keys"), cfg.KeystoreDir())
}

func TestConfig_GetGinMode(t *testing.T) {
	for level, mode := range map[string]string{"debug": "debug", "info": "release", "error": "release", "": "release"} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, mode, cfg.GetGinMode(), "log level %q", level)
	}
}
