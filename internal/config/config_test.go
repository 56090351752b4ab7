package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
chain_id: 11155111
network: ETHEREUM
server:
  host: 127.0.0.1
  port: 9000
  cors_allowed_origins:
    - "https://market.example"
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: rentals
  sslmode: require
  max_open_conns: 20
  conn_max_lifetime: 5m
auth:
  jwt_public_key: "-----BEGIN PUBLIC KEY-----"
subgraphs:
  rentals_url: "https://graph.example.com/rentals"
  marketplace_url: "https://graph.example.com/marketplace"
  http_timeout: 10s
contracts:
  rentals:
    "11155111": "0x92159C78f0f4523B9c60382bB888F30f10A46B3b"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, domain.ChainIDEthereumSepolia, cfg.ChainID)
				assert.Equal(t, domain.NetworkEthereum, cfg.Network)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, []string{"https://market.example"}, cfg.Server.CORSAllowedOrigins)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, 20, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, 10*time.Second, cfg.Subgraphs.HTTPTimeout)

				overrides, err := cfg.Contracts.RentalsOverrides()
				require.NoError(t, err)
				assert.Equal(t, "0x92159C78f0f4523B9c60382bB888F30f10A46B3b", overrides[domain.ChainIDEthereumSepolia])
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: rentals
auth:
  jwt_public_key: "key"
subgraphs:
  rentals_url: "https://graph.example.com/rentals"
  marketplace_url: "https://graph.example.com/marketplace"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, domain.ChainIDEthereumMainnet, cfg.ChainID)
				assert.Equal(t, domain.NetworkEthereum, cfg.Network)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Empty(t, cfg.Server.CORSAllowedOrigins)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 30*time.Second, cfg.Subgraphs.HTTPTimeout)
				assert.Equal(t, uint64(3), cfg.Subgraphs.MaxRetries)
			},
		},
		{
			name: "missing jwt public key",
			configFile: `
database:
  host: localhost
  dbname: rentals
subgraphs:
  rentals_url: "https://graph.example.com/rentals"
  marketplace_url: "https://graph.example.com/marketplace"
`,
			expectError: true,
		},
		{
			name: "unsupported network",
			configFile: `
network: SOLANA
database:
  host: localhost
  dbname: rentals
auth:
  jwt_public_key: "key"
subgraphs:
  rentals_url: "https://graph.example.com/rentals"
  marketplace_url: "https://graph.example.com/marketplace"
`,
			expectError: true,
		},
		{
			name: "invalid port",
			configFile: `
database:
  host: localhost
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadRentalsSyncConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *RentalsSyncConfig)
	}{
		{
			name: "schedules",
			configFile: `
database:
  host: localhost
  dbname: rentals
subgraphs:
  rentals_url: "https://graph.example.com/rentals"
  marketplace_url: "https://graph.example.com/marketplace"
sync:
  metadata:
    schedule: "*/5 * * * *"
    run_on_start: false
  stop_timeout: 30s
`,
			validate: func(t *testing.T, cfg *RentalsSyncConfig) {
				assert.Equal(t, "*/5 * * * *", cfg.Sync.Metadata.Schedule)
				assert.False(t, cfg.Sync.Metadata.RunOnStart)
				assert.Equal(t, "@every 1m", cfg.Sync.Rentals.Schedule)
				assert.True(t, cfg.Sync.Rentals.RunOnStart)
				assert.Equal(t, "@every 1m", cfg.Sync.Indexes.Schedule)
				assert.Equal(t, 30*time.Second, cfg.Sync.StopTimeout)
			},
		},
		{
			name: "missing subgraph urls",
			configFile: `
database:
  host: localhost
  dbname: rentals
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadRentalsSyncConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestContractsConfig_RentalsOverrides(t *testing.T) {
	_, err := ContractsConfig{Rentals: map[string]string{"mainnet": "0x1"}}.RentalsOverrides()
	assert.Error(t, err)

	overrides, err := ContractsConfig{}.RentalsOverrides()
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper uses the LAND_RENTALS_ prefix
	envContent := `LAND_RENTALS_DEBUG=true
LAND_RENTALS_DATABASE_HOST=env-host
LAND_RENTALS_DATABASE_PORT=3306
LAND_RENTALS_DATABASE_DBNAME=env-db
LAND_RENTALS_SUBGRAPHS_RENTALS_URL=https://env.example.com/rentals
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, key := range []string{
			"LAND_RENTALS_DEBUG",
			"LAND_RENTALS_DATABASE_HOST",
			"LAND_RENTALS_DATABASE_PORT",
			"LAND_RENTALS_DATABASE_DBNAME",
			"LAND_RENTALS_SUBGRAPHS_RENTALS_URL",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
subgraphs:
  rentals_url: "https://file.example.com/rentals"
  marketplace_url: "https://file.example.com/marketplace"
`)

	cfg, err := LoadRentalsSyncConfig(configPath, envDir)
	require.NoError(t, err)

	// The .env file is loaded via godotenv.Overload and overrides the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "https://env.example.com/rentals", cfg.Subgraphs.RentalsURL)
	assert.Equal(t, "https://file.example.com/marketplace", cfg.Subgraphs.MarketplaceURL)
}
