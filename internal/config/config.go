package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins lists the browser origins allowed to call the API. Empty allows all.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"` // PEM encoded RSA public key
}

// SubgraphsConfig holds the GraphQL endpoints of the indexers
type SubgraphsConfig struct {
	RentalsURL     string        `mapstructure:"rentals_url"`
	MarketplaceURL string        `mapstructure:"marketplace_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	MaxRetries     uint64        `mapstructure:"max_retries"`
}

// ContractsConfig overrides the rentals contract address per chain
type ContractsConfig struct {
	Rentals map[string]string `mapstructure:"rentals"` // chain id -> address
}

// JobConfig holds the schedule of a sync job
type JobConfig struct {
	Schedule   string `mapstructure:"schedule"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// SyncConfig holds the schedules of the reconciliation jobs
type SyncConfig struct {
	Metadata    JobConfig     `mapstructure:"metadata"`
	Rentals     JobConfig     `mapstructure:"rentals"`
	Indexes     JobConfig     `mapstructure:"indexes"`
	StopTimeout time.Duration `mapstructure:"stop_timeout"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	ChainID    domain.ChainID  `mapstructure:"chain_id"`
	Network    domain.Network  `mapstructure:"network"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Subgraphs  SubgraphsConfig `mapstructure:"subgraphs"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
}

// RentalsSyncConfig holds configuration for the rentals-sync process
type RentalsSyncConfig struct {
	BaseConfig `mapstructure:",squash"`
	ChainID    domain.ChainID  `mapstructure:"chain_id"`
	Network    domain.Network  `mapstructure:"network"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Subgraphs  SubgraphsConfig `mapstructure:"subgraphs"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Sync       SyncConfig      `mapstructure:"sync"`
}

// RentalsOverrides parses the configured rentals contract addresses keyed by chain id
func (c ContractsConfig) RentalsOverrides() (map[domain.ChainID]string, error) {
	overrides := make(map[domain.ChainID]string, len(c.Rentals))
	for key, address := range c.Rentals {
		var chainID int64
		if _, err := fmt.Sscan(key, &chainID); err != nil {
			return nil, fmt.Errorf("invalid chain id %q in contracts.rentals: %w", key, err)
		}
		overrides[domain.ChainID(chainID)] = address
	}
	return overrides, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("chain_id", int64(domain.ChainIDEthereumMainnet))
	v.SetDefault("network", string(domain.NetworkEthereum))
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("subgraphs.http_timeout", "30s")
	v.SetDefault("subgraphs.max_retries", 3)
}

func validateCommon(chainID domain.ChainID, network domain.Network, db DatabaseConfig, subgraphs SubgraphsConfig) error {
	var errs []error
	if chainID <= 0 {
		errs = append(errs, errors.New("chain_id is required"))
	}
	if !domain.IsValidNetwork(network) {
		errs = append(errs, fmt.Errorf("unsupported network %q", network))
	}
	if db.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if db.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if subgraphs.RentalsURL == "" {
		errs = append(errs, errors.New("subgraphs.rentals_url is required"))
	}
	if subgraphs.MarketplaceURL == "" {
		errs = append(errs, errors.New("subgraphs.marketplace_url is required"))
	}
	return errors.Join(errs...)
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	errs := []error{validateCommon(config.ChainID, config.Network, config.Database, config.Subgraphs)}
	if config.Auth.JWTPublicKey == "" {
		errs = append(errs, errors.New("auth.jwt_public_key is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// LoadRentalsSyncConfig loads configuration for rentals-sync
func LoadRentalsSyncConfig(configFile string, envPath string) (*RentalsSyncConfig, error) {
	v := configureViper("rentals-sync", configFile, envPath)

	// Set defaults
	setCommonDefaults(v)
	v.SetDefault("sync.metadata.schedule", "@every 1m")
	v.SetDefault("sync.rentals.schedule", "@every 1m")
	v.SetDefault("sync.indexes.schedule", "@every 1m")
	v.SetDefault("sync.metadata.run_on_start", true)
	v.SetDefault("sync.rentals.run_on_start", true)
	v.SetDefault("sync.indexes.run_on_start", true)
	v.SetDefault("sync.stop_timeout", "2m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RentalsSyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(config.ChainID, config.Network, config.Database, config.Subgraphs); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/rentals-sync/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("LAND_RENTALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"chain_id",
		"network",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		// Subgraphs
		"subgraphs.rentals_url",
		"subgraphs.marketplace_url",
		"subgraphs.http_timeout",
		"subgraphs.max_retries",
		// Sync
		"sync.metadata.schedule",
		"sync.metadata.run_on_start",
		"sync.rentals.schedule",
		"sync.rentals.run_on_start",
		"sync.indexes.schedule",
		"sync.indexes.run_on_start",
		"sync.stop_timeout",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
