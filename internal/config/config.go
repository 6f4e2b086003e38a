package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the connector.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Gate        GateConfig        `yaml:"gate"`
	Spot        SpotConfig        `yaml:"spot"`
	Explorer    ExplorerConfig    `yaml:"explorer"`
	NodeGateway NodeGatewayConfig `yaml:"nodeGateway"`
	Accounts    AccountsConfig    `yaml:"accounts"`
	Performance PerformanceConfig `yaml:"performance"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// GateConfig holds the configuration for the primary balance/fee provider.
type GateConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// SpotConfig holds the configuration for the spot-rate provider.
type SpotConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	DefaultCurrency      string `yaml:"defaultCurrency"` // e.g., "usd"
}

// ExplorerConfig holds the configuration for the block-explorer provider.
type ExplorerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	BatchSize            int    `yaml:"batchSize"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
}

// NodeGatewayConfig holds the configuration for the backend JSON-RPC relay.
type NodeGatewayConfig struct {
	BaseURL                  string `yaml:"baseURL"`
	ConnectionTimeoutSeconds int    `yaml:"connectionTimeoutSeconds"`
	RPCCallTimeoutSeconds    int    `yaml:"rpcCallTimeoutSeconds"`
	ClientTTLMinutes         int    `yaml:"clientTTLMinutes"`
}

// AccountsConfig holds the configuration for the synced-accounts source.
type AccountsConfig struct {
	File string `yaml:"file"`
}

// PerformanceConfig holds performance-related configuration.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"maxConcurrentRoutines"`
}

// LoadConfig loads configuration from a YAML file and applies defaults for
// anything the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Gate.RequestTimeoutMillis == 0 {
		cfg.Gate.RequestTimeoutMillis = 10000
		logrus.Infof("Gate.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Gate.RequestTimeoutMillis)
	}
	if cfg.Spot.RequestTimeoutMillis == 0 {
		cfg.Spot.RequestTimeoutMillis = 10000
		logrus.Infof("Spot.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Spot.RequestTimeoutMillis)
	}
	if cfg.Spot.DefaultCurrency == "" {
		cfg.Spot.DefaultCurrency = "usd"
	}
	if cfg.Explorer.RequestTimeoutMillis == 0 {
		cfg.Explorer.RequestTimeoutMillis = 10000
		logrus.Infof("Explorer.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Explorer.RequestTimeoutMillis)
	}
	if cfg.Explorer.BatchSize == 0 {
		cfg.Explorer.BatchSize = 20
		logrus.Infof("Explorer.BatchSize not set, defaulting to %d", cfg.Explorer.BatchSize)
	}
	if cfg.Explorer.RateLimit == 0 {
		cfg.Explorer.RateLimit = 10
	}
	if cfg.Explorer.BurstLimit == 0 {
		cfg.Explorer.BurstLimit = 5
	}
	if cfg.NodeGateway.ConnectionTimeoutSeconds <= 0 {
		cfg.NodeGateway.ConnectionTimeoutSeconds = 10
	}
	if cfg.NodeGateway.RPCCallTimeoutSeconds <= 0 {
		cfg.NodeGateway.RPCCallTimeoutSeconds = 10
		logrus.Infof("NodeGateway.RPCCallTimeoutSeconds not set, defaulting to %d s", cfg.NodeGateway.RPCCallTimeoutSeconds)
	}
	if cfg.NodeGateway.ClientTTLMinutes <= 0 {
		cfg.NodeGateway.ClientTTLMinutes = 60
	}
	if cfg.Accounts.File == "" {
		cfg.Accounts.File = "data/accounts.json"
	}
	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
		logrus.Infof("Performance.MaxConcurrentRoutines not set, defaulting to %d", cfg.Performance.MaxConcurrentRoutines)
	}
}
