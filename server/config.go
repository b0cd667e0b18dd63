// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2017-2023 The Spacemesh developers

package server

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap/zapcore"

	"github.com/farmpool/poold/db"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/pool"
)

const (
	defaultDbDirName      = "db"
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultMaxLogFiles    = 3
	defaultMaxLogFileSize = 10
	defaultRPCPort        = 50002
	defaultRESTPort       = 8080

	// genesis challenge of mainnet
	defaultGenesisChallenge = "ccd5bb71183532bff220ba46c268991a3ff07eb358e8255a65c30a2dce0e5fbb"
)

// Config defines the configuration options for poold.
//
// See loadConfig for further details regarding the
// configuration loading+parsing process.
type Config struct {
	PoolDir         string  `long:"pooldir"        description:"The base directory that contains poold's data, logs, configuration file, etc."`
	ConfigFile      string  `long:"configfile"     description:"Path to configuration file"                                                    short:"c"`
	DataDir         string  `long:"datadir"        description:"The directory to store poold's data within."                                   short:"b"`
	DbDir           string  `long:"dbdir"          description:"The directory to store DBs within"`
	LogDir          string  `long:"logdir"         description:"Directory to log output."`
	DebugLog        bool    `long:"debuglog"       description:"Enable debug logs"`
	JSONLog         bool    `long:"jsonlog"        description:"Whether to log in JSON format"`
	MaxLogFiles     int     `long:"maxlogfiles"    description:"Maximum logfiles to keep (0 for no rotation)"`
	MaxLogFileSize  int     `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	RawRPCListener  string  `long:"rpclisten"      description:"The interface/port/socket to listen for operator RPC connections"              short:"r"`
	RawRESTListener string  `long:"restlisten"     description:"The interface/port/socket to listen for farmer HTTP connections"               short:"w"`
	MetricsPort     *uint16 `long:"metrics-port"   description:"The port to expose metrics"`

	CPUProfile string `long:"cpuprofile" description:"Write CPU profile to the specified file"`
	Profile    string `long:"profile"    description:"Enable HTTP profiling on given port -- must be between 1024 and 65535"`

	Pool       pool.Config      `group:"Pool"`
	Node       NodeConfig       `group:"Node"`
	Registry   RegistryConfig   `group:"Registry"`
	Link       LinkConfig       `group:"Link"`
	Events     EventsConfig     `group:"Events"`
	Primitives PrimitivesConfig `group:"Primitives"`
}

//nolint:lll
type NodeConfig struct {
	NodeURL          string        `long:"node-url"             description:"URL of the full node RPC service"`
	WalletURL        string        `long:"wallet-url"           description:"URL of the wallet RPC service (empty to disable)"`
	CertFile         string        `long:"rpc-cert"             description:"Private certificate used to authenticate to the node and wallet"`
	KeyFile          string        `long:"rpc-key"              description:"Key of the private certificate"`
	Timeout          time.Duration `long:"rpc-timeout"          description:"Timeout of a single RPC call"`
	MaxRetries       uint          `long:"rpc-max-retries"      description:"Retries of a failed node call"`
	RetryBackoff     time.Duration `long:"rpc-retry-backoff"    description:"Wait before the first retry of a node call"`
	RetryMultiplier  float64       `long:"rpc-retry-multiplier" description:"Growth of the wait between retries"`
	CoinSpendCache   int           `long:"coin-spend-cache"     description:"Number of coin spends kept in memory"`
	GenesisChallenge string        `long:"genesis-challenge"    description:"Genesis challenge of the chain (hex)"`
}

//nolint:lll
type RegistryConfig struct {
	Backend        db.Backend `long:"registry-backend"      description:"Storage backend of the farmer registry (leveldb or pebble)"`
	MigrateFrom    db.Backend `long:"registry-migrate-from" description:"Copy the registry kept by this backend at start-up"`
	MigrateFromDir string     `long:"registry-migrate-dir"  description:"Directory of the registry to migrate from"`
}

//nolint:lll
type LinkConfig struct {
	RedisAddr     string        `long:"redis-addr"     description:"Address of the redis server holding account links"`
	RedisPassword string        `long:"redis-password" description:"Password of the redis server"`
	RedisDB       int           `long:"redis-db"       description:"Redis database of the account links"`
	CacheTTL      time.Duration `long:"link-cache-ttl" description:"How long a found account link is remembered"`
}

//nolint:lll
type EventsConfig struct {
	Brokers      []string      `long:"kafka-broker"        description:"Kafka broker accounting events are published to (repeatable, none disables events)"`
	SharesTopic  string        `long:"shares-topic"        description:"Topic of credited shares"`
	FarmersTopic string        `long:"farmers-topic"       description:"Topic of farmer record changes"`
	BatchTimeout time.Duration `long:"kafka-batch-timeout" description:"Longest wait before a batch of events is sent"`
}

type PrimitivesConfig struct {
	Library string `long:"primitives-lib" description:"Path of the native chia primitives library"`
}

// DefaultConfig returns a config with default hardcoded values.
func DefaultConfig() *Config {
	poolDir := "./poold"
	cacheDir, err := os.UserCacheDir()
	if err == nil {
		poolDir = filepath.Join(cacheDir, "poold")
	}

	return &Config{
		PoolDir:         poolDir,
		DataDir:         filepath.Join(poolDir, defaultDataDirname),
		DbDir:           filepath.Join(poolDir, defaultDbDirName),
		LogDir:          filepath.Join(poolDir, defaultLogDirname),
		MaxLogFiles:     defaultMaxLogFiles,
		MaxLogFileSize:  defaultMaxLogFileSize,
		RawRPCListener:  fmt.Sprintf("localhost:%d", defaultRPCPort),
		RawRESTListener: fmt.Sprintf("localhost:%d", defaultRESTPort),
		Pool:            pool.DefaultConfig(),
		Node: NodeConfig{
			NodeURL:          "https://localhost:8555",
			WalletURL:        "https://localhost:9256",
			Timeout:          30 * time.Second,
			MaxRetries:       3,
			RetryBackoff:     time.Second,
			RetryMultiplier:  2,
			CoinSpendCache:   10000,
			GenesisChallenge: defaultGenesisChallenge,
		},
		Registry: RegistryConfig{Backend: db.LevelDB},
		Link: LinkConfig{
			RedisAddr: "localhost:6379",
			CacheTTL:  time.Minute,
		},
		Events: EventsConfig{
			SharesTopic:  "pool-shares",
			FarmersTopic: "pool-farmers",
			BatchTimeout: 100 * time.Millisecond,
		},
	}
}

// ParseFlags reads values from command line arguments.
func ParseFlags(preCfg *Config) (*Config, error) {
	if _, err := flags.Parse(preCfg); err != nil {
		return nil, err
	}
	return preCfg, nil
}

// ReadConfigFile reads config from an ini file.
// It uses the provided `cfg` as a base config and overrides it with the values
// from the config file.
func ReadConfigFile(cfg *Config) (*Config, error) {
	if cfg.ConfigFile == "" {
		return cfg, nil
	}
	logging.FromContext(context.Background()).Sugar().Debugf("reading config from %s", cfg.ConfigFile)
	if err := flags.IniParse(cfg.ConfigFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from %v: %w", cfg.ConfigFile, err)
	}

	return cfg, nil
}

// SetupConfig expands paths and initializes filesystem.
func SetupConfig(cfg *Config) (*Config, error) {
	// If the provided pool directory is not the default, we'll modify the
	// path to all of the files and directories that will live within it.
	defaultCfg := DefaultConfig()
	if cfg.PoolDir != defaultCfg.PoolDir {
		if cfg.DataDir == defaultCfg.DataDir {
			cfg.DataDir = filepath.Join(cfg.PoolDir, defaultDataDirname)
		}
		if cfg.LogDir == defaultCfg.LogDir {
			cfg.LogDir = filepath.Join(cfg.PoolDir, defaultLogDirname)
		}
		if cfg.DbDir == defaultCfg.DbDir {
			cfg.DbDir = filepath.Join(cfg.PoolDir, defaultDbDirName)
		}
	}

	// Create the pool directory if it doesn't already exist.
	if err := os.MkdirAll(cfg.PoolDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create %v: %w", cfg.PoolDir, err)
	}

	// As soon as we're done parsing configuration options, ensure all paths
	// to directories and files are cleaned and expanded before attempting
	// to use them later on.
	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.DbDir = cleanAndExpandPath(cfg.DbDir)
	cfg.Registry.MigrateFromDir = cleanAndExpandPath(cfg.Registry.MigrateFromDir)
	cfg.Primitives.Library = cleanAndExpandPath(cfg.Primitives.Library)

	return cfg, nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		user, err := user.Current()
		if err == nil {
			homeDir = user.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// RegistryDir is the directory of the farmer registry.
func (c *Config) RegistryDir() string {
	return filepath.Join(c.DbDir, "registry")
}

// implement zap.ObjectMarshaler interface.
func (c NodeConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("node-url", c.NodeURL)
	enc.AddString("wallet-url", c.WalletURL)
	enc.AddDuration("timeout", c.Timeout)
	enc.AddUint("max-retries", c.MaxRetries)
	enc.AddString("genesis-challenge", c.GenesisChallenge)
	return nil
}

// implement zap.ObjectMarshaler interface.
func (c EventsConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("brokers", strings.Join(c.Brokers, ","))
	enc.AddString("shares-topic", c.SharesTopic)
	enc.AddString("farmers-topic", c.FarmersTopic)
	return nil
}
