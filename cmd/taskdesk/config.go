// Config loading for the taskdesk CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/taskdesk/internal/cache"
	"github.com/mesh-intelligence/taskdesk/internal/paths"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TASKDESK"

	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyReadOnly        = "read_only"
	cfgKeyMockLatency     = "mock.latency"
	cfgKeyStaleTime       = "cache.stale_time"
	cfgKeyRetry           = "cache.retry"
	cfgKeyMutationTimeout = "cache.mutation_timeout"
	cfgKeyServerAddr      = "server.addr"

	defaultBackend    = types.BackendMock
	defaultServerAddr = ":8080"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	ConfigDir       string
	DataDir         string
	Backend         string
	ReadOnly        bool
	MockLatency     time.Duration
	StaleTime       time.Duration
	Retry           int
	MutationTimeout time.Duration
	ServerAddr      string
}

// loadSettings reads config.yaml from the resolved config directory using
// Viper, applies TASKDESK_* environment overrides and then the flags.
// A missing config.yaml is not an error.
func loadSettings(f rootFlags, flags *pflag.FlagSet) (settings, error) {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyReadOnly, false)
	v.SetDefault(cfgKeyMockLatency, types.DefaultMockLatency)
	v.SetDefault(cfgKeyStaleTime, cache.DefaultStaleTime)
	v.SetDefault(cfgKeyRetry, cache.DefaultRetry)
	v.SetDefault(cfgKeyMutationTimeout, time.Duration(0))
	v.SetDefault(cfgKeyServerAddr, defaultServerAddr)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag(cfgKeyBackend, flags.Lookup("backend")); err != nil {
		return settings{}, fmt.Errorf("bind backend flag: %w", err)
	}
	if err := v.BindPFlag(cfgKeyReadOnly, flags.Lookup("read-only")); err != nil {
		return settings{}, fmt.Errorf("bind read-only flag: %w", err)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	return settings{
		ConfigDir:       configDir,
		DataDir:         dataDir,
		Backend:         v.GetString(cfgKeyBackend),
		ReadOnly:        v.GetBool(cfgKeyReadOnly),
		MockLatency:     v.GetDuration(cfgKeyMockLatency),
		StaleTime:       v.GetDuration(cfgKeyStaleTime),
		Retry:           v.GetInt(cfgKeyRetry),
		MutationTimeout: v.GetDuration(cfgKeyMutationTimeout),
		ServerAddr:      v.GetString(cfgKeyServerAddr),
	}, nil
}

// backendConfig is the Config passed to Backend.Attach.
func (s settings) backendConfig() types.Config {
	return types.Config{
		Backend:     s.Backend,
		DataDir:     s.DataDir,
		ReadOnly:    s.ReadOnly,
		MockLatency: s.MockLatency,
	}
}

// cacheOptions configures the task and note clients. A configured retry
// count of zero disables retries.
func (s settings) cacheOptions(notifier cache.Notifier) cache.Options {
	retry := s.Retry
	if retry == 0 {
		retry = -1
	}
	return cache.Options{
		StaleTime:       s.StaleTime,
		Retry:           retry,
		MutationTimeout: s.MutationTimeout,
		Notifier:        notifier,
	}
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	ReadOnly bool   `yaml:"read_only"`
	Mock     struct {
		Latency string `yaml:"latency"`
	} `yaml:"mock"`
	Cache struct {
		StaleTime       string `yaml:"stale_time"`
		Retry           int    `yaml:"retry"`
		MutationTimeout string `yaml:"mutation_timeout"`
	} `yaml:"cache"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func newConfigFile(s settings) configFile {
	var cfg configFile
	cfg.Backend = s.Backend
	cfg.ReadOnly = s.ReadOnly
	cfg.Mock.Latency = s.MockLatency.String()
	cfg.Cache.StaleTime = s.StaleTime.String()
	cfg.Cache.Retry = s.Retry
	cfg.Cache.MutationTimeout = s.MutationTimeout.String()
	cfg.Server.Addr = s.ServerAddr
	return cfg
}

// writeConfigIfMissing creates config.yaml from s if the file does not
// exist. It reports whether a file was written.
func writeConfigIfMissing(path string, s settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(newConfigFile(s))
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := "# taskdesk configuration. Environment variables TASKDESK_<KEY> override these values.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
