package config

import (
	"os"

	"github.com/limgen/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a single configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values overridden by a higher-precedence source.
	Shadowed map[ConfigSource]string
}

// ResolvedConfig holds every value the CLI resolves at startup.
type ResolvedConfig struct {
	ConfigPath        ResolvedValue
	PackageManager    ResolvedValue
	InfrastructureDir ResolvedValue
	AWSRegion         ResolvedValue
	AWSProfile        ResolvedValue
}

// Values returns the resolved values in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.PackageManager, r.InfrastructureDir, r.AWSRegion, r.AWSProfile}
}

// ResolveOptions are the raw inputs to ResolveAll.
type ResolveOptions struct {
	PackageManagerFlag    string
	InfrastructureDirFlag string
	AWSRegionFlag         string

	// Config is the loaded file configuration; may be nil.
	Config *Config
}

// resolve applies flag > env > config > default for one key.
func resolve(key, flag, envName, configValue, defaultValue string) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	envValue := os.Getenv(envName)

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flag},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) LIMGEN_CONFIG env, (3) ~/.limgen/config.yaml.
func ResolveConfigPath(flag string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flag, EnvConfig, "", paths.ConfigFile), nil
}

// ResolveAll resolves every runtime setting.
func ResolveAll(configPath ResolvedValue, opts ResolveOptions) *ResolvedConfig {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	return &ResolvedConfig{
		ConfigPath:        configPath,
		PackageManager:    resolve("packageManager", opts.PackageManagerFlag, EnvPackageManager, cfg.PackageManager, DefaultPackageManager),
		InfrastructureDir: resolve("infrastructureDir", opts.InfrastructureDirFlag, EnvInfrastructureDir, cfg.InfrastructureDir, DefaultInfrastructureDir),
		AWSRegion:         resolve("aws.region", opts.AWSRegionFlag, EnvAWSRegion, cfg.AWS.Region, ""),
		AWSProfile:        resolve("aws.profile", "", EnvAWSProfile, cfg.AWS.Profile, ""),
	}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
