// Package config provides configuration loading and management.
package config

// Defaults applied when neither flag, environment nor file set a value.
const (
	DefaultPackageManager    = "npm"
	DefaultInfrastructureDir = "infrastructure"
)

// Environment variables recognized by the CLI.
const (
	EnvConfig            = "LIMGEN_CONFIG"
	EnvPackageManager    = "LIMGEN_PACKAGE_MANAGER"
	EnvInfrastructureDir = "LIMGEN_INFRASTRUCTURE_DIR"
	EnvAWSRegion         = "LIMGEN_AWS_REGION"
	EnvAWSProfile        = "LIMGEN_AWS_PROFILE"
)

// AWSConfig holds settings used when talking to AWS directly (env-pull).
type AWSConfig struct {
	Region  string `mapstructure:"region" json:"region,omitempty"`
	Profile string `mapstructure:"profile" json:"profile,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// nil means the default (on).
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty"`
}

// Config represents the limgen CLI configuration file (~/.limgen/config.yaml).
type Config struct {
	// PackageManager installs infrastructure packages: npm, pnpm or yarn.
	PackageManager string `mapstructure:"packageManager" json:"packageManager,omitempty"`

	// InfrastructureDir is the workspace-relative directory holding generated code.
	InfrastructureDir string `mapstructure:"infrastructureDir" json:"infrastructureDir,omitempty"`

	AWS AWSConfig `mapstructure:"aws" json:"aws,omitempty"`
	Log LogConfig `mapstructure:"log" json:"log,omitempty"`
}

// DefaultConfig returns a Config with every default populated.
func DefaultConfig() *Config {
	return &Config{
		PackageManager:    DefaultPackageManager,
		InfrastructureDir: DefaultInfrastructureDir,
	}
}

// WithDefaults returns a copy of c with empty fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	d := DefaultConfig()
	if out.PackageManager == "" {
		out.PackageManager = d.PackageManager
	}
	if out.InfrastructureDir == "" {
		out.InfrastructureDir = d.InfrastructureDir
	}
	return &out
}

// DefaultConfigYAML is written by 'limgen config init'.
const DefaultConfigYAML = `# limgen configuration
#
# Values here are overridden by LIMGEN_* environment variables and by flags.

# Package manager used to install infrastructure dependencies: npm, pnpm or yarn.
packageManager: npm

# Directory, relative to the application root, that holds generated infrastructure.
infrastructureDir: infrastructure

# Region and profile used by env-pull when reading secrets. Unset values fall
# back to the AWS SDK defaults.
# aws:
#   region: us-east-1
#   profile: default

log:
  timestamps: true
`
