package provision

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
)

// Environment variables holding the two required settings.
const (
	EnvScalingFactor = "TPCH_SCALING_FACTOR"
	EnvDataPath      = "TPCH_DATA_PATH"
)

// Defaults for the generator settings.
const (
	DefaultRepoURL       = "https://github.com/databricks/tpch-dbgen.git"
	DefaultBinary        = "dbgen"
	DefaultOutputPattern = "*.tbl"
)

const (
	errNotNumericFmt  = "%s=%q is not a number"
	errNotPositiveFmt = "%s=%q must be greater than 0"
	errBadPatternFmt  = "invalid output pattern %q: %v"
	errBinaryPathFmt  = "generator binary %q must be a file name, not a path"
	errCloneDepthFmt  = "clone depth cannot be negative: %d"
)

// Config is the input of a provisioning run.
type Config struct {
	// ScaleFactor is handed to the generator verbatim, e.g. "0.1".
	ScaleFactor string          `mapstructure:"scaling-factor" yaml:"scaling-factor,omitempty"`
	DataPath    string          `mapstructure:"data-path" yaml:"data-path,omitempty"`
	Generator   GeneratorConfig `mapstructure:"generator" yaml:"generator"`
}

// GeneratorConfig describes where the data generator comes from and how it
// is built and run. Every field has a default.
type GeneratorConfig struct {
	RepoURL    string `mapstructure:"repo-url" yaml:"repo-url"`
	CloneDepth int    `mapstructure:"clone-depth" yaml:"clone-depth"`
	// BuildCommand runs inside the cloned source tree.
	BuildCommand []string `mapstructure:"build-command" yaml:"build-command,flow"`
	// Binary is the generator executable produced by the build, relative to
	// the source tree.
	Binary        string `mapstructure:"binary" yaml:"binary"`
	OutputPattern string `mapstructure:"output-pattern" yaml:"output-pattern"`
	// WorkDir is where the temporary clone is created. Empty means the
	// system temp dir.
	WorkDir string `mapstructure:"work-dir" yaml:"work-dir,omitempty"`
	// KeepOnFailure leaves the temporary clone behind when a step fails.
	KeepOnFailure bool `mapstructure:"keep-on-failure" yaml:"keep-on-failure"`
}

// DefaultGeneratorConfig returns the settings for building dbgen from the
// databricks/tpch-dbgen repository.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RepoURL:       DefaultRepoURL,
		BuildCommand:  []string{"make"},
		Binary:        DefaultBinary,
		OutputPattern: DefaultOutputPattern,
	}
}

// AddToFlagSet registers the generator settings on fs.
func (c *GeneratorConfig) AddToFlagSet(fs *pflag.FlagSet) {
	d := DefaultGeneratorConfig()
	fs.String("generator.repo-url", d.RepoURL, "Repository to clone the data generator from")
	fs.Int("generator.clone-depth", 0, "Create a shallow clone with this many commits, 0 = full clone")
	fs.StringSlice("generator.build-command", d.BuildCommand, "Command run in the source tree to build the generator")
	fs.String("generator.binary", d.Binary, "Generator executable produced by the build")
	fs.String("generator.output-pattern", d.OutputPattern, "Glob matching the table files the generator writes")
	fs.String("generator.work-dir", "", "Directory to create the temporary clone in (default: system temp dir)")
	fs.Bool("generator.keep-on-failure", false, "Keep the temporary clone when a step fails")
}

// BindEnv binds the required settings to their environment variables.
func BindEnv(v *viper.Viper) error {
	if err := v.BindEnv("scaling-factor", EnvScalingFactor); err != nil {
		return err
	}
	return v.BindEnv("data-path", EnvDataPath)
}

// Validate checks that both required values are present and the generator
// settings are usable. Unset generator settings are filled with defaults.
func (c *Config) Validate() error {
	if c.ScaleFactor == "" {
		return &MissingConfigurationError{Name: EnvScalingFactor}
	}
	if c.DataPath == "" {
		return &MissingConfigurationError{Name: EnvDataPath}
	}

	scale, err := strconv.ParseFloat(c.ScaleFactor, 64)
	if err != nil {
		return &InvalidConfigurationError{
			Name:   EnvScalingFactor,
			Reason: fmt.Sprintf(errNotNumericFmt, EnvScalingFactor, c.ScaleFactor),
		}
	}
	if !(scale > 0) {
		return &InvalidConfigurationError{
			Name:   EnvScalingFactor,
			Reason: fmt.Sprintf(errNotPositiveFmt, EnvScalingFactor, c.ScaleFactor),
		}
	}

	return c.Generator.Validate()
}

// Validate fills in defaults for unset fields and checks the rest.
func (c *GeneratorConfig) Validate() error {
	d := DefaultGeneratorConfig()
	if c.RepoURL == "" {
		c.RepoURL = d.RepoURL
	}
	if len(c.BuildCommand) == 0 {
		c.BuildCommand = d.BuildCommand
	}
	if c.Binary == "" {
		c.Binary = d.Binary
	}
	if c.OutputPattern == "" {
		c.OutputPattern = d.OutputPattern
	}

	if c.CloneDepth < 0 {
		return &InvalidConfigurationError{Name: "generator.clone-depth", Reason: fmt.Sprintf(errCloneDepthFmt, c.CloneDepth)}
	}
	if filepath.Base(c.Binary) != c.Binary {
		return &InvalidConfigurationError{Name: "generator.binary", Reason: fmt.Sprintf(errBinaryPathFmt, c.Binary)}
	}
	if _, err := filepath.Match(c.OutputPattern, ""); err != nil {
		return &InvalidConfigurationError{Name: "generator.output-pattern", Reason: fmt.Sprintf(errBadPatternFmt, c.OutputPattern, err)}
	}
	return nil
}
