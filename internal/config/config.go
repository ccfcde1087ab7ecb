// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"github.com/iwvelando/debt-payoff/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for debt-payoff.
type Configuration struct {
	Plan    Plan          `yaml:"plan"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`

	strategyDefaulted bool
}

// Plan is the portfolio and budget to simulate.
type Plan struct {
	StartDate    string        `yaml:"startDate,omitempty"`
	ExtraPayment float64       `yaml:"extraPayment"`
	Strategy     string        `yaml:"strategy,omitempty"` // snowball, avalanche, compare
	MaxMonths    int           `yaml:"maxMonths,omitempty"`
	Debts        []payoff.Debt `yaml:"debts"`
	Target       *Target       `yaml:"target,omitempty"`
}

// StorageConfig selects where the last plan inputs are persisted.
type StorageConfig struct {
	Backend   string `yaml:"backend,omitempty"` // none, memory, file, sqlite, redis
	Path      string `yaml:"path,omitempty"`
	RedisAddr string `yaml:"redisAddr,omitempty"`
	Key       string `yaml:"key,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills in unset fields and assigns IDs to debts without one.
func (c *Configuration) ApplyDefaults() {
	if strings.TrimSpace(c.Plan.Strategy) == "" {
		c.strategyDefaulted = true
	}
	c.Plan.Strategy = validation.NormalizeMode(c.Plan.Strategy)
	if c.Plan.MaxMonths == 0 {
		c.Plan.MaxMonths = constants.DefaultMaxMonths
	}
	c.Plan.Debts = AssignDebtIDs(c.Plan.Debts)
	if c.Plan.Target != nil {
		c.Plan.Target.Normalize()
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = constants.StorageNone
	}
	if c.Storage.Path == "" {
		c.Storage.Path = constants.DefaultStatePath
	}
	if c.Storage.Key == "" {
		c.Storage.Key = constants.DefaultStateKey
	}

	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
}

// debtIDNamespace scopes the name-based UUIDs handed to debts without an ID.
var debtIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/iwvelando/debt-payoff/debt"))

// AssignDebtIDs returns a copy of debts in which every empty ID is replaced
// by a UUID derived from the debt's position and name, so the same input
// always gets the same IDs.
func AssignDebtIDs(debts []payoff.Debt) []payoff.Debt {
	if debts == nil {
		return nil
	}
	out := payoff.CloneDebts(debts)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			key := fmt.Sprintf("%d/%s", i, strings.TrimSpace(out[i].Name))
			out[i].ID = uuid.NewSHA1(debtIDNamespace, []byte(key)).String()
		}
	}
	return out
}

// Validate returns an error for configuration that cannot be run.
func (c *Configuration) Validate() error {
	if err := validation.ValidateMode(c.Plan.Strategy); err != nil {
		return err
	}
	if c.Plan.StartDate != "" {
		if err := datetime.ValidateMonth(c.Plan.StartDate); err != nil {
			return fmt.Errorf("plan start date: %w", err)
		}
	}
	if c.Plan.MaxMonths < 0 {
		return fmt.Errorf("plan maxMonths %d must not be negative", c.Plan.MaxMonths)
	}
	if err := payoff.Validate(c.Plan.Debts, c.Plan.ExtraPayment); err != nil {
		return err
	}
	if c.Plan.Target != nil {
		if err := c.Plan.Target.Resolve(c.Plan.StartDate); err != nil {
			return err
		}
		if err := c.Plan.Target.Validate(); err != nil {
			return err
		}
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case constants.StorageNone, constants.StorageMemory, constants.StorageFile, constants.StorageSQLite:
	case constants.StorageRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage backend %s requires redisAddr", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("storage backend %q is not supported", c.Storage.Backend)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if c.strategyDefaulted {
		warnings = append(warnings, fmt.Sprintf("No strategy configured, defaulting to %s", c.Plan.Strategy))
	}
	return append(warnings, validation.PlanWarnings(c.Plan.Debts, c.Plan.ExtraPayment)...)
}

// SetStrategy overrides the configured strategy or mode.
func (c *Configuration) SetStrategy(strategy string) {
	c.Plan.Strategy = validation.NormalizeMode(strategy)
	c.strategyDefaulted = false
}

// SimulatorOptions maps the plan onto payoff simulator options.
func (c *Configuration) SimulatorOptions() payoff.Options {
	return payoff.Options{
		MaxMonths: c.Plan.MaxMonths,
		StartDate: c.Plan.StartDate,
	}
}
