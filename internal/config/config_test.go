package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Plan.StartDate != "2026-11" {
		t.Errorf("Expected StartDate = 2026-11, got %v", config.Plan.StartDate)
	}
	if config.Plan.ExtraPayment != 200 {
		t.Errorf("Expected ExtraPayment = 200, got %v", config.Plan.ExtraPayment)
	}
	if config.Plan.Strategy != constants.ModeCompare {
		t.Errorf("Expected strategy compare, got %v", config.Plan.Strategy)
	}
	if config.Plan.MaxMonths != 600 {
		t.Errorf("Expected MaxMonths = 600, got %v", config.Plan.MaxMonths)
	}
	if len(config.Plan.Debts) != 3 {
		t.Fatalf("Expected 3 debts, got %d", len(config.Plan.Debts))
	}

	visa := config.Plan.Debts[0]
	if visa.ID != "visa" || visa.Name != "Visa" || visa.Balance != 4200 ||
		visa.AnnualInterestRate != 22.9 || visa.MinimumPayment != 120 {
		t.Errorf("unexpected first debt %+v", visa)
	}
	if config.Plan.Debts[2].ID == "" {
		t.Errorf("Expected a generated ID for the debt without one")
	}

	if config.Plan.Target == nil {
		t.Fatalf("Expected a target directive")
	}
	if config.Plan.Target.Months != 36 || config.Plan.Target.MaxExtraPayment != 2000 {
		t.Errorf("unexpected target %+v", *config.Plan.Target)
	}
	if config.Plan.Target.Tolerance != constants.DefaultOptimizerTolerance {
		t.Errorf("Expected default tolerance, got %v", config.Plan.Target.Tolerance)
	}

	if config.Storage.Backend != constants.StorageFile {
		t.Errorf("Expected file storage, got %v", config.Storage.Backend)
	}
	if config.Storage.Key != constants.DefaultStateKey {
		t.Errorf("Expected default storage key, got %v", config.Storage.Key)
	}
	if config.Logging.Level != "info" || config.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected pretty output, got %v", config.Output.Format)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationFromReaderDefaults(t *testing.T) {
	yaml := `
plan:
  extraPayment: 50
  debts:
    - balance: 1000
      annualInterestRate: 12
      minimumPayment: 25
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Plan.Strategy != constants.ModeCompare {
		t.Errorf("Expected empty strategy to default to compare, got %q", config.Plan.Strategy)
	}
	if config.Plan.MaxMonths != constants.DefaultMaxMonths {
		t.Errorf("Expected default max months, got %d", config.Plan.MaxMonths)
	}
	if config.Storage.Backend != constants.StorageNone {
		t.Errorf("Expected storage backend none, got %q", config.Storage.Backend)
	}
	if config.Storage.Path != constants.DefaultStatePath {
		t.Errorf("Expected default state path, got %q", config.Storage.Path)
	}
	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected pretty output, got %q", config.Output.Format)
	}
	if config.Plan.Target != nil {
		t.Errorf("Expected no target directive")
	}
	if len(config.Plan.Debts) != 1 || config.Plan.Debts[0].ID == "" {
		t.Errorf("Expected one debt with a generated ID, got %+v", config.Plan.Debts)
	}
}

func TestLoadConfigurationFromReaderInvalidYAML(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("plan: [unclosed")); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}

func TestAssignDebtIDs(t *testing.T) {
	debts := []payoff.Debt{
		{ID: "keep", Balance: 1},
		{Balance: 2},
		{ID: "  ", Balance: 3},
	}
	got := AssignDebtIDs(debts)

	if got[0].ID != "keep" {
		t.Errorf("existing ID replaced: %q", got[0].ID)
	}
	if got[1].ID == "" || got[2].ID == "" || got[1].ID == got[2].ID {
		t.Errorf("expected distinct generated IDs, got %q and %q", got[1].ID, got[2].ID)
	}
	if debts[1].ID != "" {
		t.Errorf("input slice was mutated")
	}

	again := AssignDebtIDs(debts)
	if again[1].ID != got[1].ID || again[2].ID != got[2].ID {
		t.Errorf("generated IDs changed between calls: %q/%q then %q/%q",
			got[1].ID, got[2].ID, again[1].ID, again[2].ID)
	}
	if AssignDebtIDs(nil) != nil {
		t.Errorf("expected nil for nil input")
	}
}

func validConfiguration() Configuration {
	c := Configuration{
		Plan: Plan{
			ExtraPayment: 100,
			Strategy:     constants.StrategyAvalanche,
			Debts: []payoff.Debt{
				{ID: "a", Balance: 500, AnnualInterestRate: 10, MinimumPayment: 25},
			},
		},
	}
	c.ApplyDefaults()
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Configuration) {}},
		{name: "unknown strategy", mutate: func(c *Configuration) { c.Plan.Strategy = "tortoise" }, wantErr: "expected strategy"},
		{name: "bad start date", mutate: func(c *Configuration) { c.Plan.StartDate = "2026/01" }, wantErr: "start date"},
		{name: "negative max months", mutate: func(c *Configuration) { c.Plan.MaxMonths = -1 }, wantErr: "maxMonths"},
		{name: "empty debts", mutate: func(c *Configuration) { c.Plan.Debts = nil }, wantErr: string(payoff.ReasonEmptyDebtList)},
		{name: "negative extra", mutate: func(c *Configuration) { c.Plan.ExtraPayment = -1 }, wantErr: string(payoff.ReasonNegativeExtraPayment)},
		{name: "bad target", mutate: func(c *Configuration) { c.Plan.Target = &Target{Months: 0} }, wantErr: "target months"},
		{name: "bad output", mutate: func(c *Configuration) { c.Output.Format = "xml" }, wantErr: "output format"},
		{name: "unknown storage", mutate: func(c *Configuration) { c.Storage.Backend = "s3" }, wantErr: "not supported"},
		{name: "redis without address", mutate: func(c *Configuration) { c.Storage.Backend = constants.StorageRedis }, wantErr: "redisAddr"},
		{name: "sqlite", mutate: func(c *Configuration) { c.Storage.Backend = constants.StorageSQLite }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfiguration()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	c := validConfiguration()
	if warnings := c.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	c.Plan.Debts = append(c.Plan.Debts, payoff.Debt{ID: "b", Balance: 10000, AnnualInterestRate: 24, MinimumPayment: 50})
	if warnings := c.ValidateConfiguration(); len(warnings) == 0 {
		t.Errorf("expected a warning for a minimum below monthly interest")
	}
}

func TestValidateConfigurationDefaultStrategyWarning(t *testing.T) {
	c := validConfiguration()
	c.Plan.Strategy = ""
	c.ApplyDefaults()

	if c.Plan.Strategy != constants.ModeCompare {
		t.Fatalf("Strategy = %q, want %q", c.Plan.Strategy, constants.ModeCompare)
	}
	warnings := c.ValidateConfiguration()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "defaulting to compare") {
		t.Errorf("expected a default strategy warning, got %v", warnings)
	}

	c.SetStrategy("Snowball")
	if c.Plan.Strategy != constants.StrategySnowball {
		t.Errorf("Strategy = %q after override, want snowball", c.Plan.Strategy)
	}
	if warnings := c.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings after an explicit strategy, got %v", warnings)
	}
}

func TestSimulatorOptions(t *testing.T) {
	c := validConfiguration()
	c.Plan.StartDate = "2027-03"
	opts := c.SimulatorOptions()
	if opts.MaxMonths != constants.DefaultMaxMonths || opts.StartDate != "2027-03" {
		t.Errorf("unexpected options %+v", opts)
	}
}
