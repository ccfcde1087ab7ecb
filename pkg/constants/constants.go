// Package constants provides shared constants for the debt-payoff application.
package constants

// DateTimeLayout is the format expected for calendar months in config files
// and is also the output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// BalanceEpsilon is the balance at or below which a debt counts as paid off.
	BalanceEpsilon = 0.01

	// DefaultMaxMonths bounds a payoff simulation (100 years).
	DefaultMaxMonths = 1200
)

// Strategy and run mode constants
const (
	// StrategySnowball orders debts by ascending balance.
	StrategySnowball = "snowball"

	// StrategyAvalanche orders debts by descending interest rate.
	StrategyAvalanche = "avalanche"

	// ModeCompare runs both strategies and reports the difference.
	ModeCompare = "compare"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultStatePath is the default snapshot location for the file store
	DefaultStatePath = "payoff-state.yaml"

	// DefaultStateKey is the default key used by key-value stores
	DefaultStateKey = "debt-payoff:plan"
)

// Storage backend constants
const (
	StorageNone   = "none"
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Optimizer defaults
const (
	// DefaultOptimizerTolerance is the bisection stopping width in currency units
	DefaultOptimizerTolerance = 0.01

	// DefaultOptimizerMaxIterations bounds the bisection loop
	DefaultOptimizerMaxIterations = 50
)
