// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// NormalizeMode lowercases a run mode and defaults an empty one to compare.
func NormalizeMode(mode string) string {
	trimmed := strings.ToLower(strings.TrimSpace(mode))
	if trimmed == "" {
		return constants.ModeCompare
	}
	return trimmed
}

// ValidateMode checks that mode is snowball, avalanche or compare.
func ValidateMode(mode string) error {
	switch mode {
	case constants.StrategySnowball, constants.StrategyAvalanche, constants.ModeCompare:
		return nil
	default:
		return fmt.Errorf("expected strategy of %s, %s or %s, got %s",
			constants.StrategySnowball, constants.StrategyAvalanche, constants.ModeCompare, mode)
	}
}
