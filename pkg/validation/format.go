// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/compound-growth/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatPDF, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatPDF, constants.OutputFormatYAML, format)
}

// ValidateKind checks if the simulation kind is one of the supported kinds.
func ValidateKind(kind string) error {
	switch kind {
	case constants.KindGrowth, constants.KindContribution, constants.KindTiming:
		return nil
	}
	return fmt.Errorf("expected simulation kind of %s, %s or %s, got %q",
		constants.KindGrowth, constants.KindContribution, constants.KindTiming, kind)
}
