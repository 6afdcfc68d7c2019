package common

import (
	"fmt"
	"slices"

	"resumescore/internal/utils"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ResolveOutputFormat picks the report format for a command: the explicit
// flag wins, then the output file extension, then the configured default.
func ResolveOutputFormat(flag, outputFile, defaultFormat string, supportedFormats []string) (string, error) {
	format := flag
	if format == "" {
		format = utils.OutputFormatFromFile(outputFile)
	}
	if format == "" {
		format = defaultFormat
	}
	if err := ValidateOutputFormat(format, supportedFormats); err != nil {
		return "", err
	}
	return format, nil
}
