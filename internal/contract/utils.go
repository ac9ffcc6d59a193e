package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Quality label constants.
const (
	HighValue   = "High"   // strong quality signal
	MediumValue = "Medium" // mixed quality signal
	LowValue    = "Low"    // weak quality signal
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgGreen, color.Bold)
	MediumColor = color.New(color.FgYellow)
	LowColor    = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for a quality value on the
// canonical [0,1] scale. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainLabel(quality float64) string {
	switch {
	case quality >= 0.7:
		return HighValue
	case quality >= 0.4:
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(quality float64) string {
	text := GetPlainLabel(quality)
	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// FormatPercent renders a [0,1] quality value as a display percentage.
// The pipeline is canonical [0,1] everywhere; percent exists only at the
// display boundary.
func FormatPercent(quality float64) string {
	return fmt.Sprintf("%.1f%%", quality*100)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. Empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for "..." plus content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// prediction store and model registry.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".notable_ml.db"
	}
	return filepath.Join(homeDir, ".notable_ml.db")
}

// GetDefaultModelsDir returns the default directory for model artifacts.
func GetDefaultModelsDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(homeDir, ".notable", "models")
}
