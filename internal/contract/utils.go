package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/huangsam/workwell/schema"
)

// Tier label constants.
const (
	ExcellentValue  = "Excellent"
	GoodValue       = "Good"
	ModerateValue   = "Moderate"
	ConcerningValue = "Concerning"
	CriticalValue   = "Critical"
)

// Color variables for console output.
var (
	ExcellentColor  = color.New(color.FgHiGreen, color.Bold) // ExcellentColor stands out as the best band.
	GoodColor       = color.New(color.FgGreen)               // GoodColor is the plain healthy band.
	ModerateColor   = color.New(color.FgYellow)              // ModerateColor represents standard caution, not bold.
	ConcerningColor = color.New(color.FgMagenta, color.Bold) // ConcerningColor stands in for orange.
	CriticalColor   = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a tier.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(tier schema.Tier) string {
	switch tier {
	case schema.ExcellentTier:
		return ExcellentValue
	case schema.GoodTier:
		return GoodValue
	case schema.ModerateTier:
		return ModerateValue
	case schema.ConcerningTier:
		return ConcerningValue
	case schema.CriticalTier:
		return CriticalValue
	default:
		return string(tier)
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(tier schema.Tier) string {
	text := GetPlainLabel(tier)

	switch tier {
	case schema.ExcellentTier:
		return ExcellentColor.Sprint(text)
	case schema.GoodTier:
		return GoodColor.Sprint(text)
	case schema.ModerateTier:
		return ModerateColor.Sprint(text)
	case schema.ConcerningTier:
		return ConcerningColor.Sprint(text)
	case schema.CriticalTier:
		return CriticalColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRecordDBFilePath returns the path to the SQLite DB file for record storage.
func GetRecordDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".workwell_records.db"
	}
	return filepath.Join(homeDir, ".workwell_records.db")
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".workwell_cache.db"
	}
	return filepath.Join(homeDir, ".workwell_cache.db")
}

// TruncateRunes cuts s to at most n runes without splitting a UTF-8 sequence.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
