package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		tier     schema.Tier
		expected string
	}{
		{schema.ExcellentTier, ExcellentValue},
		{schema.GoodTier, GoodValue},
		{schema.ModerateTier, ModerateValue},
		{schema.ConcerningTier, ConcerningValue},
		{schema.CriticalTier, CriticalValue},
		{schema.Tier("other"), "other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.tier))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	for _, tier := range schema.AllTiers {
		t.Run(string(tier), func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetColorLabel(tier), GetPlainLabel(tier))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	records := GetRecordDBFilePath()
	assert.Contains(t, records, ".workwell_records.db")
	assert.True(t, strings.HasPrefix(records, homeDir), "path %s should start with home dir %s", records, homeDir)

	cache := GetCacheDBFilePath()
	assert.Contains(t, cache, ".workwell_cache.db")
	assert.NotEqual(t, records, cache)
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short text unchanged", "tudo bem", 20, "tudo bem"},
		{"exact length unchanged", "abc", 3, "abc"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"multibyte cut", "ótimo dia", 2, "ót"},
		{"zero limit", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRunes(tt.input, tt.n))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "a long...", TruncateText("a long comment", 9))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
