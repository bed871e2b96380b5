package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		expected  string
	}{
		{1, 62.55, "62.5"},
		{2, 3.14159, "3.14"},
		{0, 49.6, "50"},
		{1, -0.25, "-0.2"},
	}

	for _, tt := range tests {
		fmtFloat, intFmt := createFormatters(tt.precision)
		assert.Equal(t, tt.expected, fmtFloat(tt.value))
		assert.Equal(t, "%d", intFmt)
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"index": 50}))
	assert.Equal(t, "{\n  \"index\": 50\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"sector", "note"}, func(w *csv.Writer) error {
		return w.Write([]string{"Sales", "tired, but ok"})
	})
	require.NoError(t, err)
	assert.Equal(t, "sector,note\nSales,\"tired, but ok\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error { return assert.AnError })
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "hello")
			return err
		}, "Wrote text")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))
	})

	t.Run("propagates writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote text")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/dir/out.txt", func(io.Writer) error { return nil }, "Wrote text")
		assert.Error(t, err)
	})
}

func TestTierLabel(t *testing.T) {
	plain := &contract.Config{UseColors: false}
	assert.Equal(t, "Concerning", tierLabel(schema.ConcerningTier, plain))
	assert.Equal(t, "-", tierLabel("", plain))

	colored := &contract.Config{UseColors: true}
	assert.Contains(t, tierLabel(schema.CriticalTier, colored), "Critical")
}

func TestJoinOrDash(t *testing.T) {
	assert.Equal(t, "-", joinOrDash(nil, ", "))
	assert.Equal(t, "a, b", joinOrDash([]string{"a", "b"}, ", "))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{40, 20},
		{80, 50},
		{120, 90},
		{300, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTableTextWidth(&contract.Config{Width: tt.width}))
	}
}
