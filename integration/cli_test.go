//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points both stores at fresh SQLite files.
func sqliteEnv(t *testing.T) []string {
	dir := t.TempDir()
	return []string{
		"WORKWELL_RECORD_BACKEND=sqlite",
		"WORKWELL_RECORD_DB_CONNECT=" + filepath.Join(dir, "records.db"),
		"WORKWELL_CACHE_BACKEND=sqlite",
		"WORKWELL_CACHE_DB_CONNECT=" + filepath.Join(dir, "cache.db"),
	}
}

func TestWorkwellWithSQLite(t *testing.T) {
	runWorkflow(t, sqliteEnv(t))
}

func TestWorkwellWithoutCache(t *testing.T) {
	env := sqliteEnv(t)
	env[2] = "WORKWELL_CACHE_BACKEND=none"
	runWorkflow(t, env)
}

func TestScoreCommand(t *testing.T) {
	env := sqliteEnv(t)

	var out struct {
		schema.Assessment
		Sentiment *schema.SentimentJudgment `json:"sentiment"`
	}
	mustRunJSON(t, env, &out, "score", "--stress", "5", "--happiness", "5", "--anxiety", "5", "--motivation", "5")
	assert.InDelta(t, 50.0, out.Index, 0.001)
	assert.Equal(t, schema.ModerateTier, out.Tier)
	assert.Nil(t, out.Sentiment)

	_, err := runWorkwell(t, env, "score", "--stress", "11", "--happiness", "5", "--anxiety", "5", "--motivation", "5")
	assert.Error(t, err)

	_, err = runWorkwell(t, env, "score", "--stress", "5")
	assert.Error(t, err, "every rating is required")
}

func TestSentimentCommand(t *testing.T) {
	var j schema.SentimentJudgment
	mustRunJSON(t, sqliteEnv(t), &j, "sentiment", "Estou muito feliz com a equipe")
	assert.Equal(t, schema.SentimentPositive, j.Label)
	assert.Positive(t, j.Score)
}

func TestRecommendCommandUsesRules(t *testing.T) {
	env := append(sqliteEnv(t), "ANTHROPIC_API_KEY=", "WORKWELL_ANTHROPIC_API_KEY=")

	var res schema.RecommendResult
	mustRunJSON(t, env, &res, "recommend", "--stress", "9", "--happiness", "2", "--anxiety", "9", "--motivation", "2")
	assert.Equal(t, schema.CriticalTier, res.Assessment.Tier)
	assert.Equal(t, schema.HighPriority, res.Recommendation.Priority)
	assert.NotEmpty(t, res.Recommendation.ImmediateActions)
}

func TestInvalidConfiguration(t *testing.T) {
	env := sqliteEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"bad output", []string{"score", "--stress", "1", "--happiness", "1", "--anxiety", "1", "--motivation", "1", "--output", "xml"}},
		{"bad metric", []string{"heatmap", "--company", "1", "--metric", "joy"}},
		{"days out of range", []string{"stats", "--company", "1", "--days", "0"}},
		{"missing company", []string{"heatmap"}},
		{"llm without key", []string{"sentiment", "ok", "--classifier", "llm", "--anthropic-api-key", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runEnv := env
			if tt.name == "llm without key" {
				runEnv = append(runEnv, "ANTHROPIC_API_KEY=")
			}
			_, err := runWorkwell(t, runEnv, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestDBExport(t *testing.T) {
	env := append(sqliteEnv(t), "WORKWELL_COMPANY=1")

	var sectors []schema.Sector
	mustRunJSON(t, env, &sectors, "sectors", "add", "RH")
	require.Len(t, sectors, 1)

	stdout, err := runWorkwell(t, env, "submit", "--employee", "1", "--sector", "1", "--stress", "3", "--happiness", "8", "--output", "json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	base := filepath.Join(t.TempDir(), "export")
	_, err = runWorkwell(t, env, "db", "export", "--output-file", base)
	require.NoError(t, err)

	info, err := os.Stat(base + ".records.parquet")
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestVersionCommand(t *testing.T) {
	out, err := runWorkwell(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "workwell CLI")
}
