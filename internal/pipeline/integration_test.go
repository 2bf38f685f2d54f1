package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/scanlog/internal/config"
	"github.com/crimson-sun/scanlog/internal/engine/enginetest"
	"github.com/crimson-sun/scanlog/internal/model"
)

func sampleConfig(t *testing.T) config.Config {
	t.Helper()
	dir, err := enginetest.WriteSample(t.TempDir())
	require.NoError(t, err)
	cfg := config.Default()
	cfg.LogFolder = dir
	cfg.Output.Color = false
	require.NoError(t, cfg.Validate())
	return cfg
}

func runConfig(t *testing.T, cfg config.Config) (model.ResultSet, string) {
	t.Helper()
	var buf bytes.Buffer
	p, connCfg, err := FromConfig(cfg, &buf, nil)
	require.NoError(t, err)
	rs, err := p.Run(context.Background(), connCfg)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	return rs, buf.String()
}

func TestSampleCorpusEndToEnd(t *testing.T) {
	cfg := sampleConfig(t)
	rs, report := runConfig(t, cfg)

	assert.Equal(t, enginetest.SampleLines, rs.Stats.Total)
	assert.Equal(t, enginetest.SampleLines, len(rs.Anomalies)+len(rs.Normals))

	flagged := map[int]bool{}
	for _, a := range rs.Anomalies {
		flagged[a.Seq] = true
	}
	for _, seq := range enginetest.SampleKeywordLines {
		assert.True(t, flagged[seq], "keyword line %d should be anomalous", seq)
	}

	// The terminator makes these two distinct patterns.
	assert.Contains(t, rs.AnomalyPatterns, "error SIG11\n")
	assert.Contains(t, rs.AnomalyPatterns, "error SIG11")

	for i := 1; i < len(rs.Anomalies); i++ {
		prev, cur := rs.Anomalies[i-1], rs.Anomalies[i]
		assert.True(t, prev.SourcePath < cur.SourcePath || (prev.SourcePath == cur.SourcePath && prev.Seq < cur.Seq))
	}

	assert.Contains(t, report, "Abnormal entries: ")
	assert.Contains(t, report, "Anomalies detected with file paths:")
	assert.NotContains(t, report, "README")
}

func TestSampleCorpusDeterministic(t *testing.T) {
	cfg := sampleConfig(t)
	a, reportA := runConfig(t, cfg)
	b, reportB := runConfig(t, cfg)

	assert.Equal(t, a, b)
	assert.Equal(t, reportA, reportB)
}

func TestSampleCorpusJSONAndFile(t *testing.T) {
	cfg := sampleConfig(t)
	cfg.Output.Format = "json"
	cfg.Output.Path = filepath.Join(t.TempDir(), "report.json")
	cfg.MetricsFile = filepath.Join(t.TempDir(), "scanlog.prom")

	rs, report := runConfig(t, cfg)

	var fromStdout model.ResultSet
	require.NoError(t, json.Unmarshal([]byte(report), &fromStdout))
	assert.Equal(t, rs, fromStdout)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.JSONEq(t, report, string(data))

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "scanlog_lines 21")
	assert.Contains(t, string(prom), "scanlog_files 2")
}

func TestKeywordFallbackOnTinyCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("critical failure\n"), 0o644))

	cfg := config.Default()
	cfg.LogFolder = dir
	cfg.Output.Color = false
	cfg.OnInsufficientData = "keywords"

	rs, report := runConfig(t, cfg)
	assert.True(t, rs.Fallback)
	assert.Equal(t, 1, rs.Stats.Anomalies)
	assert.Contains(t, report, "keyword rules only")

	cfg.OnInsufficientData = "abort"
	p, connCfg, err := FromConfig(cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), connCfg)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

func TestEmptyFolder(t *testing.T) {
	cfg := config.Default()
	cfg.LogFolder = t.TempDir()

	p, connCfg, err := FromConfig(cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), connCfg)
	assert.ErrorIs(t, err, model.ErrEmptyCorpus)
}

func TestFailedScanKeepsPreviousReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(report, []byte("last good report\n"), 0o644))

	cfg := config.Default()
	cfg.LogFolder = t.TempDir()
	cfg.Output.Path = report

	p, connCfg, err := FromConfig(cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), connCfg)
	require.ErrorIs(t, err, model.ErrEmptyCorpus)
	require.NoError(t, p.Close())

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "last good report\n", string(data))
}

func TestFromConfigBadOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.LogFolder = t.TempDir()
	cfg.Output.Path = filepath.Join(t.TempDir(), "missing", "report.txt")

	_, _, err := FromConfig(cfg, &bytes.Buffer{}, nil)
	assert.Error(t, err)
}
