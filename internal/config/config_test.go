package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, ".", cfg.Export.OutputDir)
	assert.Equal(t, "Word_Files", cfg.Export.Basename)
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.Equal(t, "USD", cfg.Export.Currency)
	assert.Equal(t, 4485, cfg.Export.SinglePrice)
	assert.Equal(t, 6449, cfg.Export.CorporatePrice)
	assert.Equal(t, 8339, cfg.Export.EnterprisePrice)
	assert.Equal(t, 150, cfg.Export.PageCountMin)
	assert.Equal(t, 200, cfg.Export.PageCountMax)
	assert.Equal(t, "IN", cfg.Export.Status)
	assert.Equal(t, "<p>.</p>", cfg.Export.Segmentation)
	assert.Equal(t, ".", cfg.Export.MetaKey)
	assert.Equal(t, "2024", cfg.Export.BaseYear)
	assert.Equal(t, "2019-2023", cfg.Export.History)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REPORTFORGE_BATCH_WORKERS", "8")
	t.Setenv("REPORTFORGE_EXPORT_FORMAT", "both")
	t.Setenv("REPORTFORGE_EXPORT_SINGLE_PRICE", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "both", cfg.Export.Format)
	assert.Equal(t, 5000, cfg.Export.SinglePrice)
}
