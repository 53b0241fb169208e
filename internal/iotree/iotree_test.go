package iotree_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/mycocurate/internal/iotesting"
	"github.com/gnames/mycocurate/internal/iotree"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func setup(t *testing.T, trees map[string]string) *config.Config {
	cfg := iotesting.TempConfig(t, config.OptJobsNumber(2))
	dir := cfg.GeneTreesDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for k, v := range trees {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0644))
	}
	return cfg
}

func TestJobs(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(3)})

	t.Setenv("SLURM_CPUS_PER_TASK", "")
	assert.Equal(t, 3, iotree.Jobs(cfg, 0))
	assert.Equal(t, 7, iotree.Jobs(cfg, 7))

	t.Setenv("SLURM_CPUS_PER_TASK", "12")
	assert.Equal(t, 12, iotree.Jobs(cfg, 0))
	assert.Equal(t, 7, iotree.Jobs(cfg, 7))

	t.Setenv("SLURM_CPUS_PER_TASK", "many")
	assert.Equal(t, 3, iotree.Jobs(cfg, 0))
}

func TestClean(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := setup(t, map[string]string{
		"OG0000001.treefile": "((Psost1-123:0.1,Aaoar1-9:0.2)95:0.3,Bbbb1-1:0.4);\n",
		"OG0000002.treefile": "(Psost1-5,(Aaoar1-6,Bbbb1-7));",
		"OG0000003.treefile": "((Psost1-5,Aaoar1-6);",
		"notes.txt":          "(a-1,b-2);",
	})

	res, err := iotree.Clean(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)

	data, err := os.ReadFile(filepath.Join(cfg.CleanTreesDir(), "OG0000001.treefile"))
	require.NoError(t, err)
	assert.Equal(t, "((Psost1:0.1,Aaoar1:0.2)95:0.3,Bbbb1:0.4);\n", string(data))

	data, err = os.ReadFile(filepath.Join(cfg.CleanTreesDir(), "OG0000002.treefile"))
	require.NoError(t, err)
	assert.Equal(t, "(Psost1,(Aaoar1,Bbbb1));", string(data))

	_, err = os.Stat(filepath.Join(cfg.CleanTreesDir(), "OG0000003.treefile"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cfg.CleanTreesDir(), "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleanNoTrees(t *testing.T) {
	cfg := setup(t, nil)
	res, err := iotree.Clean(context.Background(), cfg)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	_, err = os.Stat(cfg.CleanTreesDir())
	assert.True(t, os.IsNotExist(err))
}

func TestCleanNoDir(t *testing.T) {
	cfg := iotesting.TempConfig(t)
	_, err := iotree.Clean(context.Background(), cfg)
	assert.Error(t, err)
}

func TestCleanCancelled(t *testing.T) {
	cfg := setup(t, map[string]string{"OG1.treefile": "(a-1,b-2);"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := iotree.Clean(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
