package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/config"
	"github.com/lixenwraith/depthballs/source"
)

// chdir moves into a temp dir so logs/ and frame dirs land there
func chdir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	chdir(t)
	logger, closer, err := setupLogging(false)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.NotNil(t, logger)

	_, err = os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log dir without debug")
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	chdir(t)
	logger, closer, err := setupLogging(true)
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Info("test message", zap.Int("n", 1))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")
}

func TestSetupLoggingRotatesWhileWriting(t *testing.T) {
	chdir(t)
	prev := maxLogSizeMB
	maxLogSizeMB = 1
	t.Cleanup(func() { maxLogSizeMB = prev })

	logger, closer, err := setupLogging(true)
	require.NoError(t, err)
	defer closer.Close()

	payload := strings.Repeat("x", 1024)
	for i := 0; i < 1500; i++ {
		logger.Debug("filler", zap.Int("i", i), zap.String("payload", payload))
	}

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2, "a backup is created once the file passes the limit")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxLogSizeMB)*1024*1024)
}

// runFlags parses args with the app flags and hands the context to fn
func runFlags(t *testing.T, args []string, fn func(c *cli.Context)) {
	t.Helper()
	app := newApp()
	app.Action = func(c *cli.Context) error {
		fn(c)
		return nil
	}
	app.Commands = nil
	require.NoError(t, app.Run(append([]string{"depthballs"}, args...)))
}

func TestLoadConfigZeroFlags(t *testing.T) {
	runFlags(t, nil, func(c *cli.Context) {
		cfg, err := loadConfig(c)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	runFlags(t, []string{"--replay-dir", dir, "--loop", "--mirror", "--no-audio", "--prefetch"}, func(c *cli.Context) {
		cfg, err := loadConfig(c)
		require.NoError(t, err)
		assert.Equal(t, config.SourceReplay, cfg.Source.Kind)
		assert.Equal(t, dir, cfg.Source.ReplayDir)
		assert.True(t, cfg.Source.Loop)
		assert.True(t, cfg.Source.Prefetch)
		assert.True(t, cfg.Band.Mirror)
		assert.False(t, cfg.Audio)
	})
}

func TestLoadConfigRejectsBadSource(t *testing.T) {
	runFlags(t, []string{"--source", "replay"}, func(c *cli.Context) {
		_, err := loadConfig(c)
		assert.Error(t, err)
	})
}

func TestRecordThenReplay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"depthballs", "record", "--out", dir, "--frames", "3"}))
	assert.Contains(t, out.String(), "wrote 3 frames")

	cfg := config.Default()
	cfg.Source.Kind = config.SourceReplay
	cfg.Source.ReplayDir = dir
	cfg.Source.Interval = 0
	src, err := openSource(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	for i := 0; i < 3; i++ {
		f, err := src.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, cfg.World.Width, f.Width())
	}
	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, source.ErrExhausted)
}

func TestOpenSourcePrefetch(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Interval = 0
	cfg.Source.Prefetch = true
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := openSource(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	_, ok := src.(*source.Prefetch)
	assert.True(t, ok)

	f, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.World.Height, f.Height())
	assert.NoError(t, src.Close())
}
