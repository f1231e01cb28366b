package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/logging"
)

// withConfigDir points --config-dir at a fresh temp directory for one test.
func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, prevLevel, prevForce := configDir, logLevel, initForce
	configDir, logLevel, initForce = dir, "", false
	t.Cleanup(func() {
		configDir, logLevel, initForce = prevDir, prevLevel, prevForce
		logging.SetLevel(logging.LevelWarn)
	})
	return dir
}

func TestInitCommand(t *testing.T) {
	dir := withConfigDir(t)

	var out bytes.Buffer
	initCmd.SetOut(&out)
	t.Cleanup(func() { initCmd.SetOut(nil) })

	require.NoError(t, runInit(initCmd, nil))
	assert.Contains(t, out.String(), "Initialized")

	t.Run("writes a config that loads as the defaults", func(t *testing.T) {
		data, err := os.ReadFile(config.Path(dir))
		require.NoError(t, err)
		assert.Equal(t, config.Template(), string(data))

		cfg, err := config.LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), *cfg)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		err := runInit(initCmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("overwrites with force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(config.Path(dir), []byte("stage:\n  width: 10\n"), 0644))

		initForce = true
		out.Reset()
		require.NoError(t, runInit(initCmd, nil))
		assert.Contains(t, out.String(), "Overwrote")

		cfg, err := config.LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultStageWidth, cfg.Stage.Width)
	})
}

func TestLoadConfig_LogLevel(t *testing.T) {
	withConfigDir(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.False(t, logging.Default().Enabled(logging.LevelInfo))

	logLevel = "debug"
	_, err = loadConfig()
	require.NoError(t, err)
	assert.True(t, logging.Default().Enabled(logging.LevelDebug))

	logLevel = "loud"
	_, err = loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := withConfigDir(t)
	require.NoError(t, os.MkdirAll(dir+"/"+config.DirName, 0755))
	require.NoError(t, os.WriteFile(config.Path(dir), []byte("stage:\n  width: -1\n"), 0644))

	_, err := loadConfig()
	require.Error(t, err)
	assert.True(t, config.IsValidationError(err))
}

func TestPrintBlocks(t *testing.T) {
	var out bytes.Buffer
	printBlocks(&out)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))

	assert.Equal(t, []string{"1", "move", "Motion", "Move", "__", "steps", "steps=10"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[3], "x=0 y=0")
	assert.Contains(t, lines[4], "Repeat __×")
	assert.Contains(t, lines[6], "text=Hmm secs=2")
}

func TestRootCommand(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"play", "run", "blocks", "init"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}
