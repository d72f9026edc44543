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
)

func callMain(t *testing.T, input string, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	args = append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	code := run(context.Background(), args, strings.NewReader(input), &out)
	return code, out.String()
}

func setupTestEnv(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "badger")
	t.Setenv("DB_PATH", filepath.Join(dir, "badger"))
	t.Setenv("LOG_LEVEL", "disabled")
	return dir
}

func TestCLI(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedExit:   1,
			expectedOutput: "Usage:\n  blog [flags]\n  blog [command]",
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedExit:   0,
			expectedOutput: "Available Commands:",
		},
		{
			name:           "version command",
			args:           []string{"version"},
			expectedExit:   0,
			expectedOutput: "blog version " + cliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedExit:   1,
			expectedOutput: `unknown command "unknown"`,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedExit:   1,
			expectedOutput: "accepts 1 arg(s), received 0",
		},
		{
			name:           "seed without file",
			args:           []string{"seed"},
			expectedExit:   1,
			expectedOutput: "accepts 1 arg(s), received 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, output := callMain(t, "", tt.args...)

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestHelpListsCommands(t *testing.T) {
	_, output := callMain(t, "", "help")

	for _, cmd := range []string{"serve", "init", "seed", "backup", "restore", "clean", "version"} {
		assert.Contains(t, output, cmd)
	}
}

func TestMaintenanceCommands(t *testing.T) {
	dir := setupTestEnv(t)
	dbPath := os.Getenv("DB_PATH")

	code, output := callMain(t, "", "init")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database initialized successfully")
	assert.DirExists(t, dbPath)

	code, output = callMain(t, "", "seed", "seed.example.yaml")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Seeded 2 authors and 3 posts")

	backupDir := filepath.Join(dir, "backups")
	code, output = callMain(t, "", "backup", "--dir", backupDir)
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database backed up successfully")

	code, output = callMain(t, "n\n", "clean")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Operation cancelled")
	assert.NotContains(t, output, "Error:")
	assert.DirExists(t, dbPath)

	code, output = callMain(t, "", "clean", "--force")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database cleaned successfully")
	assert.NoDirExists(t, dbPath)

	backups, err := filepath.Glob(filepath.Join(backupDir, "*.db"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	code, output = callMain(t, "", "restore", backups[0])
	assert.Equal(t, 0, code, output)
	assert.Contains(t, output, "Database restored successfully")
}

func TestMaintenanceRequiresBadger(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")

	code, output := callMain(t, "", "backup")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "only supports the badger driver")
}

func TestInvalidConfig(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("PORT", "not-a-port")

	code, output := callMain(t, "", "serve")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "invalid configuration")
}
