// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/internal/logger"
)

// writeConfigFile writes content to a YAML file in a temporary directory and returns its path.
func writeConfigFile(tb testing.TB, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "config.yaml")
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv makes sure the configuration variables are not inherited from the test runner.
func clearEnv(tb testing.TB) {
	tb.Helper()

	for _, name := range []string{"LOG_DIR", "LOG_FILE", "LOG_LEVEL"} {
		tb.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{LogDir: logger.DefaultLogDir, LogLevel: "INFO"}, config)
	assert.Equal(t, logger.INFO, config.Level())
	assert.Len(t, config.FactoryOptions(), 2)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, "logDir: /var/log/app\nlogFile: app.log\nlogLevel: debug\n")
	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{LogDir: "/var/log/app", LogFile: "app.log", LogLevel: "debug"}, config)
	assert.Equal(t, logger.DEBUG, config.Level())
	assert.Len(t, config.FactoryOptions(), 3)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_FILE", "from-env.log")

	path := writeConfigFile(t, "logDir: from-file\nlogFile: from-file.log\nlogLevel: debug\n")
	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{LogDir: "from-file", LogFile: "from-env.log", LogLevel: "ERROR"}, config)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)

	config, err := Load(writeConfigFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, logger.DefaultLogDir, config.LogDir)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]struct {
		content       string
		path          string
		env           map[string]string
		expectedError error
	}{
		"missing file": {
			path:          filepath.Join("testdata", "missing.yaml"),
			expectedError: syscall.ENOENT,
		},
		"missing file is a parsing error": {
			path:          filepath.Join("testdata", "missing.yaml"),
			expectedError: ErrParsing,
		},
		"unknown field": {
			content:       "logDirectory: logs\n",
			expectedError: ErrParsing,
		},
		"malformed yaml": {
			content:       "logDir: [unterminated\n",
			expectedError: ErrParsing,
		},
		"invalid level from file": {
			content:       "logLevel: verbose\n",
			expectedError: ErrConfigNotValid,
		},
		"invalid level from env": {
			env:           map[string]string{"LOG_LEVEL": "loud"},
			expectedError: ErrConfigNotValid,
		},
		"file name with directories": {
			env:           map[string]string{"LOG_FILE": "nested/app.log"},
			expectedError: ErrConfigNotValid,
		},
		"parent directory as file name": {
			content:       "logFile: ..\n",
			expectedError: ErrConfigNotValid,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			path := test.path
			if test.content != "" {
				path = writeConfigFile(t, test.content)
			}

			config, err := Load(path)
			assert.Nil(t, config)
			assert.ErrorIs(t, err, test.expectedError)
		})
	}
}
