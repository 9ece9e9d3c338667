// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/internal/logger"
)

func TestRootCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	diagnostics := new(bytes.Buffer)
	cmd.SetOut(buffer)

	log := logger.NewLogger(diagnostics)
	ctx := logger.WithContext(t.Context(), log)

	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	err := cmd.ExecuteContext(ctx)
	require.NoError(t, err)

	log.Info("ignored line for set log level")
	log.Warn("kept line for set log level")
	lines := strings.Split(buffer.String(), "\n")
	assert.Len(t, lines, 2) // version output + empty line
	assert.Equal(t, versionString(Version, BuildDate, runtime.Version())+"\n", buffer.String())
	assert.NotContains(t, diagnostics.String(), "ignored line")
	assert.Contains(t, diagnostics.String(), "kept line")

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	err = cmd.ExecuteContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, versionString(Version, "", runtime.Version())+"\n", buffer.String())
}

func TestRootCommandInvalidLogLevel(t *testing.T) {
	t.Parallel()

	cmd := rootCmd()
	outBuffer := new(bytes.Buffer)
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(outBuffer)
	cmd.SetErr(errBuffer)

	cmd.SetArgs([]string{"--log-level", "LOUD", "version"})
	err := cmd.ExecuteContext(t.Context())
	assert.ErrorIs(t, err, logger.ErrUnknownLevel)
	assert.Equal(t, "unknown log level: \"LOUD\"\n", errBuffer.String())
	assert.Empty(t, outBuffer.String())
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.0.0, Go Version: go1.25", versionString("1.0.0", "", "go1.25"))
	assert.Equal(t, "1.0.0 (2024-06-01), Go Version: go1.25", versionString("1.0.0", "2024-06-01", "go1.25"))
}
