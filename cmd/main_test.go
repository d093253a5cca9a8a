package main

import (
	"bytes"
	"strings"
	"testing"

	"linkcleaner/internal/config"

	"github.com/stretchr/testify/require"
)

func TestCleanCommand_NoResolve(t *testing.T) {
	var out bytes.Buffer
	cmd := cleanCommand(&config.Config{})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--no-resolve",
		"https://example.com/a?utm_source=x&id=1",
		"not a url",
		"https://bit.ly/abc?fbclid=1",
	})

	require.NoError(t, cmd.Execute())
	require.Equal(t, []string{
		"https://example.com/a?id=1",
		"not a url",
		"https://bit.ly/abc",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

func TestCleanCommand_RequiresArgs(t *testing.T) {
	cmd := cleanCommand(&config.Config{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	require.Error(t, cmd.Execute())
}

func TestTablesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := tablesCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "utm_source")
	require.Contains(t, out.String(), "share.google")
}
