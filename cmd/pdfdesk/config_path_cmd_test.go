package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openmined/pdfdesk/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newConfigPathRoot(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "pdfdesk"}
	cmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "path to config file")
	cmd.AddCommand(newConfigPathCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func TestConfigPathCommand_PrintsResolvedPath(t *testing.T) {
	t.Setenv("PDFDESK_CONFIG_PATH", "")

	var out bytes.Buffer
	cmd := newConfigPathRoot(&out)
	cmd.SetArgs([]string{"config-path"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, config.DefaultConfigPath, strings.TrimSpace(out.String()))
}

func TestConfigPathCommand_EnvOverride(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.json")
	t.Setenv("PDFDESK_CONFIG_PATH", envPath)

	var out bytes.Buffer
	cmd := newConfigPathRoot(&out)
	cmd.SetArgs([]string{"config-path"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, envPath, strings.TrimSpace(out.String()))
}

func TestConfigPathCommand_FlagWins(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.json")
	flagPath := filepath.Join(t.TempDir(), "flag.json")
	t.Setenv("PDFDESK_CONFIG_PATH", envPath)

	var out bytes.Buffer
	cmd := newConfigPathRoot(&out)
	cmd.SetArgs([]string{"--config", flagPath, "config-path"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, flagPath, strings.TrimSpace(out.String()))
}

func TestConfigPathCommand_HelpNamesLookupOrder(t *testing.T) {
	var out bytes.Buffer
	cmd := newConfigPathRoot(&out)
	cmd.SetArgs([]string{"config-path", "--help"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "pdfdesk config file")
	require.Contains(t, out.String(), "PDFDESK_CONFIG_PATH")
}

func TestConfigPathCommand_RejectsArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := newConfigPathRoot(&out)
	cmd.SetArgs([]string{"config-path", "extra"})

	require.Error(t, cmd.Execute())
}
