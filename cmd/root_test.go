package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "check", "media", "batch", "feed"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "fakecheck", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestCheckCommand_Flags(t *testing.T) {
	for _, name := range []string{"title", "content", "url"} {
		require.NotNil(t, checkCmd.Flags().Lookup(name), "check command should have --%s flag", name)
	}
	assert.Equal(t, formatJSON, checkCmd.Flags().Lookup("format").DefValue)
}

func TestBatchCommand_Flags(t *testing.T) {
	require.NotNil(t, batchCmd.Flags().Lookup("input"))
	flag := batchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestFeedCommand_Flags(t *testing.T) {
	require.NotNil(t, feedCmd.Flags().Lookup("url"))
	require.NotNil(t, feedCmd.Flags().Lookup("limit"))
}

func TestMediaCommand_Flags(t *testing.T) {
	require.NotNil(t, mediaCmd.Flags().Lookup("file"))
	require.NotNil(t, mediaCmd.Flags().Lookup("type"))
}
