package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"roster/internal/config"
)

func TestRejectsInvalidConfiguredOutput(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()

	cfg = config.Defaults()
	cfg.Output = "xml"

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestAcceptsDefaultConfiguration(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()

	cfg = config.Defaults()
	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
}
