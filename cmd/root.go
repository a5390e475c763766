// Package cmd wires the roster CLI. Commands load the catalog and project
// document, drive the core engines, and render results; all project-state
// semantics live in the internal packages.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"roster/internal/catalog"
	"roster/internal/config"
	"roster/internal/log"
	"roster/internal/paths"
	"roster/internal/update"
)

var (
	version  = "dev"
	cfgFile  string
	cfg      config.Config
	debug    bool
	jsonOut  bool
	project  string
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the agent roster of a project",
	Long: `Roster manages which agents from the shared catalog are active for a
project. Project state lives in .roster/project.md, a plain markdown document
you are free to edit; roster owns only its "Active Capabilities" section and
preserves everything else byte-for-byte.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .roster/config.yaml, then ~/.config/roster/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&project, "project", "p", "",
		"project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to .roster/roster.log")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"emit JSON instead of text output")

	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalog_root", defaults.CatalogRoot)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("max_snapshots", defaults.MaxSnapshots)
	viper.SetDefault("watch_debounce", defaults.WatchDebounce)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .roster/config.yaml (current project)
		// 2. ~/.config/roster/config.yaml (user config)
		if _, err := os.Stat(filepath.Join(paths.DirName, "config.yaml")); err == nil {
			viper.SetConfigFile(filepath.Join(paths.DirName, "config.yaml"))
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "roster"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Missing config files are fine; defaults apply.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)

	if jsonOut {
		cfg.Output = "json"
	}
}

func initLogging() {
	if !debug && os.Getenv("ROSTER_DEBUG") == "" {
		return
	}
	logPath := filepath.Join(resolveProjectDir(), "roster.log")
	if _, err := log.Init(logPath); err == nil {
		log.SetEnabled(true)
	}
}

// resolveProjectDir returns the .roster directory for the selected project.
func resolveProjectDir() string {
	root := cfg.Project
	if root == "" {
		root, _ = os.Getwd()
	}
	return paths.ResolveProjectDir(root)
}

// projectRoot returns the directory containing .roster.
func projectRoot() string {
	return filepath.Dir(resolveProjectDir())
}

// loadCatalog loads the installed catalog, guiding the user to init when it
// is absent.
func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.LoadDir(cfg.CatalogRoot)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'roster init' to install the catalog", err)
	}
	return c, nil
}

// snapshotBeforeDestructive creates the mandatory recovery point for a
// destructive operation and applies the configured pruning policy.
func snapshotBeforeDestructive(projectDir string) (*update.Snapshot, error) {
	snap, err := update.CreateSnapshot(projectDir)
	if err != nil {
		return nil, err
	}
	if cfg.MaxSnapshots > 0 {
		if err := update.Prune(projectDir, cfg.MaxSnapshots); err != nil {
			log.ErrorErr(log.CatUpdate, "Snapshot pruning failed", err)
		}
	}
	return snap, nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

// ExitCode returns the exit code a finished command requested (validate's
// three-tier contract); zero otherwise.
func ExitCode() int {
	return exitCode
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
