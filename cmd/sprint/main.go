// Package main provides the CLI entrypoint for sprint.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sprint/internal/config"
	"github.com/verte-zerg/sprint/internal/engine"
	"github.com/verte-zerg/sprint/internal/logging"
	"github.com/verte-zerg/sprint/internal/model"
	"github.com/verte-zerg/sprint/internal/sentences"
	"github.com/verte-zerg/sprint/internal/stats"
	"github.com/verte-zerg/sprint/internal/tui"
)

var (
	runSentences string
	runSeed      int64
	runLogFile   string
	runDebug     bool
	runNoSummary bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sprint",
		Short:         "60-second typing challenge",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runChallengeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&runSentences, "sentences", "", "file with one sentence per line")
	rootCmd.PersistentFlags().Int64Var(&runSeed, "seed", 0, "random seed for sentence selection (0 = random)")
	rootCmd.Flags().StringVar(&runLogFile, "log-file", "", "write a debug log to this file")
	rootCmd.Flags().BoolVar(&runDebug, "debug", false, "log at debug level")
	rootCmd.Flags().BoolVar(&runNoSummary, "no-summary", false, "do not print the final summary on exit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSentencesCmd())

	return rootCmd
}

func loadSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, errors.Wrap(err, "failed to load config")
	}
	cfg := model.Config{
		SentencesPath: runSentences,
		Seed:          runSeed,
		LogFile:       runLogFile,
		Summary:       !runNoSummary,
	}
	applyStringConfig(cmd, "sentences", &cfg.SentencesPath, fileCfg.Challenge.Sentences)
	applyInt64Config(cmd, "seed", &cfg.Seed, fileCfg.Challenge.Seed)
	applyStringConfig(cmd, "log-file", &cfg.LogFile, fileCfg.Log.File)
	if fileCfg.Log.Level != nil {
		cfg.LogLevel = *fileCfg.Log.Level
	}
	if runDebug {
		cfg.LogLevel = "debug"
	}
	if cfg.SentencesPath == "" {
		if _, err := os.Stat(config.DefaultSentencesPath()); err == nil {
			cfg.SentencesPath = config.DefaultSentencesPath()
		}
	}
	return cfg, nil
}

func buildPool(cfg model.Config) (*sentences.Pool, error) {
	list := sentences.Defaults()
	if cfg.SentencesPath != "" {
		loaded, err := sentences.LoadFile(cfg.SentencesPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load sentences")
		}
		list = loaded
	}
	if cfg.Seed != 0 {
		return sentences.NewSeeded(list, cfg.Seed)
	}
	return sentences.New(list, nil)
}

func runChallengeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	pool, err := buildPool(cfg)
	if err != nil {
		return err
	}
	log.Info("starting challenge", "sentences", pool.Len(), "seed", cfg.Seed)

	var forwarder tui.Forwarder
	eng := engine.New(pool, engine.Options{
		OnTick: forwarder.Send,
		Logger: log,
	})
	defer eng.Close()

	m := tui.NewModel(eng, log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	forwarder.Attach(program)
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "failed to run TUI")
	}

	if !cfg.Summary {
		return nil
	}
	res, ok := m.Result()
	if !ok {
		return nil
	}
	out := cmd.OutOrStdout()
	return stats.RenderSummary(out, res, stats.ShouldUseColor(out))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "failed to open editor")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to stat config")
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return errors.Wrap(err, "failed to write config")
		}
	}
	return nil
}

func newSentencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentences",
		Short: "List the active sentence pool",
		Args:  cobra.NoArgs,
		RunE:  runSentencesCmd,
	}
}

func runSentencesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pool, err := buildPool(cfg)
	if err != nil {
		return err
	}
	return writeSentences(cmd.OutOrStdout(), pool.Sentences())
}

func writeSentences(w io.Writer, list []string) error {
	for i, s := range list {
		if _, err := fmt.Fprintf(w, "%2d. %s\n", i+1, s); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[challenge]
# sentences = %q   # One sentence per line; defaults to the built-in pool
# seed = 0                # Random seed for sentence selection (0 = random)

[log]
# file = %q
# level = "info"          # debug, info or error
`,
		config.DefaultSentencesPath(),
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
