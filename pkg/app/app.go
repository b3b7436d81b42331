// Package app wires configuration, logging, the inventory service and the
// terminal views into the foodkeeper command tree.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"foodkeeper/pkg/config"
	"foodkeeper/pkg/inventory"
	"foodkeeper/pkg/view"
)

// flags holds the persistent command line flags.
type flags struct {
	configPath  string
	datasetPath string
	now         string
	verbose     bool
}

// session is the state shared by every subcommand once the root command has
// prepared it.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	now    time.Time
	svc    *inventory.Service

	ownLogger bool
}

// renderer draws with the configured layout at the session instant.
func (s *session) renderer() view.Renderer {
	return view.NewRenderer(s.now, view.NewLayout(s.cfg.Display.Width, s.cfg.Display.RowWidth))
}

// clock pins the service to the session instant.
func (s *session) clock() time.Time { return s.now }

// close stops the service and flushes a logger Run built itself.
func (s *session) close() {
	if s.svc != nil {
		s.svc.Close()
	}
	if s.logger != nil && s.ownLogger {
		_ = s.logger.Sync()
	}
}

// Run executes the foodkeeper command line. A nil logger makes Run build one
// from the configured level.
func Run(ctx context.Context, args []string, logger *zap.Logger) error {
	root, sess := newRootCommand(logger)
	defer sess.close()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// newRootCommand builds the command tree around a session that the
// persistent pre-run fills in.
func newRootCommand(logger *zap.Logger) (*cobra.Command, *session) {
	var f flags
	sess := &session{logger: logger}

	root := &cobra.Command{
		Use:   "foodkeeper",
		Short: "Track food in the pantry and what expires next",
		Long: `foodkeeper keeps an in-memory pantry inventory and shows which items
expire soon.

Items are loaded from the bundled mock dataset or from a JSON/YAML file
given with --dataset. Nothing is written back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return sess.prepare(f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHome(cmd, sess)
		},
	}

	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&f.datasetPath, "dataset", "d", "", "JSON or YAML item list (default: bundled mock data)")
	root.PersistentFlags().StringVar(&f.now, "now", "", "Reference instant, RFC3339 or YYYY-MM-DD (default: current time)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newHomeCommand(sess),
		newListCommand(sess),
		newUrgentCommand(sess),
		newShowCommand(sess),
		newCalendarCommand(sess),
		newAddCommand(sess),
		newDitchExpiredCommand(sess),
		newBrowseCommand(sess),
		newVersionCommand(),
	)
	return root, sess
}

// prepare loads configuration, builds the logger and seeds the service.
// Config and dataset failures are logged and the session continues with
// defaults or an empty inventory.
func (s *session) prepare(f flags) error {
	cfg, cfgErr := config.Load(f.configPath)
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	if f.datasetPath != "" {
		cfg.Dataset = f.datasetPath
	}
	s.cfg = cfg

	if s.logger == nil {
		logger, err := buildLogger(cfg.Logging.Level, f.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		s.logger = logger
		s.ownLogger = true
	}
	if cfgErr != nil {
		s.logger.Warn("using default config", zap.String("path", f.configPath), zap.Error(cfgErr))
	}

	var err error
	s.now, err = parseInstant(f.now)
	if err != nil {
		return fmt.Errorf("%w: --now wants RFC3339 or YYYY-MM-DD, got %q", errUsage, f.now)
	}

	var items []inventory.Item
	if cfg.Dataset == "" {
		items, err = inventory.DefaultDataset(s.now)
	} else {
		items, err = inventory.LoadDatasetFile(cfg.Dataset, s.now)
	}
	if err != nil {
		s.logger.Warn("starting with an empty inventory", zap.String("dataset", cfg.Dataset), zap.Error(err))
		items = nil
	}
	s.logger.Debug("dataset loaded",
		zap.String("path", cfg.Dataset),
		zap.Int("items", len(items)),
		zap.Time("now", s.now),
	)

	s.svc = inventory.NewService(items, s.logger.Named("inventory"), inventory.WithClock(s.clock))
	return nil
}

// buildLogger returns a production logger at level, or at debug when
// verbose is set.
func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

var instantLayouts = []string{time.RFC3339, "2006-01-02"}

// parseInstant reads RFC3339 or a local YYYY-MM-DD date. Empty means now.
func parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q", raw)
}

// requestContext bounds one service call made by a subcommand.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 5*time.Second)
}

// errUsage marks bad flag values so callers can tell them from runtime
// failures.
var errUsage = errors.New("usage")
