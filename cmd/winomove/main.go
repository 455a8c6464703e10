package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/1broseidon/winomove/internal/config"
	"github.com/1broseidon/winomove/internal/daemon"
	"github.com/1broseidon/winomove/internal/hotkeys"
	"github.com/1broseidon/winomove/internal/logging"
	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/tray"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func init() {
	// The tray loop must own the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "winomove",
		Short: "Move the focused window between displays with Win+Shift+Left/Right",
		Long: `winomove runs in the background with a tray icon. Pressing
Win+Shift+Left or Win+Shift+Right moves the focused window to the display on
that side, keeping its size and its offset from the display's top-left corner.
Quit from the tray icon menu.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")

	root.AddCommand(newDisplaysCmd(), newConfigCmd(&logLevel))
	return root
}

func runDaemon(cmd *cobra.Command, logLevel string) error {
	cfg := config.Default().WithLogLevel(logLevel)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return err
	}
	slog.SetDefault(logger)

	backend, err := platform.Open()
	if err != nil {
		logger.Error("failed to open window system", "error", err)
		return err
	}
	defer backend.Close()

	hook, err := hotkeys.NewHook(logger)
	if err != nil {
		logger.Error("failed to prepare keyboard hook", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx, daemon.Options{
		Config:    cfg,
		Logger:    logger,
		Backend:   backend,
		Hook:      hook,
		Indicator: tray.New(cfg.TrayTitle, cfg.TrayTooltip, logger),
	})
}
