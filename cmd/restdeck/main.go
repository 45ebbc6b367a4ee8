package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiowebux/restdeck/internal/analytics"
	"github.com/studiowebux/restdeck/internal/cli"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/history"
	"github.com/studiowebux/restdeck/internal/keybinds"
	"github.com/studiowebux/restdeck/internal/session"
	"github.com/studiowebux/restdeck/internal/tui"
	"github.com/studiowebux/restdeck/internal/types"
	updates "github.com/studiowebux/restdeck/internal/version"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRequestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restdeck",
	Short: "restdeck - terminal REST client",
	Long: `restdeck is a keyboard driven REST client for the terminal.

Run without arguments to start the TUI. Environments, history and saved
requests live in ~/.restdeck (override with --home or RESTDECK_HOME) and are
shared between the TUI and the subcommands.

Examples:
  restdeck                                     # Start interactive TUI
  restdeck send '{{BASE_URL}}/users'           # Send with the active environment
  restdeck send -X POST -d '{"a":1}' -e Staging '{{BASE_URL}}/items'
  restdeck send -o body --filter 'items[].id' '{{BASE_URL}}/items'
  restdeck history -n 20
  restdeck env use Production
  restdeck stats`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Version = version
		if err := config.Initialize(flagHome); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <url>",
	Short: "Send one request and print the response",
	Long: `Send one request. {{NAME}} placeholders in the URL, header values, params
and body are replaced from the environment. The request is recorded in
history unless --no-history is given. Exits non-zero on a transport error or
a 4xx/5xx status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		app, cleanup := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer cleanup()

		return app.Send(ctx, cli.SendOptions{
			Method:      flagMethod,
			URL:         args[0],
			Headers:     flagHeaders,
			Params:      flagParams,
			Body:        flagBody,
			Environment: flagEnvironment,
			Output:      flagOutput,
			Filter:      flagFilter,
			ShowHeaders: flagShowHeaders,
			NoHistory:   flagNoHistory,
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer cleanup()
		return app.PrintHistory(flagLimit, flagOutput)
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List environments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, cleanup := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer cleanup()
		app.PrintEnvironments()
	},
}

var envUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make an environment active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer cleanup()
		return app.UseEnvironment(args[0])
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-endpoint request statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer cleanup()
		if flagClear {
			return app.ClearStats()
		}
		if flagRecent > 0 {
			return app.PrintRecent(flagEnvironment, flagRecent)
		}
		return app.PrintStats(flagEnvironment)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Check or export keybinds.json",
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.KeybindsFile); os.IsNotExist(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s not found, defaults are used\n", config.KeybindsFile)
			return nil
		}

		cfg, err := keybinds.LoadConfig(config.KeybindsFile)
		if err != nil {
			return err
		}
		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprint(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("%s has errors", config.KeybindsFile)
		}
		return nil
	},
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the default bindings to keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.KeybindsFile); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.KeybindsFile)
		}
		cfg := keybinds.ExportConfig(keybinds.NewDefaultRegistry())
		if err := keybinds.SaveConfig(cfg, config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default keybinds written to %s\n", config.KeybindsFile)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "restdeck %s\n", version)
		if !flagCheck {
			return nil
		}

		settings := config.LoadSettings()
		client := executor.NewClient(executor.Options{Timeout: 5 * time.Second, UserAgent: settings.UserAgent})
		release, err := updates.CheckForUpdate(cmd.Context(), client, updates.LatestReleaseURL, version)
		if err != nil {
			return err
		}
		if release.Available {
			fmt.Fprintf(out, "restdeck %s is available: %s\n", release.Version, release.URL)
		} else {
			fmt.Fprintln(out, "You are on the latest version")
		}
		return nil
	},
}

// Flags
var (
	flagHome        string
	flagMethod      string
	flagHeaders     []string
	flagParams      []string
	flagBody        string
	flagEnvironment string
	flagOutput      string
	flagFilter      string
	flagShowHeaders bool
	flagNoHistory   bool
	flagLimit       int
	flagClear       bool
	flagForce       bool
	flagCheck       bool
	flagRecent      int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "Configuration directory (default ~/.restdeck)")

	sendCmd.Flags().StringVarP(&flagMethod, "method", "X", "GET", "HTTP method")
	sendCmd.Flags().StringArrayVarP(&flagHeaders, "header", "H", nil, "Header 'Key: Value', can be repeated")
	sendCmd.Flags().StringArrayVarP(&flagParams, "query", "q", nil, "Query param 'key=value', can be repeated")
	sendCmd.Flags().StringVarP(&flagBody, "data", "d", "", "Request body (sent for POST, PUT and PATCH)")
	sendCmd.Flags().StringVarP(&flagEnvironment, "env", "e", "", "Environment name (default: active)")
	sendCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml/body)")
	sendCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath expression applied to a JSON body")
	sendCmd.Flags().BoolVarP(&flagShowHeaders, "include", "i", false, "Show response headers")
	sendCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the request in history")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of entries (0 for all)")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	statsCmd.Flags().StringVarP(&flagEnvironment, "env", "e", "", "Only count requests sent with this environment")
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Print the last N recorded requests instead of aggregates")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded statistics")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Ask GitHub for the latest release")
	keybindsExportCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing keybinds.json")

	envCmd.AddCommand(envUseCmd)
	keybindsCmd.AddCommand(keybindsCheckCmd, keybindsExportCmd)
	rootCmd.AddCommand(sendCmd, historyCmd, envCmd, statsCmd, keybindsCmd, versionCmd)
}

// stores loads the persisted state shared by the TUI and the subcommands
type stores struct {
	settings  types.Settings
	sessions  *session.Manager
	history   *history.Store
	saved     *history.SavedStore
	client    *executor.Client
	analytics *analytics.Manager
}

func loadStores() *stores {
	s := &stores{
		settings: config.LoadSettings(),
		sessions: session.NewManager(),
		history:  history.NewStore(),
		saved:    history.NewSavedStore(),
	}
	s.sessions.Load()
	s.history.Load()
	s.saved.Load()

	s.client = executor.NewClient(executor.Options{
		Timeout:            config.RequestTimeout(s.settings),
		UserAgent:          s.settings.UserAgent,
		InsecureSkipVerify: s.settings.InsecureSkipVerify,
	})

	if s.settings.IsAnalyticsEnabled() {
		mgr, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			log.Printf("analytics disabled: %v", err)
		} else {
			s.analytics = mgr
		}
	}
	return s
}

func (s *stores) close() {
	if s.analytics != nil {
		if err := s.analytics.Close(); err != nil {
			log.Printf("analytics: %v", err)
		}
	}
}

func newApp(out, errOut io.Writer) (*cli.App, func()) {
	s := loadStores()
	return &cli.App{
		Sessions:  s.sessions,
		History:   s.history,
		Client:    s.client,
		Analytics: s.analytics,
		Out:       out,
		Err:       errOut,
	}, s.close
}

// runTUI starts the interactive TUI
func runTUI() error {
	s := loadStores()
	defer s.close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.Printf("keybinds: %v, using defaults", err)
		registry = keybinds.NewDefaultRegistry()
	}
	if result := keybinds.NewValidator().ValidateRegistry(registry); result.HasErrors() || result.HasWarnings() {
		log.Printf("keybinds: %s", result.String())
	}

	var options []composer.Option
	if s.analytics != nil {
		options = append(options, composer.WithStats(s.analytics))
	}

	return tui.Run(tui.Deps{
		Sessions: s.sessions,
		History:  s.history,
		Saved:    s.saved,
		Composer: composer.New(s.client, s.history, options...),
		Keybinds: registry,
		Settings: s.settings,
		Version:  version,
	})
}
