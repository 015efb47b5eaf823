package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rklebes/wifi-setup/internal/config"
	"github.com/rklebes/wifi-setup/internal/exitcodes"
	"github.com/rklebes/wifi-setup/internal/files"
	ui "github.com/rklebes/wifi-setup/internal/ui"
)

// Version information - set via -ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// rootCmd runs the interactive setup when called without a subcommand.
// Persistent flags are applied to the loaded config in loadCfg().
var rootCmd = &cobra.Command{
	Use:           "wifi-setup",
	Short:         "Wireless setup for Raspbian",
	Long:          "Ask for wireless networks and generate wpa_supplicant.conf and interfaces for a Raspbian-style system.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.InitGlobal(ui.Config{
			NoColor: flagNoColor,
			NoEmoji: flagNoEmoji,
			NoTUI:   flagNoTUI,
			Yes:     flagYes,
			Quiet:   flagQuiet,
			Debug:   flagDebug,
		})

		// Set NO_COLOR env so lipgloss respects the flag
		if flagNoColor {
			os.Setenv("NO_COLOR", "1")
		}

		switch flagOutput {
		case "text", "json", "yaml":
		default:
			return exitcodes.InvalidArgsErrorf("invalid --output: %s (use json|yaml|text)", flagOutput)
		}
		return setupLogging(flagDebug, flagLogLevel)
	},
}

var (
	flagCountry  string
	flagOutDir   string
	flagOwner    string
	flagOutput   string
	flagLogLevel string
	flagQuiet    bool
	flagDebug    bool
	flagNoColor  bool
	flagNoEmoji  bool
	flagNoTUI    bool
	flagYes      bool
)

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (rootCmd -> newDeps -> loadCfg -> rootCmd).
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return handleInteractive(newDeps())
	}

	rootCmd.PersistentFlags().StringVar(&flagCountry, "country", "", "Wifi regulatory country code, ISO 3166-1 alpha-2 (overrides env)")
	rootCmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "Directory the configuration files are written to (overrides env)")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "", "Owner for written files in chown syntax, e.g. root: or pi:netdev (overrides env)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|yaml|text")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warning", "Logging level; one of [trace, debug, info, warning, error]")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode: minimal output")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Debug output: extra diagnostic logs")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&flagNoEmoji, "no-emoji", false, "Disable emoji output")
	rootCmd.PersistentFlags().BoolVar(&flagNoTUI, "no-tui", false, "Print files instead of opening the preview pager")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Show and save the files without asking")

	// Only the root command gets the grouped help; subcommands use cobra's.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		// Help runs before PersistentPreRunE, so configure colors here
		c := ui.NewColorConfig()
		c.Enabled = c.Enabled && !flagNoColor
		c.EmojiEnabled = c.EmojiEnabled && !flagNoEmoji
		w := cmd.OutOrStdout()

		const cmdWidth = 30

		fmt.Fprintln(w, c.Header(" wifi-setup "))
		fmt.Fprintln(w, c.Description(cmd.Long))
		fmt.Fprintln(w, c.Separator(50))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("USAGE"))
		fmt.Fprintf(w, "  %s [flags]             %s\n", "wifi-setup", c.Description("interactive setup"))
		fmt.Fprintf(w, "  %s <command> [flags]\n", "wifi-setup")
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Commands"))
		fmt.Fprintln(w, c.FormatCommandAligned("generate --profiles FILE", "Render files from a YAML profile list", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("inspect FILE", "List the networks in a wpa_supplicant.conf", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("version", "Show version", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("completion SHELL", "Generate shell completion", cmdWidth))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Flags"))
		cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			fmt.Fprintln(w, c.FormatFlagAligned(flagLabel(f), flagUsage(f), cmdWidth))
		})
	})

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newInspectCmd())
}

// flagLabel renders "-o, --output" or "--country".
func flagLabel(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return "-" + f.Shorthand + ", --" + f.Name
	}
	return "--" + f.Name
}

func flagUsage(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "[]":
		return f.Usage
	}
	return fmt.Sprintf("%s (default %s)", f.Usage, f.DefValue)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printFailure(err)
		os.Exit(exitcodes.CodeForError(err))
	}
}

// printFailure writes err to stderr, with remedies for save failures.
func printFailure(err error) {
	var perr *files.PersistError
	if errors.As(err, &perr) {
		ui.PrintError(os.Stderr, persistFailure(perr))
		return
	}
	getPrinter().WithOutput(os.Stderr).Error(err.Error())
}

// setupLogging sets the logrus level from --debug or --log-level. Logs go
// to stderr so json and yaml output on stdout stays parseable.
func setupLogging(debug bool, level string) error {
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return exitcodes.InvalidArgsErrorf("invalid --log-level: %s", level)
		}
		log.SetLevel(l)
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

// loadCfg reads defaults + env via internal/config.Load() and then
// applies overrides from persistent flags (country, out-dir, owner).
func loadCfg() config.Config {
	cfg := config.Load()
	if flagCountry != "" {
		cfg.Country = strings.ToUpper(strings.TrimSpace(flagCountry))
	}
	if flagOutDir != "" {
		cfg.OutDir = flagOutDir
	}
	if rootCmd.PersistentFlags().Changed("owner") {
		cfg.Owner = flagOwner
	}
	return cfg
}

// validCfg reports an invalid configuration as bad arguments.
func validCfg(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return exitcodes.InvalidArgsError(err.Error())
	}
	return nil
}
