package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/internal/formatter"
	"github.com/oakwood-commons/menubutton/internal/ui"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
	"github.com/oakwood-commons/menubutton/pkg/logger"
	"github.com/oakwood-commons/menubutton/pkg/settings"
)

type rootOptions struct {
	keyMode   string
	typeAhead bool
	noColor   bool
	noTUI     bool
	output    string
	logLevel  string
	width     int
	height    int
}

var (
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	runBoardTUI      = ui.Run
)

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [board-file]",
		Short: "Run actions on a list of items from per-item menu buttons",
		Long: `menubutton shows a board of items, each with a compact menu button.
Open a menu with enter, space or the down arrow, pick an option, and the
option's action runs against that item.

Without a board file the board is read from $XDG_CONFIG_HOME/menubutton/board.yaml
(or ~/.config/menubutton/board.yaml) when present, else a built-in demo board.
When stdout is not a terminal, or with --no-tui, the board is printed instead.`,
		Example:       "\n  menubutton\n  menubutton invoices.yaml --keymap emacs\n  menubutton invoices.toml --no-tui -o tree\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			level, err := zapcore.ParseLevel(o.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
			}
			lgr := logger.Get(int8(level))
			named := lgr.WithValues("command", c.Name())
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c.SetContext(logger.WithLogger(ctx, &named))
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runRoot(c, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.keyMode, "keymap", "", "keybinding mode: vim (default), emacs, or function")
	f.BoolVar(&o.typeAhead, "type-ahead", false, "jump to options by typing the start of their label")
	f.BoolVar(&o.noColor, "no-color", false, "disable color output")
	f.BoolVar(&o.noTUI, "no-tui", false, "print the board instead of starting the interactive UI")
	f.StringVarP(&o.output, "output", "o", formatter.OutputTable, "format for the printed board: "+strings.Join(formatter.ValidOutputs, "|"))
	f.IntVar(&o.width, "width", 0, "width in columns (0 = terminal width)")
	f.IntVar(&o.height, "height", 0, "height in rows (0 = terminal height)")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "minimum log level: debug|info|warn|error")

	cmd.Version = cliVersionString()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.AddCommand(newVersionCmd(), newBoardCmd())
	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(c *cobra.Command, o *rootOptions, args []string) error {
	if !isValidOutput(o.output) {
		return fmt.Errorf("invalid --output %q: valid values are %s", o.output, strings.Join(formatter.ValidOutputs, ", "))
	}

	explicit := ""
	if len(args) == 1 {
		explicit = args[0]
	}
	board, source, err := loadBoard(resolveBoardPath(explicit))
	if err != nil {
		return err
	}

	run, err := runSettings(c, o, board, source)
	if err != nil {
		return err
	}
	ctx := settings.IntoContext(c.Context(), run)
	lgr := logger.FromContext(ctx)
	lgr.V(1).Info("board loaded", "source", source, "items", len(board.Items), "keymap", run.KeyMode)

	model, err := ui.NewModel(ctx, ui.Options{Board: board})
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	if run.NoTUI {
		out, err := formatter.Render(model.Listing(), run.Output, formatter.ColumnarOptions{
			NoColor:    run.NoColor,
			TotalWidth: o.width,
		})
		if err != nil {
			return err
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err = fmt.Fprint(c.OutOrStdout(), out)
		return err
	}
	return runBoardTUI(ctx, model, o.width, o.height)
}

// runSettings merges board defaults and flags. Flags win when given.
func runSettings(c *cobra.Command, o *rootOptions, board *config.Board, source string) (*settings.Run, error) {
	run := settings.NewCliParams()
	run.BoardFile = source
	run.Output = o.output

	if board.Defaults.KeyMode != "" {
		run.KeyMode = board.Defaults.KeyMode
	}
	if c.Flags().Changed("keymap") {
		run.KeyMode = o.keyMode
	}
	if !actionmenu.IsValidKeyMode(run.KeyMode) {
		return nil, fmt.Errorf("invalid keymap %q: valid values are %s", run.KeyMode, validKeyModes())
	}

	run.TypeAhead = board.Defaults.TypeAhead
	if c.Flags().Changed("type-ahead") {
		run.TypeAhead = o.typeAhead
	}
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	run.NoColor = o.noColor || noColorEnv
	run.NoTUI = o.noTUI || !stdoutIsTerminal()
	return run, nil
}

func isValidOutput(output string) bool {
	for _, v := range formatter.ValidOutputs {
		if v == output {
			return true
		}
	}
	return false
}

func validKeyModes() string {
	modes := make([]string, len(actionmenu.ValidKeyModes))
	for i, m := range actionmenu.ValidKeyModes {
		modes[i] = string(m)
	}
	return strings.Join(modes, ", ")
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s/%s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.GOOS, runtime.GOARCH)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print menubutton version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), cliVersionString())
			return err
		},
	}
}
