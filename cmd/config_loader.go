package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/pkg/settings"
)

// builtinSource names the embedded demo board in logs and errors.
const builtinSource = "built-in"

var boardFileNames = []string{"board.yaml", "board.yml", "board.toml"}

// resolveBoardPath returns explicit if set, otherwise the first board file
// found under $XDG_CONFIG_HOME/menubutton (or ~/.config/menubutton). An
// empty result means the built-in board.
func resolveBoardPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	for _, name := range boardFileNames {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadBoard loads path, or the built-in board when path is empty. The
// returned source is path or builtinSource.
func loadBoard(path string) (*config.Board, string, error) {
	if path == "" {
		b, err := config.Default()
		return b, builtinSource, err
	}
	b, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return b, path, nil
}

// marshalBoard encodes b with defaults applied.
func marshalBoard(b *config.Board, format config.Format) ([]byte, error) {
	switch format {
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.FormatTOML:
		return toml.Marshal(b)
	default:
		return nil, fmt.Errorf("unsupported board format %q (want yaml or toml)", format)
	}
}

func newBoardCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "board [board-file]",
		Short: "Print the resolved board with defaults applied",
		Long: `Print the board menubutton would show, after defaults are filled in and
the file is validated. With no argument this is the board from your config
directory or the built-in demo board, which makes a good starting point:

  menubutton board > ~/.config/menubutton/board.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			explicit := ""
			if len(args) == 1 {
				explicit = args[0]
			}
			b, _, err := loadBoard(resolveBoardPath(explicit))
			if err != nil {
				return err
			}
			data, err := marshalBoard(b, config.Format(output))
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(config.FormatYAML), "encoding: yaml|toml")
	return cmd
}
