package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a board file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrInvalidBoard wraps every board validation failure.
var ErrInvalidBoard = errors.New("invalid board")

//go:embed default_board.yaml
var embeddedDefaultBoard []byte

// DefaultBoardYAML returns a copy of the embedded demo board.
func DefaultBoardYAML() []byte {
	return append([]byte(nil), embeddedDefaultBoard...)
}

// Default parses the embedded demo board.
func Default() (*Board, error) {
	b, err := Parse(embeddedDefaultBoard, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("decode embedded default board: %w", err)
	}
	return b, nil
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported board file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads, decodes and validates the board at path.
func Load(path string) (*Board, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	b, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a board.
func Parse(data []byte, format Format) (*Board, error) {
	var b Board
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown board format %q", format)
	}
	b.applyDefaults()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Board) applyDefaults() {
	if b.Defaults.Icon == "" {
		b.Defaults.Icon = "fa-solid fa-ellipsis-vertical"
	}
	if b.Defaults.TooltipText == "" {
		b.Defaults.TooltipText = "More actions"
	}
}

// Validate checks the structure of the board. Action types and predicates
// are checked when the options are built.
func (b *Board) Validate() error {
	if len(b.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidBoard)
	}
	seen := make(map[string]bool, len(b.Items))
	for i, it := range b.Items {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidBoard, i)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidBoard, it.ID)
		}
		seen[it.ID] = true
		if err := validateOptionSpecs(b.OptionsFor(it)); err != nil {
			return fmt.Errorf("%w: item %q: %w", ErrInvalidBoard, it.ID, err)
		}
	}
	return nil
}

func validateOptionSpecs(specs []OptionSpec) error {
	for i, o := range specs {
		if strings.TrimSpace(o.Label) == "" {
			return fmt.Errorf("option %d has an empty label", i)
		}
		if strings.TrimSpace(o.Action.Type) == "" {
			return fmt.Errorf("option %q has no action type", o.Label)
		}
	}
	return nil
}
