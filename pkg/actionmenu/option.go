package actionmenu

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Action runs the work behind an option. It receives the subject item
// unchanged. Returning immediately is a synchronous completion; blocking is
// an asynchronous one. The menu stays locked until it returns.
type Action func(ctx context.Context, item any) error

// Option is one row of the menu. The option list is owned by the caller and
// only read by the menu; order drives both display and traversal.
type Option struct {
	Label    string
	Action   Action
	Disabled bool
}

// Enabled reports whether the option can receive focus and be selected.
func (o Option) Enabled() bool {
	return !o.Disabled
}

// ErrInvalidConfig wraps every construction-time validation failure.
var ErrInvalidConfig = errors.New("invalid action menu config")

func validateOptions(options []Option) error {
	for i, opt := range options {
		if strings.TrimSpace(opt.Label) == "" {
			return fmt.Errorf("%w: option %d has an empty label", ErrInvalidConfig, i)
		}
		if opt.Action == nil {
			return fmt.Errorf("%w: option %d (%q) has no action", ErrInvalidConfig, i, opt.Label)
		}
	}
	return nil
}
