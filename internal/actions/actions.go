// Package actions turns declarative option specs from a board file into
// menu options.
package actions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/atotto/clipboard"

	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
	"github.com/oakwood-commons/menubutton/pkg/logger"
)

// Kind is an action type.
type Kind string

const (
	KindLog   Kind = "log"
	KindDelay Kind = "delay"
	KindFail  Kind = "fail"
	KindPanic Kind = "panic"
	KindNoop  Kind = "noop"
	// KindCopy copies the rendered message to the system clipboard.
	KindCopy Kind = "copy"
)

// Kinds lists every supported action type.
var Kinds = []Kind{KindLog, KindDelay, KindFail, KindPanic, KindNoop, KindCopy}

// copyToClipboardFn is replaced in tests to keep the clipboard untouched.
var copyToClipboardFn = clipboard.WriteAll

// DefaultDelay is used by delay actions that do not set one.
const DefaultDelay = time.Second

// maxSuggestDistance bounds how far a typo may be from a known type and
// still be suggested.
const maxSuggestDistance = 2

var (
	// ErrUnknownKind is returned for an action type not in Kinds.
	ErrUnknownKind = errors.New("unknown action type")
	// ErrActionFailed is returned by fail actions.
	ErrActionFailed = errors.New("action failed")
)

// Suggest returns the known action type closest to name, or "" when none is
// within a small edit distance.
func Suggest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range Kinds {
		if d := levenshtein.ComputeDistance(name, string(k)); d < bestDist {
			best, bestDist = string(k), d
		}
	}
	return best
}

// Build compiles spec into an Action. The message template is parsed here
// and rendered against the subject item on every run.
func Build(spec config.ActionSpec) (actionmenu.Action, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(spec.Type)))
	if !isKnown(kind) {
		if s := Suggest(spec.Type); s != "" {
			return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownKind, spec.Type, s)
		}
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownKind, spec.Type, kindList())
	}
	tmpl, err := template.New(string(kind)).Parse(spec.Message)
	if err != nil {
		return nil, fmt.Errorf("parse message template: %w", err)
	}
	delay := time.Duration(0)
	if spec.Delay != "" {
		delay, err = time.ParseDuration(spec.Delay)
		if err != nil {
			return nil, fmt.Errorf("parse delay: %w", err)
		}
		if delay < 0 {
			return nil, fmt.Errorf("parse delay: negative duration %s", spec.Delay)
		}
	}
	if kind == KindDelay && delay == 0 {
		delay = DefaultDelay
	}

	return func(ctx context.Context, item any) error {
		log := logger.ForComponent(ctx, "actions", "type", string(kind))
		msg, err := render(tmpl, item)
		if err != nil {
			return err
		}
		if err := wait(ctx, delay); err != nil {
			return err
		}
		switch kind {
		case KindFail:
			return fmt.Errorf("%w: %s", ErrActionFailed, msg)
		case KindPanic:
			panic(msg)
		case KindNoop:
			return nil
		case KindCopy:
			if err := copyToClipboardFn(msg); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
		}
		log.Info(msg, "item", itemID(item))
		return nil
	}, nil
}

// Message renders an option's message for item. It is what the board shows
// after the action completes.
func Message(spec config.ActionSpec, item any) (string, error) {
	tmpl, err := template.New("message").Parse(spec.Message)
	if err != nil {
		return "", fmt.Errorf("parse message template: %w", err)
	}
	return render(tmpl, item)
}

func render(tmpl *template.Template, item any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Vars(item)); err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	return buf.String(), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Vars returns the template and predicate variables of a subject item.
func Vars(item any) map[string]any {
	switch it := item.(type) {
	case *config.Item:
		if it == nil {
			return map[string]any{}
		}
		return it.Vars()
	case config.Item:
		return it.Vars()
	case map[string]any:
		return it
	default:
		return map[string]any{}
	}
}

func itemID(item any) string {
	if id, ok := Vars(item)["id"].(string); ok {
		return id
	}
	return ""
}

func isKnown(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
