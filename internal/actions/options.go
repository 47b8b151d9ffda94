package actions

import (
	"fmt"

	"github.com/oakwood-commons/menubutton/internal/cel"
	"github.com/oakwood-commons/menubutton/internal/config"
	"github.com/oakwood-commons/menubutton/pkg/actionmenu"
)

// Options builds the menu options for item. An option is disabled when its
// spec says so or its disabled_when predicate holds for the item. A
// predicate that fails to evaluate, for example on a missing field, leaves
// the option disabled and is reported in errs.
func Options(specs []config.OptionSpec, item *config.Item, eval *cel.Evaluator) (opts []actionmenu.Option, errs []error, err error) {
	opts = make([]actionmenu.Option, 0, len(specs))
	vars := item.Vars()
	for _, spec := range specs {
		action, err := Build(spec.Action)
		if err != nil {
			return nil, nil, fmt.Errorf("option %q: %w", spec.Label, err)
		}
		disabled := spec.Disabled
		if !disabled && spec.DisabledWhen != "" {
			if eval == nil {
				return nil, nil, fmt.Errorf("option %q: disabled_when needs an evaluator", spec.Label)
			}
			pred, err := eval.Compile(spec.DisabledWhen)
			if err != nil {
				return nil, nil, fmt.Errorf("option %q: disabled_when: %w", spec.Label, err)
			}
			hit, evalErr := pred.Eval(vars)
			if evalErr != nil {
				errs = append(errs, fmt.Errorf("item %q option %q: %w", item.ID, spec.Label, evalErr))
				hit = true
			}
			disabled = hit
		}
		opts = append(opts, actionmenu.Option{Label: spec.Label, Action: action, Disabled: disabled})
	}
	return opts, errs, nil
}
