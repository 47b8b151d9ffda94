// Package cel evaluates the CEL predicates that board files attach to menu
// options. A predicate sees the row's subject item as the variable "item".
package cel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// ItemVar is the variable name bound to the subject item.
const ItemVar = "item"

// ErrNotBool is returned when a predicate does not evaluate to a boolean.
var ErrNotBool = errors.New("predicate must evaluate to a bool")

// Evaluator compiles and evaluates CEL predicates. Compiled programs are
// cached by expression text; an Evaluator is safe for concurrent use.
type Evaluator struct {
	env   *cel.Env
	mu    sync.Mutex
	cache map[string]*Predicate
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// NewEvaluator creates a new CEL evaluator with standard library functions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, cache: map[string]*Predicate{}}, nil
}

// GetEnvironment returns the CEL environment for introspection
func (e *Evaluator) GetEnvironment() *cel.Env {
	return e.env
}

// newStandardCELEnv creates a standard CEL environment with common extensions.
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 4+len(opts))
	allOpts = append(allOpts,
		cel.Variable(ItemVar, cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Compile parses and type-checks expr. Expressions whose static type is
// known and not bool are rejected here; dyn-typed ones are checked on
// evaluation.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.cache[expr]; ok {
		return p, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBool, expr, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	p := &Predicate{expr: expr, prg: prg}
	e.cache[expr] = p
	return p, nil
}

// Evaluate compiles expr (or reuses the cached program) and evaluates it
// against item.
func (e *Evaluator) Evaluate(expr string, item any) (bool, error) {
	p, err := e.Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Eval(item)
}

// Expr returns the source text of the predicate.
func (p *Predicate) Expr() string {
	return p.expr
}

// Eval evaluates the predicate with item bound to ItemVar.
func (p *Predicate) Eval(item any) (bool, error) {
	result, _, err := p.prg.Eval(map[string]any{ItemVar: item})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := ToGo(result).(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %v", ErrNotBool, p.expr, result.Type())
	}
	return b, nil
}

// ToGo converts CEL types to Go native types recursively.
// Handles both CEL primitive types and collection types (List, Map).
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	if valuer, ok := val.(interface{ Value() any }); ok {
		inner := valuer.Value()
		if refSlice, ok := inner.([]ref.Val); ok {
			out := make([]any, len(refSlice))
			for i, elem := range refSlice {
				out[i] = ToGo(elem)
			}
			return out
		}
		return inner
	}
	return val
}
