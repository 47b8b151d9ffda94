package cel

import (
	"errors"
	"testing"

	"github.com/google/cel-go/common/types"
)

func TestNewEvaluator_CreatesValidEnvironment(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	if eval.GetEnvironment() == nil {
		t.Fatal("GetEnvironment returned nil")
	}
}

func TestEvaluate_Predicates(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	item := map[string]any{
		"name":     "invoice-42",
		"status":   "archived",
		"locked":   true,
		"balance":  12.5,
		"tags":     []any{"finance", "q3"},
		"approver": map[string]any{"email": "ops@example.com"},
	}

	tests := []struct {
		name     string
		expr     string
		expected bool
	}{
		{"bool field", "item.locked", true},
		{"equality", `item.status == "archived"`, true},
		{"inequality", `item.status != "archived"`, false},
		{"comparison", "item.balance > 100.0", false},
		{"membership", `"q3" in item.tags`, true},
		{"string ext", `item.name.startsWith("invoice")`, true},
		{"nested", `item.approver.email.endsWith("@example.com")`, true},
		{"has macro", "has(item.deleted_at)", false},
		{"combined", `item.locked && item.tags.size() == 2`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.Evaluate(tt.expr, item)
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", tt.expr, err)
			}
			if got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.expected)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	if _, err := eval.Compile("item.status =="); err == nil {
		t.Error("expected a syntax error")
	}
	if _, err := eval.Compile("missing.field"); err == nil {
		t.Error("expected an undeclared reference error")
	}
	if _, err := eval.Compile(`"text"`); !errors.Is(err, ErrNotBool) {
		t.Errorf("expected ErrNotBool for a string literal, got %v", err)
	}
}

func TestEval_DynamicNonBool(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	_, err = eval.Evaluate("item.status", map[string]any{"status": "open"})
	if !errors.Is(err, ErrNotBool) {
		t.Errorf("expected ErrNotBool, got %v", err)
	}
}

func TestEval_MissingFieldIsError(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	if _, err := eval.Evaluate("item.locked", map[string]any{}); err == nil {
		t.Error("expected a no-such-key error")
	}
}

func TestCompile_CachesPrograms(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	a, err := eval.Compile("item.locked")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	b, err := eval.Compile("item.locked")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if a != b {
		t.Error("expected the cached predicate to be reused")
	}
	if a.Expr() != "item.locked" {
		t.Errorf("Expr() = %q", a.Expr())
	}
}

func TestToGo(t *testing.T) {
	tests := []struct {
		name string
		in   types.Bool
		want bool
	}{
		{"true", types.True, true},
		{"false", types.False, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToGo(tt.in); got != tt.want {
				t.Errorf("ToGo(%v) = %v", tt.in, got)
			}
		})
	}
	if ToGo(nil) != nil {
		t.Error("ToGo(nil) should be nil")
	}
	if got := ToGo(types.String("x")); got != "x" {
		t.Errorf("ToGo(String) = %v", got)
	}
	if got := ToGo(types.Int(3)); got != int64(3) {
		t.Errorf("ToGo(Int) = %v", got)
	}
}
