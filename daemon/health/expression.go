package health

import (
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression is the compiled-expression capability consumed by the
// engine (§6). The real parser/evaluator is an out-of-scope external
// collaborator; ExprExpression below is the concrete adapter (C3) that
// invokes it.
type Expression interface {
	Evaluate(env map[string]any) (ok bool, err error)
	Result() float64
	ErrorMsg() string
	ParsedAs() string
	Source() string
}

// ExprExpression adapts an expr-lang program to the Expression
// capability. Compiled once via CompileExpression, evaluated many times
// against successive Env snapshots.
type ExprExpression struct {
	source   string
	program  *vm.Program
	result   float64
	errorMsg string
}

// CompileExpression compiles src as an expr-lang expression over a
// map[string]any environment. It does not evaluate anything yet.
func CompileExpression(src string) (*ExprExpression, error) {
	program, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return &ExprExpression{source: src, program: program}, nil
}

// Evaluate runs the compiled program against env and caches the numeric
// result (or error text) for later inspection via Result/ErrorMsg.
func (e *ExprExpression) Evaluate(env map[string]any) (bool, error) {
	out, err := expr.Run(e.program, env)
	if err != nil {
		e.errorMsg = err.Error()
		e.result = math.NaN()
		return false, err
	}
	e.errorMsg = ""

	switch v := out.(type) {
	case float64:
		e.result = v
	case int:
		e.result = float64(v)
	case bool:
		if v {
			e.result = 1
		} else {
			e.result = 0
		}
	default:
		e.errorMsg = "expression did not evaluate to a number"
		e.result = math.NaN()
		return false, nil
	}
	return true, nil
}

// Result returns the most recent numeric evaluation result.
func (e *ExprExpression) Result() float64 { return e.result }

// ErrorMsg returns the most recent evaluation error text, if any.
func (e *ExprExpression) ErrorMsg() string { return e.errorMsg }

// ParsedAs returns a human-readable description of the compiled form.
func (e *ExprExpression) ParsedAs() string { return e.source }

// Source returns the original expression text.
func (e *ExprExpression) Source() string { return e.source }

// valueStatus is the NaN/±Inf/zero/nonzero → {Undefined,Clear,Raised}
// mapping of spec §4.3.
type valueResult int

const (
	valUndefined valueResult = iota
	valClear
	valRaised
)

func valueToStatus(v float64) valueResult {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return valUndefined
	}
	if v == 0 {
		return valClear
	}
	return valRaised
}
