// Package query selects document rows with CEL expressions.
//
// An expression sees three variables:
//
//	row      int           zero-based row index
//	cells    list(string)  cell values of the row, quoting removed
//	columns  int           column count of the whole document
//
// For example `row > 0 && size(cells) < columns` selects the ragged data rows
// below a header.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/yaklabco/csvdoc/pkg/csvdoc"
)

// CEL variable names.
const (
	VarRow     = "row"
	VarCells   = "cells"
	VarColumns = "columns"
)

var (
	// ErrInvalidExpression is returned when an expression does not compile.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrNotBoolean is returned when an expression does not yield a bool.
	ErrNotBoolean = errors.New("expression does not evaluate to a boolean")

	// ErrEvaluation is returned when an expression fails on a row.
	ErrEvaluation = errors.New("evaluation failed")
)

var env *cel.Env

func init() {
	var err error
	env, err = cel.NewEnv(
		cel.Variable(VarRow, cel.IntType),
		cel.Variable(VarCells, cel.ListType(cel.StringType)),
		cel.Variable(VarColumns, cel.IntType),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}
}

// Filter is a compiled row predicate. It is safe for concurrent use.
type Filter struct {
	expr    string
	program cel.Program
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Filter, error) {
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, iss.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBoolean, expr, out)
	}

	program, err := env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	return &Filter{expr: expr, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against one row. A row index outside the
// document never matches.
func (f *Filter) Match(doc *csvdoc.Document, rowIndex int) (bool, error) {
	return f.match(context.Background(), doc, rowIndex)
}

// Select returns the indices of all matching rows in document order.
func (f *Filter) Select(ctx context.Context, doc *csvdoc.Document) ([]int, error) {
	var matched []int

	for i := range doc.RowCount() {
		if err := ctx.Err(); err != nil {
			return matched, fmt.Errorf("select cancelled: %w", err)
		}
		ok, err := f.match(ctx, doc, i)
		if err != nil {
			return matched, err
		}
		if ok {
			matched = append(matched, i)
		}
	}

	return matched, nil
}

func (f *Filter) match(ctx context.Context, doc *csvdoc.Document, rowIndex int) (bool, error) {
	row, ok := doc.Row(rowIndex)
	if !ok {
		return false, nil
	}

	val, _, err := f.program.ContextEval(ctx, map[string]any{
		VarRow:     rowIndex,
		VarCells:   row.Values(),
		VarColumns: doc.ColumnCount(),
	})
	if err != nil {
		return false, fmt.Errorf("%w: row %d: %w", ErrEvaluation, rowIndex, err)
	}

	b, isBool := val.(types.Bool)
	if !isBool {
		return false, fmt.Errorf("%w: row %d yielded %s", ErrNotBoolean, rowIndex, val.Type().TypeName())
	}
	return bool(b), nil
}
