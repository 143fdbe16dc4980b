// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cogentcore.org/skycat/tensor"
	"cogentcore.org/skycat/tensor/table"
)

// Ops are the comparison operators of an [Expr].
type Ops string

const (
	Equal        Ops = "=="
	NotEqual     Ops = "!="
	Greater      Ops = ">"
	GreaterEqual Ops = ">="
	Less         Ops = "<"
	LessEqual    Ops = "<="
)

// Compare returns the result of a op b, with IEEE NaN semantics:
// every comparison against NaN is false except !=.
func (op Ops) Compare(a, b float64) bool {
	switch op {
	case Equal:
		return a == b
	case NotEqual:
		return a != b
	case Greater:
		return a > b
	case GreaterEqual:
		return a >= b
	case Less:
		return a < b
	case LessEqual:
		return a <= b
	}
	return false
}

// IsValid returns true if op is a known operator.
func (op Ops) IsValid() bool {
	switch op {
	case Equal, NotEqual, Greater, GreaterEqual, Less, LessEqual:
		return true
	}
	return false
}

// Expr is a single column comparison against a constant, such as
// "deblend_skipped == false" or "snr_i > 5". It is the serializable
// form of a predicate, and is what catalog readers accept as filters.
type Expr struct {
	// Column is the name of a scalar column.
	Column string

	// Op is the comparison operator.
	Op Ops

	// Value is the constant compared against; bools are 1 or 0.
	Value float64

	// IsBool is set when Value came from a boolean literal.
	IsBool bool
}

// Eq returns an Expr for column == value, where value is a bool or a number.
func Eq(column string, value any) Expr {
	return newExpr(column, Equal, value)
}

// Ne returns an Expr for column != value, where value is a bool or a number.
func Ne(column string, value any) Expr {
	return newExpr(column, NotEqual, value)
}

// Gt returns an Expr for column > value.
func Gt(column string, value float64) Expr {
	return Expr{Column: column, Op: Greater, Value: value}
}

// Ge returns an Expr for column >= value.
func Ge(column string, value float64) Expr {
	return Expr{Column: column, Op: GreaterEqual, Value: value}
}

// Lt returns an Expr for column < value.
func Lt(column string, value float64) Expr {
	return Expr{Column: column, Op: Less, Value: value}
}

// Le returns an Expr for column <= value.
func Le(column string, value float64) Expr {
	return Expr{Column: column, Op: LessEqual, Value: value}
}

func newExpr(column string, op Ops, value any) Expr {
	ex := Expr{Column: column, Op: op}
	switch v := value.(type) {
	case bool:
		ex.IsBool = true
		ex.Value = tensor.BoolToFloat64(v)
	case int:
		ex.Value = float64(v)
	case float64:
		ex.Value = v
	default:
		panic(fmt.Sprintf("cuts: unsupported value type %T for column %q", value, column))
	}
	return ex
}

// String returns the expression in the form parsed by [ParseExpr].
func (ex Expr) String() string {
	return ex.Column + " " + string(ex.Op) + " " + ex.ValueString()
}

// ValueString returns the literal form of the value.
func (ex Expr) ValueString() string {
	if ex.IsBool {
		return strconv.FormatBool(tensor.Float64ToBool(ex.Value))
	}
	return strconv.FormatFloat(ex.Value, 'g', -1, 64)
}

// Match returns the result of the expression for the given column value.
func (ex Expr) Match(val float64) bool {
	return ex.Op.Compare(val, ex.Value)
}

// Mask implements [Predicate].
func (ex Expr) Mask(dt *table.Table) (table.Mask, error) {
	cl, err := scalarColumn(dt, ex.Column)
	if err != nil {
		return nil, err
	}
	m := make(table.Mask, dt.NumRows())
	for i := range m {
		m[i] = ex.Match(cl.Float1D(i))
	}
	return m, nil
}

var exprRE = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*(==|!=|>=|<=|>|<)\s*(\S+)\s*$`)

// ParseExpr parses an expression of the form "column op value",
// where op is one of == != > >= < <= and value is a number or
// a boolean literal (true or false).
func ParseExpr(s string) (Expr, error) {
	sm := exprRE.FindStringSubmatch(s)
	if sm == nil {
		return Expr{}, fmt.Errorf("cuts.ParseExpr: cannot parse %q", s)
	}
	ex := Expr{Column: sm[1], Op: Ops(sm[2])}
	switch lv := strings.ToLower(sm[3]); lv {
	case "true", "false":
		if ex.Op != Equal && ex.Op != NotEqual {
			return Expr{}, fmt.Errorf("cuts.ParseExpr: operator %s not valid with boolean in %q", ex.Op, s)
		}
		ex.IsBool = true
		ex.Value = tensor.BoolToFloat64(lv == "true")
	default:
		v, err := strconv.ParseFloat(sm[3], 64)
		if err != nil {
			return Expr{}, fmt.Errorf("cuts.ParseExpr: invalid value in %q: %w", s, err)
		}
		ex.Value = v
	}
	return ex, nil
}

// ParseExprs parses each of the given strings with [ParseExpr].
func ParseExprs(strs ...string) ([]Expr, error) {
	exs := make([]Expr, len(strs))
	for i, s := range strs {
		ex, err := ParseExpr(s)
		if err != nil {
			return nil, err
		}
		exs[i] = ex
	}
	return exs, nil
}

// Predicates converts expressions to a list of predicates.
func Predicates(exs ...Expr) []Predicate {
	ps := make([]Predicate, len(exs))
	for i, ex := range exs {
		ps[i] = ex
	}
	return ps
}
