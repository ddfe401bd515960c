package relativetime

import (
	"fmt"
	"reflect"

	"github.com/alecthomas/kong"
)

// Mapper decodes an expression flag and resolves it to a time.Time once,
// while flags are parsed.
var Mapper kong.MapperFunc = func(ctx *kong.DecodeContext, target reflect.Value) error {
	var exprStr string
	if err := ctx.Scan.PopValueInto("expression", &exprStr); err != nil {
		return err
	}

	expr, err := Parse(exprStr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", exprStr, err)
	}

	t, err := expr.Resolve()
	if err != nil {
		return err
	}

	target.Set(reflect.ValueOf(t))
	return nil
}

// ExpressionMapper decodes an expression flag into a *Expression, leaving
// resolution to the command.
var ExpressionMapper kong.MapperFunc = func(ctx *kong.DecodeContext, target reflect.Value) error {
	var exprStr string
	if err := ctx.Scan.PopValueInto("expression", &exprStr); err != nil {
		return err
	}

	expr, err := Parse(exprStr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", exprStr, err)
	}

	target.Set(reflect.ValueOf(expr))
	return nil
}
