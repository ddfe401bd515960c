package relativetime

import "errors"

var (
	ErrEmptyExpression     = errors.New("expression is empty")
	ErrInvalidExpression   = errors.New("invalid expression")
	ErrInvalidDateLiteral  = errors.New("invalid date format")
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrNullOrEmptyArgument = errors.New("null or empty argument")
)
