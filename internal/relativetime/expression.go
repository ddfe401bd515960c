package relativetime

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var literalRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}.*$`)

// Expression is a parsed time position: an anchor plus an optional adjustment.
// It is immutable; Resolve re-reads the clock for keyword anchors on every call.
type Expression struct {
	anchor     Anchor
	literal    time.Time
	adjustment string
	clock      func() time.Time
}

// Option configures an Expression created by Parse.
type Option func(*Expression)

// WithClock overrides the source of the current time for keyword anchors.
func WithClock(clock func() time.Time) Option {
	return func(e *Expression) {
		e.clock = clock
	}
}

// Parse classifies s into an anchor and an adjustment. The clock is not read.
func Parse(s string, opts ...Option) (*Expression, error) {
	e := &Expression{}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.parse(s); err != nil {
		return nil, err
	}

	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string, opts ...Option) *Expression {
	e, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expression) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyExpression
	}

	upper := strings.ToUpper(s)

	if anchor, ok := matchKeyword(upper); ok {
		e.anchor = anchor
		e.adjustment = upper[len(anchor.Keyword()):]
		return nil
	}

	if !literalRegex.MatchString(upper) {
		return fmt.Errorf(
			"%w %q: should start with '$CurrentYear', '$CurrentMonth', '$CurrentWeek', '$CurrentDay', "+
				"'$CurrentHour', '$CurrentMinute', '$Now' or 'yyyy-MM-dd HH:mm:ss' (case insensitive)",
			ErrInvalidExpression, s,
		)
	}

	literal, err := parseLiteral(s[:len(timeFormat)])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDateLiteral, err)
	}

	e.anchor = Explicit
	e.literal = literal
	e.adjustment = upper[len(timeFormat):]

	return nil
}

// Anchor returns the kind of anchor the expression starts with.
func (e *Expression) Anchor() Anchor {
	return e.anchor
}

// AnchorKeyword returns the reserved keyword of the anchor, or "" for a literal.
func (e *Expression) AnchorKeyword() string {
	return e.anchor.Keyword()
}

// Literal returns the absolute anchor and whether the expression has one.
func (e *Expression) Literal() (time.Time, bool) {
	return e.literal, e.anchor == Explicit
}

// Adjustment returns the uppercase adjustment following the anchor, which
// may be empty.
func (e *Expression) Adjustment() string {
	return e.adjustment
}

func (e *Expression) String() string {
	anchor := e.anchor.Keyword()
	if e.anchor == Explicit {
		anchor = e.literal.Format(timeFormat)
	}
	return anchor + e.adjustment
}

// Resolve computes the point in time the expression denotes.
func (e *Expression) Resolve() (time.Time, error) {
	t, err := applyAdjustment(e.resolveAnchor(), e.adjustment)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolving %q: %w", e.String(), err)
	}
	return t, nil
}

func (e *Expression) resolveAnchor() time.Time {
	if e.anchor == Explicit {
		return e.literal
	}

	clock := e.clock
	if clock == nil {
		clock = now
	}

	return truncate(e.anchor, currentTime(clock))
}

// MarshalText implements encoding.TextMarshaler.
func (e *Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A clock set through
// WithClock on e is kept.
func (e *Expression) UnmarshalText(text []byte) error {
	parsed := Expression{clock: e.clock}
	if err := parsed.parse(string(text)); err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ApplyAt applies an adjustment such as "+1M -1D" to base.
func ApplyAt(base time.Time, adjustment string) (time.Time, error) {
	if base.IsZero() {
		return time.Time{}, fmt.Errorf("%w: base time is not set", ErrNullOrEmptyArgument)
	}
	if strings.TrimSpace(adjustment) == "" {
		return time.Time{}, fmt.Errorf("%w: adjustment is empty", ErrNullOrEmptyArgument)
	}

	return applyAdjustment(base, strings.ToUpper(adjustment))
}
