package relativetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// Unit is the calendar unit of a single offset.
type Unit int

const (
	UnitYear Unit = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

var unitSymbols = map[Unit]string{
	UnitYear:   "Y",
	UnitMonth:  "M",
	UnitWeek:   "W",
	UnitDay:    "D",
	UnitHour:   "H",
	UnitMinute: "MI",
	UnitSecond: "S",
}

func (u Unit) String() string {
	if s, ok := unitSymbols[u]; ok {
		return s
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// maxMagnitude bounds each unit to about a million years so that field
// arithmetic in time.Date cannot overflow.
var maxMagnitude = map[Unit]int64{
	UnitYear:   1_000_000,
	UnitMonth:  12_000_000,
	UnitWeek:   366_000_000 / 7,
	UnitDay:    366_000_000,
	UnitHour:   366_000_000 * 24,
	UnitMinute: 366_000_000 * 24 * 60,
	UnitSecond: 366_000_000 * 24 * 60 * 60,
}

var unitFields = map[Unit]Field{
	UnitYear:   FieldYear,
	UnitMonth:  FieldMonth,
	UnitDay:    FieldDay,
	UnitHour:   FieldHour,
	UnitMinute: FieldMinute,
	UnitSecond: FieldSecond,
}

// Sign is the direction of an offset. The zero value means no sign was given.
type Sign int

const (
	SignUnset Sign = 0
	SignPlus  Sign = 1
	SignMinus Sign = -1
)

func (s Sign) String() string {
	switch s {
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	}
	return ""
}

// Offset is one signed field offset such as "+4D".
type Offset struct {
	Sign      Sign
	Magnitude int
	Unit      Unit
}

func (o Offset) String() string {
	return o.Sign.String() + strconv.Itoa(o.Magnitude) + o.Unit.String()
}

// Apply shifts t by the offset. A week is seven days. The magnitude is
// expected to be within the bounds ParseAdjustment enforces.
func (o Offset) Apply(t time.Time) time.Time {
	unit, n := o.Unit, o.Magnitude
	if unit == UnitWeek {
		unit, n = UnitDay, n*7
	}
	return addField(t, unitFields[unit], int(o.Sign)*n)
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenSign
	tokenNumber
	tokenUnit
)

type token struct {
	kind tokenKind
	pos  int
	sign Sign
	num  int
	unit Unit
}

// lexer splits an uppercase adjustment into tokens. Whitespace and
// unrecognized characters are skipped.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) peek() byte {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) {
		start := l.pos
		ch := l.input[l.pos]
		l.pos++

		switch {
		case ch == '+':
			return token{kind: tokenSign, pos: start, sign: SignPlus}, nil
		case ch == '-':
			return token{kind: tokenSign, pos: start, sign: SignMinus}, nil
		case isDigit(ch):
			return l.number(start)
		case ch == 'M':
			if l.peek() == 'I' {
				l.pos++
				return token{kind: tokenUnit, pos: start, unit: UnitMinute}, nil
			}
			return token{kind: tokenUnit, pos: start, unit: UnitMonth}, nil
		case ch == 'Y':
			return token{kind: tokenUnit, pos: start, unit: UnitYear}, nil
		case ch == 'W':
			return token{kind: tokenUnit, pos: start, unit: UnitWeek}, nil
		case ch == 'D':
			return token{kind: tokenUnit, pos: start, unit: UnitDay}, nil
		case ch == 'H':
			return token{kind: tokenUnit, pos: start, unit: UnitHour}, nil
		case ch == 'S':
			return token{kind: tokenUnit, pos: start, unit: UnitSecond}, nil
		}
	}

	return token{kind: tokenEOF, pos: l.pos}, nil
}

func (l *lexer) number(start int) (token, error) {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	if l.pos == len(l.input) {
		return token{}, fmt.Errorf("%w: number at position %d is not followed by a unit", ErrInvalidExpression, start)
	}

	n, err := strconv.Atoi(l.input[start:l.pos])
	if err != nil {
		return token{}, fmt.Errorf("%w: number at position %d: %w", ErrInvalidExpression, start, err)
	}

	return token{kind: tokenNumber, pos: start, num: n}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// ParseAdjustment splits an adjustment such as "+1Y -4MI" into offsets in
// the order they are written. The input is matched case-insensitively.
func ParseAdjustment(adjustment string) ([]Offset, error) {
	var (
		lex       = lexer{input: strings.ToUpper(adjustment)}
		offsets   []Offset
		sign      = SignUnset
		magnitude = -1
	)

	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokenEOF:
			if magnitude >= 0 {
				return nil, fmt.Errorf("%w: number %d is not followed by a unit", ErrInvalidExpression, magnitude)
			}
			return offsets, nil
		case tokenSign:
			sign = tok.sign
		case tokenNumber:
			magnitude = tok.num
		case tokenUnit:
			if sign == SignUnset {
				return nil, fmt.Errorf("%w: unit %s at position %d has no sign", ErrInvalidOperator, tok.unit, tok.pos)
			}
			if magnitude < 0 {
				return nil, fmt.Errorf("%w: unit %s at position %d has no magnitude", ErrInvalidExpression, tok.unit, tok.pos)
			}

			if int64(magnitude) > maxMagnitude[tok.unit] {
				return nil, fmt.Errorf("%w: offset %d%s at position %d is out of range (max %d)",
					ErrInvalidExpression, magnitude, tok.unit, tok.pos, maxMagnitude[tok.unit])
			}

			offsets = append(offsets, Offset{Sign: sign, Magnitude: magnitude, Unit: tok.unit})
			sign, magnitude = SignUnset, -1
		}
	}
}

// applyAdjustment applies every offset of adjustment to base, left to right.
func applyAdjustment(base time.Time, adjustment string) (time.Time, error) {
	offsets, err := ParseAdjustment(adjustment)
	if err != nil {
		return time.Time{}, err
	}

	t := base
	for _, o := range offsets {
		t = o.Apply(t)

		zlog.Debug().
			Stringer("sign", o.Sign).
			Int("magnitude", o.Magnitude).
			Stringer("unit", o.Unit).
			Time("result", t).
			Msg("applied offset")
	}

	return t, nil
}
