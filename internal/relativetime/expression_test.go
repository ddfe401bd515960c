package relativetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		name           string
		input          string
		wantAnchor     Anchor
		wantAdjustment string
		wantLiteral    time.Time
		wantErr        error
		errContains    string
	}{
		{
			name:           "now with adjustment",
			input:          "$NOW + 1M",
			wantAnchor:     CurrentPosition,
			wantAdjustment: " + 1M",
		},
		{
			name:           "keyword mixed case and trimmed",
			input:          "  $CurrentYear+13y ",
			wantAnchor:     CurrentYear,
			wantAdjustment: "+13Y",
		},
		{
			name:       "keyword without adjustment",
			input:      "$currentminute",
			wantAnchor: CurrentMinute,
		},
		{
			name:           "week",
			input:          "$CURRENTWEEK -1W",
			wantAnchor:     CurrentWeek,
			wantAdjustment: " -1W",
		},
		{
			name:           "literal with adjustment",
			input:          "2018-07-28 03:24:23  +1y +1m +4d +9h -4mi -12s",
			wantAnchor:     Explicit,
			wantLiteral:    date(2018, time.July, 28, 3, 24, 23, 0),
			wantAdjustment: "  +1Y +1M +4D +9H -4MI -12S",
		},
		{
			name:        "literal only",
			input:       "2019-09-08 00:00:00",
			wantAnchor:  Explicit,
			wantLiteral: date(2019, time.September, 8, 0, 0, 0, 0),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyExpression,
		},
		{
			name:    "blank",
			input:   " \t ",
			wantErr: ErrEmptyExpression,
		},
		{
			name:        "unknown anchor",
			input:       "yesterday",
			wantErr:     ErrInvalidExpression,
			errContains: "'$CurrentYear'",
		},
		{
			name:    "truncated literal",
			input:   "2018-07-28 03:24",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "literal out of range",
			input:   "2018-13-28 03:24:23",
			wantErr: ErrInvalidDateLiteral,
		},
		{
			name:    "literal separated by tab",
			input:   "2018-07-28\t03:24:23 +1d",
			wantErr: ErrInvalidDateLiteral,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.errContains != "" {
					assert.ErrorContains(t, err, tt.errContains)
				}
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAnchor, got.Anchor())
			assert.Equal(t, tt.wantAdjustment, got.Adjustment())

			literal, ok := got.Literal()
			assert.Equal(t, tt.wantAnchor == Explicit, ok)
			if ok {
				assert.Equal(t, tt.wantLiteral, literal)
			}
		})
	}
}

func TestParseDoesNotReadClock(t *testing.T) {
	called := false
	_, err := Parse("$CURRENTDAY +1D", WithClock(func() time.Time {
		called = true
		return time.Now()
	}))
	require.NoError(t, err)
	assert.False(t, called, "clock should only be read when resolving")
}

func TestResolve(t *testing.T) {
	// Wednesday
	fixed := date(2026, time.February, 25, 12, 30, 45, 678)
	withFixedNow(t, fixed)

	for _, tt := range []struct {
		input string
		want  time.Time
	}{
		{"$NOW", fixed},
		{"$NOW + 1M", date(2026, time.March, 25, 12, 30, 45, 678)},
		{"$CURRENTYEAR", date(2026, time.January, 1, 0, 0, 0, 0)},
		{"$CURRENTYEAR + 13Y", date(2039, time.January, 1, 0, 0, 0, 0)},
		{"$CURRENTMONTH", date(2026, time.February, 1, 0, 0, 0, 0)},
		{"$CURRENTMONTH + 1M", date(2026, time.March, 1, 0, 0, 0, 0)},
		{"$CURRENTWEEK", date(2026, time.February, 23, 0, 0, 0, 0)},
		{"$CURRENTWEEK -1W", date(2026, time.February, 16, 0, 0, 0, 0)},
		{"$CURRENTDAY", date(2026, time.February, 25, 0, 0, 0, 0)},
		{"$CURRENTDAY -1d +8h", date(2026, time.February, 24, 8, 0, 0, 0)},
		{"$CURRENTHOUR", date(2026, time.February, 25, 12, 0, 0, 0)},
		{"$CURRENTMINUTE", date(2026, time.February, 25, 12, 30, 0, 0)},
		{"$currentminute -30mi", date(2026, time.February, 25, 12, 0, 0, 0)},
		{"2018-07-28 03:24:23 +1y +1m +4d +9h -4mi -12s", date(2019, time.September, 1, 12, 20, 11, 0)},
		{"2019-09-08 00:00:00", date(2019, time.September, 8, 0, 0, 0, 0)},
	} {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)

			got, err := expr.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOnSunday(t *testing.T) {
	withFixedNow(t, date(2026, time.March, 1, 18, 5, 0, 0))

	got, err := MustParse("$CurrentWeek").Resolve()
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 23, 0, 0, 0, 0), got)
}

func TestResolveRereadsClock(t *testing.T) {
	reading := date(2026, time.February, 25, 12, 30, 45, 0)
	expr, err := Parse("$NOW +1S", WithClock(func() time.Time {
		reading = reading.Add(time.Minute)
		return reading
	}))
	require.NoError(t, err)

	first, err := expr.Resolve()
	require.NoError(t, err)
	second, err := expr.Resolve()
	require.NoError(t, err)

	assert.Equal(t, date(2026, time.February, 25, 12, 31, 46, 0), first)
	assert.Equal(t, date(2026, time.February, 25, 12, 32, 46, 0), second)
}

func TestResolveNowIsCurrent(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)

	got, err := MustParse("$now").Resolve()
	require.NoError(t, err)

	assert.WithinDuration(t, before, got, time.Second)
	assert.False(t, got.Before(before))
}

func TestResolveErrors(t *testing.T) {
	for _, tt := range []struct {
		input   string
		wantErr error
	}{
		{"$NOW 1Y", ErrInvalidOperator},
		{"$NOW +1", ErrInvalidExpression},
		{"$NOW +D", ErrInvalidExpression},
		{"2019-09-08 00:00:00 12", ErrInvalidExpression},
	} {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err, "errors in the adjustment surface on Resolve")

			_, err = expr.Resolve()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpressionText(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  string
	}{
		{"$now + 1m", "$NOW + 1M"},
		{" 2018-07-28 03:24:23 +1y", "2018-07-28 03:24:23 +1Y"},
		{"$CurrentWeek", "$CURRENTWEEK"},
	} {
		t.Run(tt.input, func(t *testing.T) {
			expr := MustParse(tt.input)
			assert.Equal(t, tt.want, expr.String())

			text, err := expr.MarshalText()
			require.NoError(t, err)

			var decoded Expression
			require.NoError(t, decoded.UnmarshalText(text))
			assert.Equal(t, expr.String(), decoded.String())
			assert.Equal(t, expr.Anchor(), decoded.Anchor())
		})
	}

	var e Expression
	assert.ErrorIs(t, e.UnmarshalText([]byte("tomorrow")), ErrInvalidExpression)
}
