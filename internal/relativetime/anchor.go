package relativetime

import (
	"fmt"
	"strings"
	"time"
)

// Anchor identifies the base point an expression is resolved from.
type Anchor int

const (
	CurrentYear Anchor = iota
	CurrentMonth
	CurrentWeek
	CurrentDay
	CurrentHour
	CurrentMinute
	CurrentPosition
	Explicit
)

// keywordAnchors lists the reserved keywords in matching order.
var keywordAnchors = []Anchor{
	CurrentYear,
	CurrentMonth,
	CurrentWeek,
	CurrentDay,
	CurrentHour,
	CurrentMinute,
	CurrentPosition,
}

var anchorKeywords = map[Anchor]string{
	CurrentYear:     "$CURRENTYEAR",
	CurrentMonth:    "$CURRENTMONTH",
	CurrentWeek:     "$CURRENTWEEK",
	CurrentDay:      "$CURRENTDAY",
	CurrentHour:     "$CURRENTHOUR",
	CurrentMinute:   "$CURRENTMINUTE",
	CurrentPosition: "$NOW",
}

// Keyword returns the reserved keyword of a, or "" for Explicit.
func (a Anchor) Keyword() string {
	return anchorKeywords[a]
}

func (a Anchor) String() string {
	if a == Explicit {
		return "explicit"
	}
	if kw, ok := anchorKeywords[a]; ok {
		return kw
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// matchKeyword returns the first keyword anchor that prefixes upper.
func matchKeyword(upper string) (Anchor, bool) {
	for _, a := range keywordAnchors {
		if strings.HasPrefix(upper, anchorKeywords[a]) {
			return a, true
		}
	}
	return Explicit, false
}

type truncateStep func(time.Time) time.Time

func resetField(f Field, v int) truncateStep {
	return func(t time.Time) time.Time {
		return setField(t, f, v)
	}
}

// startOfWeek moves t to the Monday of the week containing it. Weeks are
// numbered Sunday first, so a Sunday is first pushed back a week.
func startOfWeek(t time.Time) time.Time {
	if t.Weekday() == time.Sunday {
		t = addField(t, FieldDay, -7)
	}
	return addField(t, FieldDay, int(time.Monday-t.Weekday()))
}

var (
	resetMonth  = resetField(FieldMonth, int(time.January))
	resetDay    = resetField(FieldDay, 1)
	resetHour   = resetField(FieldHour, 0)
	resetMinute = resetField(FieldMinute, 0)
	resetSecond = resetField(FieldSecond, 0)
	resetMilli  = resetField(FieldMillisecond, 0)
)

// truncation holds the ordered steps each keyword applies to the clock
// reading. Coarser anchors include every step of the finer ones.
var truncation = map[Anchor][]truncateStep{
	CurrentYear:   {resetMonth, resetDay, resetHour, resetMinute, resetSecond, resetMilli},
	CurrentMonth:  {resetDay, resetHour, resetMinute, resetSecond, resetMilli},
	CurrentWeek:   {startOfWeek, resetHour, resetMinute, resetSecond, resetMilli},
	CurrentDay:    {resetHour, resetMinute, resetSecond, resetMilli},
	CurrentHour:   {resetMinute, resetSecond, resetMilli},
	CurrentMinute: {resetSecond, resetMilli},
}

// truncate applies the truncation ladder of a to t.
func truncate(a Anchor, t time.Time) time.Time {
	for _, step := range truncation[a] {
		t = step(t)
	}
	return t
}
