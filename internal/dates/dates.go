// Package dates turns conversational date strings ("yesterday", "March 5",
// "12/31/2025") into UTC timestamps for expense records.
package dates

import (
	"strings"
	"time"
	"unicode"
)

// layouts are tried in order against the normalized input. Yearless
// layouts borrow the current UTC year.
var layouts = []struct {
	format  string
	hasYear bool
}{
	{format: "2006-1-2", hasYear: true},
	{format: "1/2/2006", hasYear: true},
	{format: "2/1/2006", hasYear: true},
	{format: "January 2, 2006", hasYear: true},
	{format: "Jan 2, 2006", hasYear: true},
	{format: "January 2 2006", hasYear: true},
	{format: "Jan 2 2006", hasYear: true},
	{format: "2 January 2006", hasYear: true},
	{format: "2 Jan 2006", hasYear: true},
	{format: "January 2", hasYear: false},
	{format: "Jan 2", hasYear: false},
}

// Parser resolves relative dates against an injectable clock so tests can
// pin "today".
type Parser struct {
	now func() time.Time
}

// New returns a Parser that uses the system clock.
func New() *Parser {
	return NewAt(time.Now)
}

// NewAt returns a Parser that reads the current time from now.
func NewAt(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// Parse interprets a conversational date string. The second return value
// reports whether the input was understood; when it is false, the current
// time is returned so callers can fall back to "today" and tell the user.
//
// Accepted forms: empty and "today"/"now" (current instant), "yesterday"
// (start of the previous UTC day), plus the numeric and month-name layouts
// above. All results are in UTC; parsed calendar dates are at midnight.
func (p *Parser) Parse(raw string) (time.Time, bool) {
	now := p.now().UTC()

	trimmed := strings.TrimSpace(strings.ToLower(raw))
	switch trimmed {
	case "", "today", "now":
		return now, true
	case "yesterday":
		prev := now.AddDate(0, 0, -1)
		return time.Date(prev.Year(), prev.Month(), prev.Day(), 0, 0, 0, 0, time.UTC), true
	}

	normalized := titleWords(strings.Join(strings.Fields(trimmed), " "))
	for _, l := range layouts {
		parsed, err := time.Parse(l.format, normalized)
		if err != nil {
			continue
		}
		year := parsed.Year()
		if !l.hasYear {
			year = now.Year()
		}
		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return now, false
}

// titleWords capitalizes the first letter of each word. time.Parse matches
// month names case-sensitively, so "march 5" must become "March 5" first.
func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
