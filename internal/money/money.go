// Package money parses conversational amount strings ("$30", "25.50 eur",
// "500 yen") into exact decimals with an optional detected currency.
//
// Parsing never goes through floats: the numeric residue is handed to
// shopspring/decimal verbatim, so "25.50" stays exactly 25.50.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a parsed monetary amount. Currency is empty when the input
// carried no recognizable currency marker.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// InvalidAmountError reports input that did not reduce to a decimal
// number after currency tokens were stripped. The message is shown to the
// chat user as-is.
type InvalidAmountError struct {
	Raw string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("Invalid amount: %s", e.Raw)
}

// currencyRule declares one currency's detection and stripping tokens.
//
// Order matters twice: rules run in priority order (first hit wins, so "$"
// beats anything later it co-occurs with), and within a rule keywords are
// listed longest-first so stripping "euros" never leaves a dangling "s".
type currencyRule struct {
	code     string
	symbols  []string
	keywords []string
}

var currencyTable = []currencyRule{
	{code: "USD", symbols: []string{"$"}, keywords: []string{"dollars", "dollar", "usd"}},
	{code: "EUR", symbols: []string{"€"}, keywords: []string{"euros", "euro", "eur"}},
	{code: "GBP", symbols: []string{"£"}, keywords: []string{"pounds", "pound", "gbp"}},
	{code: "JPY", symbols: []string{"¥"}, keywords: []string{"yen", "jpy"}},
	{code: "INR", symbols: []string{"₹"}, keywords: []string{"rupees", "rupee", "inr"}},
	{code: "CAD", keywords: []string{"cad"}},
	{code: "AUD", keywords: []string{"aud"}},
}

// DetectCurrency returns the currency code indicated by a symbol or
// keyword anywhere in the raw string, or "" when none appears. Symbols are
// checked against the raw string, keywords against its lowercase form.
func DetectCurrency(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range currencyTable {
		for _, sym := range rule.symbols {
			if strings.Contains(raw, sym) {
				return rule.code
			}
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.code
			}
		}
	}
	return ""
}

// Parse extracts an exact decimal value and an optional currency from a
// conversational amount string.
//
// Detection runs first, over the un-stripped input. Then every symbol and
// keyword in the table is removed and whatever remains must parse as a
// decimal number; anything else (including thousands separators) is an
// InvalidAmountError. Value constraints are the caller's job: zero,
// negative, and over-precise amounts all parse.
func Parse(raw string) (Amount, error) {
	currency := DetectCurrency(raw)

	cleaned := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range currencyTable {
		for _, sym := range rule.symbols {
			cleaned = strings.ReplaceAll(cleaned, sym, "")
		}
		for _, kw := range rule.keywords {
			cleaned = strings.ReplaceAll(cleaned, kw, "")
		}
	}
	cleaned = strings.TrimSpace(cleaned)

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, &InvalidAmountError{Raw: raw}
	}
	return Amount{Value: value, Currency: currency}, nil
}
