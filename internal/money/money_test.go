package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		value    string
		currency string
	}{
		{name: "dollar symbol", raw: "$30", value: "30", currency: "USD"},
		{name: "euro keyword", raw: "25.50 eur", value: "25.50", currency: "EUR"},
		{name: "yen keyword", raw: "500 yen", value: "500", currency: "JPY"},
		{name: "dollars word", raw: "30 dollars", value: "30", currency: "USD"},
		{name: "pound symbol", raw: "£12.99", value: "12.99", currency: "GBP"},
		{name: "rupee symbol", raw: "₹100", value: "100", currency: "INR"},
		{name: "yen symbol", raw: "¥1200", value: "1200", currency: "JPY"},
		{name: "cad keyword", raw: "100 cad", value: "100", currency: "CAD"},
		{name: "aud keyword", raw: "45.25 aud", value: "45.25", currency: "AUD"},
		{name: "bare number", raw: "30", value: "30", currency: ""},
		{name: "padded number", raw: "  42.00  ", value: "42.00", currency: ""},
		{name: "keyword before number", raw: "euro 50", value: "50", currency: "EUR"},
		{name: "uppercase keyword", raw: "99 USD", value: "99", currency: "USD"},
		{name: "negative parses", raw: "-5", value: "-5", currency: ""},
		{name: "sub-cent precision parses", raw: "30.555", value: "30.555", currency: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			want := decimal.RequireFromString(tt.value)
			assert.True(t, got.Value.Equal(want), "value = %s, want %s", got.Value, want)
			assert.Equal(t, tt.currency, got.Currency)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{"abc", "", "   ", "1,000", "$", "30 bucks"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			var invalid *InvalidAmountError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, raw, invalid.Raw)
		})
	}
}

func TestInvalidAmountErrorMessage(t *testing.T) {
	_, err := Parse("abc")
	require.Error(t, err)
	assert.Equal(t, "Invalid amount: abc", err.Error())

	var invalid *InvalidAmountError
	assert.True(t, errors.As(err, &invalid))
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "$30", want: "USD"},
		{raw: "30 euros", want: "EUR"},
		{raw: "£5", want: "GBP"},
		{raw: "500 JPY", want: "JPY"},
		{raw: "₹100", want: "INR"},
		{raw: "12 cad", want: "CAD"},
		{raw: "12 aud", want: "AUD"},
		{raw: "30", want: ""},
		{raw: "thirty", want: ""},
		// Table order decides when multiple markers appear.
		{raw: "€30 dollars", want: "USD"},
		{raw: "30 eur gbp", want: "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCurrency(tt.raw))
		})
	}
}
