package order

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "LKR"

var errBadTotal = errors.New("total must look like \"LKR 12,345\"")

// FormatTotal renders the display string shown to customers, e.g.
// "LKR 12,345" or "LKR 1,250.50".
func FormatTotal(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}

	places := int32(0)
	if !amount.Equal(amount.Truncate(0)) {
		places = 2
	}
	s := amount.StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return currency + " " + sign + b.String() + frac
}

// ParseTotal reads a display total back into an amount and currency. A
// missing currency code yields DefaultCurrency.
func ParseTotal(s string) (decimal.Decimal, string, error) {
	s = strings.TrimSpace(s)

	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if i < 0 {
		return decimal.Zero, "", errBadTotal
	}
	currency := strings.ToUpper(s[:i])
	if currency == "" {
		currency = DefaultCurrency
	}

	num := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimLeft(s[i:], ". "))
	amount, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, "", errBadTotal
	}
	return amount, currency, nil
}
