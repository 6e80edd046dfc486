package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount in a named currency, formatted through
// go-money so the symbol and separators follow the currency.
type Money struct {
	value *money.Money
	raw   decimal.Decimal
	code  string
}

// NewMoney converts amount to minor units of currency. Unknown codes keep
// the raw decimal and print it with the code as a suffix.
func NewMoney(amount decimal.Decimal, currency string) Money {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{raw: amount, code: currency}
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return Money{value: money.New(minor, cur.Code), raw: amount, code: cur.Code}
}

func (m Money) String() string {
	if m.value == nil {
		return m.raw.StringFixed(2) + " " + m.code
	}
	return m.value.Display()
}

// SignedString prefixes positive amounts with "+".
func (m Money) SignedString() string {
	if m.value == nil {
		if m.raw.IsPositive() {
			return "+" + m.String()
		}
		return m.String()
	}
	if m.value.IsPositive() {
		return "+" + m.value.Display()
	}
	return m.value.Display()
}
