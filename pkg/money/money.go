package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

// String returns the currency code.
func (c Currency) String() string { return c.code }

// INR is the settlement currency of every loan the engine prices.
var INR = MustCurrency("INR")

// PresentationPlaces is the number of decimal places amounts are rounded to
// when they leave the engine.
const PresentationPlaces = 2

// Money represents an immutable monetary amount with currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Rupees creates an INR Money value.
func Rupees(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: INR}
}

// NewFromString parses an amount string and currency code into a Money value.
func NewFromString(amount string, currency string) (Money, error) {
	cur, err := NewCurrency(currency)
	if err != nil {
		return Money{}, fmt.Errorf("invalid currency: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	return Money{amount: d, currency: cur}, nil
}

// Zero returns a Money value of zero in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

// Add returns the sum of m and other. Returns an error if the currencies do not match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of m minus other. Returns an error if the currencies do not match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot subtract %s from %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns m multiplied by the given factor. No rounding is applied.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Round returns m rounded half away from zero to PresentationPlaces.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(PresentationPlaces), currency: m.currency}
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the value as "<amount> <currency>" rounded to two places,
// for example "500000.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(PresentationPlaces), m.currency.Code())
}

// Format renders an INR amount with the rupee sign and lakh/crore digit
// grouping, e.g. "₹5,00,000.00". Other currencies fall back to String.
func (m Money) Format() string {
	if m.currency != INR {
		return m.String()
	}
	fixed := m.amount.Abs().StringFixed(PresentationPlaces)
	whole, frac, _ := strings.Cut(fixed, ".")

	sign := ""
	if m.amount.Round(PresentationPlaces).IsNegative() {
		sign = "-"
	}
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian inserts separators after the last three digits and then after
// every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// Words spells the amount out in English for letters, rounded to paise:
// "Rupees five hundred thousand and fifty paise only".
func (m Money) Words() string {
	r := m.amount.Round(PresentationPlaces)
	abs := r.Abs()
	whole := abs.Truncate(0)
	paise := abs.Sub(whole).Shift(PresentationPlaces).IntPart()

	unit := "Rupees"
	if m.currency != INR {
		unit = m.currency.Code()
	}
	words := unit + " " + num2words.Convert(int(whole.IntPart()))
	if paise > 0 {
		words += " and " + num2words.Convert(int(paise)) + " paise"
	}
	if r.IsNegative() {
		words = "Minus " + words
	}
	return words + " only"
}
