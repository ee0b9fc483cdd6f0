package mask

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-formstate/pkg/model"
)

const minorUnitsPerMajor = 100

// Money formats integer minor units (cents) as a locale-grouped amount with
// two decimals, e.g. 123456 -> "1.234,56" in pt-BR. The currency symbol is
// left to the caller.
type Money struct {
	printer *message.Printer
	decimal string
}

// NewMoney returns a money mask for tag.
func NewMoney(tag language.Tag) *Money {
	printer := message.NewPrinter(tag)
	return &Money{
		printer: printer,
		decimal: decimalSeparator(printer),
	}
}

// ToDisplay formats raw minor units. Values that are not integer minor units
// are rendered as-is.
func (m *Money) ToDisplay(raw any) string {
	units, ok := minorUnits(raw)
	if !ok {
		return identityDisplay(raw)
	}

	sign := ""
	abs := uint64(units)
	if units < 0 {
		sign = "-"
		abs = uint64(-(units + 1)) + 1
	}

	whole := m.printer.Sprintf("%d", abs/minorUnitsPerMajor)
	cents := abs % minorUnitsPerMajor
	var b strings.Builder
	b.Grow(len(sign) + len(whole) + len(m.decimal) + 2)
	b.WriteString(sign)
	b.WriteString(whole)
	b.WriteString(m.decimal)
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatUint(cents, 10))
	return b.String()
}

// ToRaw keeps only the digits of display and reads them as minor units. Empty
// input yields 0; input too long for int64 saturates at math.MaxInt64.
func (m *Money) ToRaw(display string) any {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, display)
	if digits == "" {
		return int64(0)
	}
	units, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return int64(math.MaxInt64)
	}
	return units
}

func minorUnits(raw any) (int64, bool) {
	if str, ok := raw.(string); ok {
		units, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
		return units, err == nil
	}
	return model.MinorUnits(raw)
}

func decimalSeparator(printer *message.Printer) string {
	sample := printer.Sprintf("%.1f", 1.5)
	sep := strings.TrimFunc(sample, unicode.IsDigit)
	if sep == "" {
		return ","
	}
	return sep
}
