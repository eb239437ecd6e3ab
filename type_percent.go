package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a figure expressed in per cent, as published in forecast tables.
type Percent float64

// Round returns p rounded half away from zero to the two decimals forecasts are
// published with.
func (p Percent) Round() Percent {
	return Percent(decimal.NewFromFloat(float64(p)).Round(2).InexactFloat64())
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString formats a change with an explicit sign, or "-" for no change.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
