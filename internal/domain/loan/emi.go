package loan

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyEMI amortizes principal over tenureMonths at annualRatePercent:
//
//	r   = annualRatePercent / 100 / 12
//	EMI = P * r / (1 - (1+r)^-n)
//
// A zero rate degrades to P/n. The result is rounded to cents.
func MonthlyEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 {
		return principal.Round(2)
	}
	p := principal.InexactFloat64()
	r := annualRatePercent.InexactFloat64() / 100 / 12
	n := float64(tenureMonths)
	if r == 0 {
		return decimal.NewFromFloat(p / n).Round(2)
	}
	emi := p * r / (1 - math.Pow(1+r, -n))
	return decimal.NewFromFloat(emi).Round(2)
}
