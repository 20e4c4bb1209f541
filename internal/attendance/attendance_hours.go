package attendance

import (
	"time"

	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

var standardWorkHours = decimal.NewFromInt(8)

// Clock-ins after 09:15 are late.
const (
	lateHour   = 9
	lateMinute = 15
)

// StatusFor classifies a clock-in time.
func StatusFor(clockIn time.Time) string {
	if clockIn.Hour() > lateHour || (clockIn.Hour() == lateHour && clockIn.Minute() > lateMinute) {
		return StatusLate
	}
	return StatusPresent
}

// Hours returns the worked hours between in and out and the share beyond a
// standard eight-hour day, both rounded to two places.
func Hours(in, out time.Time) (worked, overtime decimal.Decimal) {
	if !out.After(in) {
		return decimal.Zero, decimal.Zero
	}
	worked = money.Round2(decimal.NewFromFloat(out.Sub(in).Hours()))
	overtime = worked.Sub(standardWorkHours)
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}
	return worked, overtime
}
