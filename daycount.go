package finmath

import "time"

// Day count conventions.
const (
	DayCount30_360       = 1
	DayCountActual365    = 2
	DayCountActualActual = 3
	DayCountActual360    = 4
)

// YearFraction returns the fraction of a year between two dates under the
// given convention. Unknown conventions default to 30/360.
func YearFraction(convention int, startDate, endDate time.Time) float64 {
	switch convention {
	case DayCount30_360:
		return thirty360(startDate, endDate)
	case DayCountActual365:
		return actual365(startDate, endDate)
	case DayCountActualActual:
		return actualActual(startDate, endDate)
	case DayCountActual360:
		return actual360(startDate, endDate)
	default:
		return thirty360(startDate, endDate)
	}
}

func actual360(startDate, endDate time.Time) float64 {
	days := endDate.Sub(startDate).Hours() / 24
	return days / 360.0
}

func actual365(startDate, endDate time.Time) float64 {
	days := endDate.Sub(startDate).Hours() / 24
	return days / 365.0
}

// actualActual prorates periods that cross year boundaries year by year over
// the actual length of each year.
func actualActual(startDate, endDate time.Time) float64 {
	days := endDate.Sub(startDate).Hours() / 24

	if days < 365 {
		return days / daysInYear(startDate)
	}

	totalYears := 0.0
	current := startDate
	for current.Before(endDate) {
		year := current.Year()
		yearEnd := time.Date(year+1, 1, 1, 0, 0, 0, 0, current.Location())

		periodEnd := yearEnd
		if yearEnd.After(endDate) {
			periodEnd = endDate
		}

		periodDays := periodEnd.Sub(current).Hours() / 24
		totalYears += periodDays / daysInYear(current)
		current = yearEnd
	}
	return totalYears
}

// thirty360 applies the simplified 30/360 rules:
// if D1 = 31 then D1 = 30; if D2 = 31 and D1 is 30 or 31 then D2 = 30.
func thirty360(startDate, endDate time.Time) float64 {
	d1 := startDate.Day()
	m1 := int(startDate.Month())
	y1 := startDate.Year()

	d2 := endDate.Day()
	m2 := int(endDate.Month())
	y2 := endDate.Year()

	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && (d1 == 30 || d1 == 31) {
		d2 = 30
	}

	days := float64((y2-y1)*360 + (m2-m1)*30 + (d2 - d1))
	return days / 360.0
}

func daysInYear(date time.Time) float64 {
	year := date.Year()
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, date.Location())
	yearEnd := time.Date(year+1, 1, 1, 0, 0, 0, 0, date.Location())
	return yearEnd.Sub(yearStart).Hours() / 24
}

// AccruedInterest returns the interest accrued over accDays days under the
// given convention, scaled by the residual face and an adjustment ratio.
func AccruedInterest(convention int, accDays, coupon, residual, ratio float64) float64 {
	var yearFraction float64
	switch convention {
	case DayCountActual365, DayCountActualActual:
		// Actual/Actual is approximated with a 365-day year here; exact
		// proration needs the full period dates and uses YearFraction.
		yearFraction = accDays / 365.0
	default:
		yearFraction = accDays / 360.0
	}
	return yearFraction * coupon * residual * ratio
}
