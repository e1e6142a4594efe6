package matrix

import (
	"testing"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
	"github.com/stretchr/testify/assert"
)

var testRules = Rules{
	WorkdayStart:  8 * time.Hour,
	Grace:         15 * time.Minute,
	PresentSymbol: "P",
	LateSymbol:    "RT",
	HolidaySymbol: "JF",
	WeekendSymbol: "W",
}

func testLookup() CodeLookup {
	catalog := map[string]code.AttendanceCode{
		"P":  {Symbol: "P", Category: code.CategoryPresent, PaymentImpact: code.PaymentFull},
		"RT": {Symbol: "RT", Category: code.CategoryPresent, PaymentImpact: code.PaymentFull},
		"CA": {Symbol: "CA", Category: code.CategoryLeave, PaymentImpact: code.PaymentFull},
		"JF": {Symbol: "JF", Category: code.CategoryHoliday, PaymentImpact: code.PaymentFull},
		"W":  {Symbol: "W", Category: code.CategoryWeekend, PaymentImpact: code.PaymentNone},
		"PP": {Symbol: "PP", Category: code.CategoryPresent, PaymentImpact: code.PaymentPremium, DefaultPremiumAmount: 500},
	}
	return func(symbol string) (code.AttendanceCode, bool) {
		c, ok := catalog[symbol]
		return c, ok
	}
}

func day(dateStr string, weekend, holiday bool) calendar.Day {
	date, _ := time.Parse("2006-01-02", dateStr)
	return calendar.Day{Date: date.UTC(), Weekday: date.Weekday(), IsWeekend: weekend, IsHoliday: holiday}
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestResolve_ManualBeatsWeekend(t *testing.T) {
	// Leave assigned on a Saturday renders the leave code, not "W".
	d := day("2025-03-08", true, false)
	cell := &attendance.Cell{
		EmployeeID:     "emp-1",
		Date:           d.Date,
		AssignedSymbol: strPtr("CA"),
		LastModified:   time.Now(),
	}

	rc := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, "CA", rc.Symbol)
	assert.Equal(t, matrix.SourceManual, rc.Source)
	assert.Equal(t, code.CategoryLeave, rc.Category)
}

func TestResolve_ManualBeatsEvents(t *testing.T) {
	d := day("2025-03-10", false, false)
	cell := &attendance.Cell{
		EmployeeID:     "emp-1",
		Date:           d.Date,
		CheckIn:        timePtr(d.Date.Add(7 * time.Hour)),
		AssignedSymbol: strPtr("CA"),
	}

	rc := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, "CA", rc.Symbol)
	assert.Equal(t, matrix.SourceManual, rc.Source)
}

func TestResolve_DerivedPresent(t *testing.T) {
	d := day("2025-03-10", false, false)
	cell := &attendance.Cell{
		EmployeeID: "emp-1",
		Date:       d.Date,
		CheckIn:    timePtr(d.Date.Add(8 * time.Hour)), // exactly on time
	}

	rc := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, "P", rc.Symbol)
	assert.Equal(t, matrix.SourceDerived, rc.Source)
	assert.Equal(t, code.CategoryPresent, rc.Category)
}

func TestResolve_DerivedLate(t *testing.T) {
	d := day("2025-03-10", false, false)

	// 08:15 is within grace, 08:16 is late.
	onGrace := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, CheckIn: timePtr(d.Date.Add(8*time.Hour + 15*time.Minute))}
	late := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, CheckIn: timePtr(d.Date.Add(8*time.Hour + 16*time.Minute))}

	assert.Equal(t, "P", Resolve("emp-1", d, onGrace, testLookup(), testRules).Symbol)
	got := Resolve("emp-1", d, late, testLookup(), testRules)
	assert.Equal(t, "RT", got.Symbol)
	// Late still counts toward the present bucket.
	assert.Equal(t, code.CategoryPresent, got.Category)
}

func TestResolve_HolidayBeatsWeekend(t *testing.T) {
	d := day("2025-03-08", true, true)

	rc := Resolve("emp-1", d, nil, testLookup(), testRules)

	assert.Equal(t, "JF", rc.Symbol)
	assert.Equal(t, matrix.SourceHoliday, rc.Source)
}

func TestResolve_WeekendDefault(t *testing.T) {
	d := day("2025-03-08", true, false)

	rc := Resolve("emp-1", d, nil, testLookup(), testRules)

	assert.Equal(t, "W", rc.Symbol)
	assert.Equal(t, matrix.SourceWeekend, rc.Source)
}

func TestResolve_NoDataIsBlankNotAbsent(t *testing.T) {
	d := day("2025-03-10", false, false)

	rc := Resolve("emp-1", d, nil, testLookup(), testRules)

	assert.Equal(t, "", rc.Symbol)
	assert.Equal(t, matrix.SourceNone, rc.Source)
	assert.Equal(t, matrix.TotalUnresolved, rc.TotalsBucket())
}

func TestResolve_CheckOutAloneDerivesNothing(t *testing.T) {
	// A check-out without a check-in is kept as a fact but derives no
	// presence; the calendar defaults still apply.
	d := day("2025-03-10", false, false)
	cell := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, CheckOut: timePtr(d.Date.Add(17 * time.Hour))}

	rc := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, matrix.SourceNone, rc.Source)
}

func TestResolve_DanglingSymbolDegradesToUnknown(t *testing.T) {
	d := day("2025-03-10", false, false)
	cell := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, AssignedSymbol: strPtr("GONE")}

	rc := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, code.UnknownSymbol, rc.Symbol)
	assert.True(t, rc.Unknown)
	assert.Equal(t, matrix.SourceManual, rc.Source)
	assert.Equal(t, code.CategoryOther, rc.Category)
}

func TestResolve_PremiumAmounts(t *testing.T) {
	d := day("2025-03-10", false, false)

	amount := 750.0
	explicit := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, AssignedSymbol: strPtr("PP"), PremiumAmount: &amount}
	assert.Equal(t, 750.0, Resolve("emp-1", d, explicit, testLookup(), testRules).Premium)

	defaulted := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, AssignedSymbol: strPtr("PP")}
	assert.Equal(t, 500.0, Resolve("emp-1", d, defaulted, testLookup(), testRules).Premium)

	// Non-premium codes never carry a premium.
	nonPremium := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, AssignedSymbol: strPtr("CA"), PremiumAmount: &amount}
	assert.Equal(t, 0.0, Resolve("emp-1", d, nonPremium, testLookup(), testRules).Premium)
}

func TestResolve_IsPure(t *testing.T) {
	d := day("2025-03-08", true, true)
	cell := &attendance.Cell{EmployeeID: "emp-1", Date: d.Date, CheckIn: timePtr(d.Date.Add(9 * time.Hour))}

	first := Resolve("emp-1", d, cell, testLookup(), testRules)
	second := Resolve("emp-1", d, cell, testLookup(), testRules)

	assert.Equal(t, first, second)
}
