package storage

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/portal/model"
)

// =============================================================================
// DERIVED FIELDS
// =============================================================================

// NetSalary is basic + allowances - deductions.
func NetSalary(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions)
}

var hour = decimal.NewFromInt(int64(time.Hour))

// WorkedHours is the wall-clock delta between clock-in and clock-out in
// hours, rounded to two places. Nil until both ends are known.
func WorkedHours(clockIn, clockOut *time.Time) *decimal.Decimal {
	if clockIn == nil || clockOut == nil {
		return nil
	}
	h := decimal.NewFromInt(int64(clockOut.Sub(*clockIn))).Div(hour).Round(2)
	return &h
}

// DeriveAttendance normalizes the clock times and recomputes TotalHours.
func DeriveAttendance(a *model.Attendance) {
	a.ClockIn = normalizeTimePtr(a.ClockIn)
	a.ClockOut = normalizeTimePtr(a.ClockOut)
	a.TotalHours = WorkedHours(a.ClockIn, a.ClockOut)
}

// DerivePayroll recomputes NetSalary; a client supplied value is discarded.
func DerivePayroll(p *model.Payroll) {
	p.NetSalary = NetSalary(p.BasicSalary, p.Allowances, p.Deductions)
}

func DeriveLeaveRequest(r *model.LeaveRequest) {
	r.ApprovedAt = normalizeTimePtr(r.ApprovedAt)
	if r.DaysRequested == 0 && !r.StartDate.IsZero() && !r.EndDate.IsZero() && !r.EndDate.Before(r.StartDate) {
		r.DaysRequested = r.StartDate.DaysUntil(r.EndDate)
	}
}
