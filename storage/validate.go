package storage

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/portal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report wire names so messages match the JSON the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(model.Date).String()
	}, model.Date{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(decimal.Decimal).InexactFloat64()
	}, decimal.Decimal{})

	v.RegisterStructValidation(employeeRules, model.Employee{})
	v.RegisterStructValidation(attendanceRules, model.Attendance{})
	v.RegisterStructValidation(leaveRequestRules, model.LeaveRequest{})
	v.RegisterStructValidation(employeeTrainingRules, model.EmployeeTraining{})
	v.RegisterStructValidation(jobPostingRules, model.JobPosting{})
	return v
}

// Validate checks an entity against its struct tags and cross-field rules.
// Failures are returned as *ValidationError.
func Validate(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Entity: entity, Problems: problems}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "required_with":
		return fmt.Sprintf("%s requires %s", fe.Field(), fe.Param())
	case "notbefore":
		return fmt.Sprintf("%s must not be before %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

// =============================================================================
// CROSS-FIELD RULES
// =============================================================================

func employeeRules(sl validator.StructLevel) {
	e := sl.Current().Interface().(model.Employee)
	if e.TerminationDate != nil && !e.TerminationDate.IsZero() && e.TerminationDate.Before(e.HireDate) {
		sl.ReportError(e.TerminationDate, "terminationDate", "TerminationDate", "notbefore", "hireDate")
	}
}

func attendanceRules(sl validator.StructLevel) {
	a := sl.Current().Interface().(model.Attendance)
	if a.ClockOut != nil && a.ClockIn == nil {
		sl.ReportError(a.ClockOut, "clockOut", "ClockOut", "required_with", "clockIn")
	}
	if a.ClockIn != nil && a.ClockOut != nil && a.ClockOut.Before(*a.ClockIn) {
		sl.ReportError(a.ClockOut, "clockOut", "ClockOut", "notbefore", "clockIn")
	}
}

func leaveRequestRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(model.LeaveRequest)
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		sl.ReportError(r.EndDate, "endDate", "EndDate", "notbefore", "startDate")
	}
}

func employeeTrainingRules(sl validator.StructLevel) {
	t := sl.Current().Interface().(model.EmployeeTraining)
	if t.CompletionDate != nil && !t.CompletionDate.IsZero() && t.CompletionDate.Before(t.EnrollmentDate) {
		sl.ReportError(t.CompletionDate, "completionDate", "CompletionDate", "notbefore", "enrollmentDate")
	}
}

func jobPostingRules(sl validator.StructLevel) {
	j := sl.Current().Interface().(model.JobPosting)
	if j.ClosingDate != nil && !j.ClosingDate.IsZero() && j.ClosingDate.Before(j.PostedDate) {
		sl.ReportError(j.ClosingDate, "closingDate", "ClosingDate", "notbefore", "postedDate")
	}
}
