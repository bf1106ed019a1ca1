package enums

import "fmt"

// AttendanceKind records how a worker's day was logged for payroll.
type AttendanceKind string

const (
	AttendanceFullDay     AttendanceKind = "full_day"
	AttendanceDayAndNight AttendanceKind = "day_and_night"
	AttendanceHalfDay     AttendanceKind = "half_day"
	AttendanceAbsence     AttendanceKind = "absence"
)

var validAttendanceKinds = []AttendanceKind{
	AttendanceFullDay,
	AttendanceDayAndNight,
	AttendanceHalfDay,
	AttendanceAbsence,
}

// String implements fmt.Stringer.
func (k AttendanceKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known AttendanceKind.
func (k AttendanceKind) IsValid() bool {
	for _, candidate := range validAttendanceKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseAttendanceKind converts raw input into an AttendanceKind.
func ParseAttendanceKind(value string) (AttendanceKind, error) {
	for _, candidate := range validAttendanceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attendance kind %q", value)
}
