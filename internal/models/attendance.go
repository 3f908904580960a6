package models

import "time"

// Attendance statuses accepted when recording a meeting.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Attendance is one member's presence record for a meeting date.
type Attendance struct {
	ID       int64     `json:"id"`
	MemberID int64     `json:"member_id"`
	Date     time.Time `json:"-"`
	Status   string    `json:"status"`
}

// IsValidAttendanceStatus reports whether status is one of the accepted values.
func IsValidAttendanceStatus(status string) bool {
	switch status {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}
