package dto

// AttendanceRequest is the body of POST /attendance.
type AttendanceRequest struct {
	MemberID int64  `json:"member_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// ContributionRequest is the body of POST /contributions.
type ContributionRequest struct {
	MemberID int64  `json:"member_id"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
}
