package models

import "time"

// Contribution is a member's payment into the group. Amount is a decimal
// string with at most two fractional digits, matching NUMERIC(10,2).
type Contribution struct {
	ID       int64     `json:"id"`
	MemberID int64     `json:"member_id"`
	Amount   string    `json:"amount"`
	Date     time.Time `json:"-"`
}
