package models

import "encoding/json"

// MarshalJSON renders Date as YYYY-MM-DD.
func (a Attendance) MarshalJSON() ([]byte, error) {
	type alias Attendance
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(a), Date: a.Date.Format(DateLayout)})
}

// MarshalJSON renders Date as YYYY-MM-DD.
func (c Contribution) MarshalJSON() ([]byte, error) {
	type alias Contribution
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(c), Date: c.Date.Format(DateLayout)})
}
