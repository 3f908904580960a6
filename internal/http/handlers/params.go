package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hongminglow/chama-backend/internal/models"
)

var amountPattern = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

func memberIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("member_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid member_id %q", raw)
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return d, nil
}

// validAmount accepts positive decimals with up to two fractional digits.
func validAmount(raw string) bool {
	if !amountPattern.MatchString(raw) {
		return false
	}
	return strings.Trim(raw, "0.") != ""
}
