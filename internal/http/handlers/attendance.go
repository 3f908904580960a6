package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/chama-backend/internal/http/respond"
	"github.com/hongminglow/chama-backend/internal/logging"
	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/models/dto"
	"github.com/hongminglow/chama-backend/internal/storage"
)

// AttendanceHandler records and lists meeting attendance.
type AttendanceHandler struct {
	store  storage.AttendanceStore
	logger logging.Logger
}

func NewAttendanceHandler(store storage.AttendanceStore, logger logging.Logger) *AttendanceHandler {
	return &AttendanceHandler{store: store, logger: logger}
}

// HandleRecord serves POST /attendance.
func (h *AttendanceHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendanceRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if req.MemberID <= 0 || strings.TrimSpace(req.Date) == "" || status == "" {
		respond.Error(w, http.StatusBadRequest, "Missing required fields: member_id, date, or status")
		return
	}
	if !models.IsValidAttendanceStatus(status) {
		respond.Error(w, http.StatusBadRequest, "status must be one of present, absent, late")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.store.CreateAttendance(r.Context(), models.Attendance{MemberID: req.MemberID, Date: date, Status: status})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			respond.Error(w, http.StatusBadRequest, "Member not found")
			return
		}
		h.logger.Error(r.Context(), "record attendance failed", "member_id", req.MemberID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to record attendance")
		return
	}
	respond.JSON(w, http.StatusCreated, "Attendance recorded successfully", rec)
}

// HandleList serves GET /attendance/{member_id}.
func (h *AttendanceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDParam(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.ListAttendance(r.Context(), memberID)
	if err != nil {
		h.logger.Error(r.Context(), "list attendance failed", "member_id", memberID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	if len(records) == 0 {
		respond.Error(w, http.StatusNotFound, "No attendance records found for this member")
		return
	}
	respond.JSON(w, http.StatusOK, "Attendance records retrieved successfully", records)
}
