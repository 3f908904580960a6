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

// ContributionHandler records and lists member contributions.
type ContributionHandler struct {
	store  storage.ContributionStore
	logger logging.Logger
}

func NewContributionHandler(store storage.ContributionStore, logger logging.Logger) *ContributionHandler {
	return &ContributionHandler{store: store, logger: logger}
}

// HandleRecord serves POST /contributions.
func (h *ContributionHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.ContributionRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	amount := strings.TrimSpace(req.Amount)
	if req.MemberID <= 0 || amount == "" || strings.TrimSpace(req.Date) == "" {
		respond.Error(w, http.StatusBadRequest, "Missing required fields: member_id, amount, or date")
		return
	}
	if !validAmount(amount) {
		respond.Error(w, http.StatusBadRequest, "amount must be a positive decimal with at most two decimal places")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.store.CreateContribution(r.Context(), models.Contribution{MemberID: req.MemberID, Amount: amount, Date: date})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			respond.Error(w, http.StatusBadRequest, "Member not found")
			return
		}
		h.logger.Error(r.Context(), "record contribution failed", "member_id", req.MemberID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to record contribution")
		return
	}
	respond.JSON(w, http.StatusCreated, "Contribution recorded successfully", rec)
}

// HandleList serves GET /contributions/{member_id}.
func (h *ContributionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDParam(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.ListContributions(r.Context(), memberID)
	if err != nil {
		h.logger.Error(r.Context(), "list contributions failed", "member_id", memberID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load contributions")
		return
	}
	if len(records) == 0 {
		respond.Error(w, http.StatusNotFound, "No contributions found for this member")
		return
	}
	respond.JSON(w, http.StatusOK, "Contributions retrieved successfully", records)
}
