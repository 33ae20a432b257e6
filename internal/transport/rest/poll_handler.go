package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/transport/rest/middleware"
)

type PollHandler struct {
	svc domain.PollService
}

func NewPollHandler(svc domain.PollService) *PollHandler {
	return &PollHandler{svc: svc}
}

func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	opts := domain.PollListOptions{
		Search:     r.URL.Query().Get("search"),
		IsPaginate: true,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = limit
	}

	if r.URL.Query().Get("mine") == "true" {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		opts.OwnerID = &userID
	}

	polls, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data: map[string]any{
			"polls": polls,
			"total": total,
		},
	})
}

func (h *PollHandler) Show(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	poll, err := h.svc.Get(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			JSONError(w, http.StatusNotFound, "Poll not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: poll})
}

func (h *PollHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.PollSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	poll, err := h.svc.Create(r.Context(), req, userID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "Poll created successfully",
		Data:    poll,
	})
}

func (h *PollHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), pollID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			JSONError(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, domain.ErrNotPollOwner):
			JSONError(w, http.StatusForbidden, "You can only delete your own polls")
		default:
			JSONError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "Poll deleted successfully"})
}

func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	pollID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.OptionID == uuid.Nil {
		JSONValidationError(w, map[string]string{"option_id": "The OptionID field is required."})
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	results, err := h.svc.Vote(r.Context(), pollID, req.OptionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			JSONError(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, domain.ErrOptionNotFound):
			JSONError(w, http.StatusNotFound, "Option not found")
		case errors.Is(err, domain.ErrPollClosed):
			JSONError(w, http.StatusConflict, "This poll is closed")
		case errors.Is(err, domain.ErrAlreadyVoted):
			JSONError(w, http.StatusConflict, "You have already voted on this poll")
		default:
			JSONError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "Vote recorded",
		Data:    results,
	})
}

func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	results, err := h.svc.Results(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			JSONError(w, http.StatusNotFound, "Poll not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: results})
}

func (h *PollHandler) Activity(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	var limit int64
	if parsed, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
		limit = parsed
	}

	activity, err := h.svc.Activity(r.Context(), pollID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			JSONError(w, http.StatusNotFound, "Poll not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: activity})
}
