package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"task_portal/internal/api/middleware"
	"task_portal/internal/app/service"
	"task_portal/internal/common"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Use(authn)
	r.Get("/", h.listSubmissions)
	r.Post("/", h.createSubmission)
	r.With(middleware.AdminOnly).Patch("/{submissionID}", h.reviewSubmission)
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	taskID := r.URL.Query().Get("taskId")
	candidateID := r.URL.Query().Get("candidateId")

	submissions, err := h.submissionService.List(r.Context(), callerRole, callerID, taskID, candidateID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

// createSubmission accepts multipart/form-data: a "task_id" field, an
// optional "content" field and an optional "file" part.
func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	in := service.CreateSubmissionInput{
		TaskID:  r.FormValue("task_id"),
		Content: r.FormValue("content"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		in.File = &service.FileUpload{
			Reader:      file,
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// text-only submission
	default:
		common.RespondWithError(w, http.StatusBadRequest, "Invalid file upload: "+err.Error())
		return
	}

	submission, err := h.submissionService.Create(r.Context(), callerRole, callerID, in)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submission)
}

func (h *SubmissionHandler) reviewSubmission(w http.ResponseWriter, r *http.Request) {
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	var req service.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	submission, err := h.submissionService.Review(r.Context(), callerRole, chi.URLParam(r, "submissionID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
