package handler

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"task_portal/internal/api/middleware"
	"task_portal/internal/app/service"
	"task_portal/internal/common"

	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(as *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

func (h *AttendanceHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Use(authn)
	r.Post("/", h.recordAttendance)
	r.With(middleware.AdminOnly).Get("/", h.queryAttendance)
}

// recordAttendance accepts multipart/form-data: a "photo" part plus
// "latitude", "longitude", "device_details" and optional "task_id" fields.
// The caller's IP is taken from the request, not the form.
func (h *AttendanceHandler) recordAttendance(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	in := service.RecordAttendanceInput{
		IPAddress:     clientIP(r),
		DeviceDetails: r.FormValue("device_details"),
	}
	if taskID := r.FormValue("task_id"); taskID != "" {
		in.TaskID = &taskID
	}
	if lat := r.FormValue("latitude"); lat != "" {
		v, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid latitude: "+err.Error())
			return
		}
		in.Latitude = &v
	}
	if lng := r.FormValue("longitude"); lng != "" {
		v, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid longitude: "+err.Error())
			return
		}
		in.Longitude = &v
	}

	photo, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer photo.Close()
		in.Photo = &service.FileUpload{
			Reader:      photo,
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// service rejects the record below
	default:
		common.RespondWithError(w, http.StatusBadRequest, "Invalid photo upload: "+err.Error())
		return
	}

	record, err := h.attendanceService.Record(r.Context(), callerID, in)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, record)
}

// clientIP returns the caller's address without the ephemeral port.
// chi's RealIP middleware already rewrote RemoteAddr when a forwarding
// header was present; direct connections still carry host:port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *AttendanceHandler) queryAttendance(w http.ResponseWriter, r *http.Request) {
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())
	userID := r.URL.Query().Get("userId")
	taskID := r.URL.Query().Get("taskId")

	records, err := h.attendanceService.Query(r.Context(), callerRole, userID, taskID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, records)
}
