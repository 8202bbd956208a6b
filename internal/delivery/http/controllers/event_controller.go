package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "clubcms/internal/delivery/http/helpers"
	"clubcms/internal/domain"
)

// maxUploadBytes bounds the in-memory portion of a multipart form.
const maxUploadBytes = 10 << 20

// EventsListSuccessResponse is the success response envelope for GET /events (200).
type EventsListSuccessResponse struct {
	Data  []*domain.Event `json:"data"`
	Error *h.APIError     `json:"error"`
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// DeleteStatusResponse is the data payload for DELETE endpoints (200).
type DeleteStatusResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Files   domain.FileStore
}

func NewEventController(logger *slog.Logger, svc domain.EventService, files domain.FileStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Files:   files,
	}
}

// List godoc
// @Summary List events
// @Description Returns all events, newest first. Public.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventsListSuccessResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns a single event. Public.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed id)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Create godoc
// @Summary Create an event
// @Description Creates an event from a multipart form: name, date, description, speakers (JSON array of {name,id}), academicYear, optional reportLink, optional posterFile upload or posterType=url with posterURL. Without any poster input a placeholder image URL is stored. Admin only.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Event name"
// @Param date formData string true "Event date (RFC 3339 or YYYY-MM-DD)"
// @Param description formData string true "Event description"
// @Param speakers formData string true "Speakers as a JSON array of {name, id}"
// @Param academicYear formData string true "Academic year"
// @Param reportLink formData string false "Report link URL"
// @Param posterType formData string false "Poster kind: upload or url"
// @Param posterURL formData string false "Poster URL when posterType=url"
// @Param posterFile formData file false "Poster image file"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := c.decodeEventForm(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Create(r.Context(), in)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Description Replaces an event's fields from a multipart form. A new posterFile supersedes a previously uploaded poster (the old file is deleted); posterType=url without a file replaces an uploaded poster with the URL; supplying neither leaves the poster untouched. Admin only.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	in, ok := c.decodeEventForm(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Update(r.Context(), eventID, in)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event. An uploaded poster file is removed from disk as well. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed id)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeleteStatusResponse{Status: "deleted"})
}

// decodeEventForm parses the multipart form into an EventInput, storing an
// uploaded poster file last so decode failures never leave a file behind.
// On failure it writes the error response and returns ok=false.
func (c *EventController) decodeEventForm(w http.ResponseWriter, r *http.Request) (domain.EventInput, bool) {
	var in domain.EventInput
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return in, false
	}
	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.ReportLink = r.FormValue("reportLink")
	in.AcademicYear = strings.TrimSpace(r.FormValue("academicYear"))
	in.PosterType = strings.TrimSpace(r.FormValue("posterType"))
	in.PosterURL = r.FormValue("posterURL")

	if dateStr := strings.TrimSpace(r.FormValue("date")); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
			return in, false
		}
		in.Date = date
	}
	if speakersJSON := strings.TrimSpace(r.FormValue("speakers")); speakersJSON != "" {
		if err := json.Unmarshal([]byte(speakersJSON), &in.Speakers); err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "speakers must be a JSON array of {name, id}")
			return in, false
		}
	}

	path, ok := saveFormFile(w, r, c.Files, "posterFile")
	if !ok {
		return in, false
	}
	in.NewUploadPath = path
	return in, true
}

func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "malformed event id")
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// saveFormFile stores the named multipart file via the file store and returns
// its public path, or "" when the field is absent. On failure it writes the
// error response and returns ok=false.
func saveFormFile(w http.ResponseWriter, r *http.Request, files domain.FileStore, field string) (string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid "+field+" upload")
		return "", false
	}
	defer file.Close()
	path, err := files.Save(file, header.Filename)
	if err != nil {
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to store uploaded file")
		return "", false
	}
	return path, true
}
