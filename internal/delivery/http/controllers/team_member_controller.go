package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	h "clubcms/internal/delivery/http/helpers"
	"clubcms/internal/domain"
)

// TeamMembersListSuccessResponse is the success response envelope for GET /team-members (200).
type TeamMembersListSuccessResponse struct {
	Data  []*domain.TeamMember `json:"data"`
	Error *h.APIError          `json:"error"`
}

// TeamMemberSuccessResponse is the success response envelope for single-member endpoints.
type TeamMemberSuccessResponse struct {
	Data  *domain.TeamMember `json:"data"`
	Error *h.APIError        `json:"error"`
}

type TeamMemberController struct {
	Logger  *slog.Logger
	Service domain.TeamMemberService
	Files   domain.FileStore
}

func NewTeamMemberController(logger *slog.Logger, svc domain.TeamMemberService, files domain.FileStore) *TeamMemberController {
	return &TeamMemberController{
		Logger:  logger,
		Service: svc,
		Files:   files,
	}
}

// List godoc
// @Summary List team members
// @Description Returns all team members ordered by display order. Public.
// @Tags team-members
// @Produce json
// @Success 200 {object} controllers.TeamMembersListSuccessResponse "data is an array of team members"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /team-members [get]
func (c *TeamMemberController) List(w http.ResponseWriter, r *http.Request) {
	members, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if members == nil {
		members = []*domain.TeamMember{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, members)
}

// GetByID godoc
// @Summary Get a team member by ID
// @Description Returns a single team member. Public.
// @Tags team-members
// @Produce json
// @Param memberID path string true "Team member ID"
// @Success 200 {object} controllers.TeamMemberSuccessResponse "data contains the team member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed id)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /team-members/{memberID} [get]
func (c *TeamMemberController) GetByID(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	member, err := c.Service.GetByID(r.Context(), memberID)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, member)
}

// Create godoc
// @Summary Create a team member
// @Description Creates a team member from a multipart form. The photo may be a `photo` file upload, photoType=url with photoURL, or photoType=import with an imported path; without any of these a placeholder image URL is stored. Admin only.
// @Tags team-members
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Member name"
// @Param position formData string true "Member position"
// @Param academicYear formData string true "Academic year"
// @Param idNumber formData string false "Unique id number"
// @Param displayOrder formData integer false "Display order (defaults to 999)"
// @Param linkedinId formData string false "LinkedIn ID"
// @Param phoneNumber formData string false "Phone number"
// @Param showPhone formData boolean false "Show phone number publicly"
// @Param showTelegram formData boolean false "Show Telegram link publicly"
// @Param telegramLink formData string false "Telegram link"
// @Param photoType formData string false "Photo kind: upload, url or import"
// @Param photoURL formData string false "Photo URL or imported path"
// @Param photo formData file false "Photo image file"
// @Success 201 {object} controllers.TeamMemberSuccessResponse "data contains the created team member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: bad_request (duplicate id number)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /team-members [post]
func (c *TeamMemberController) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := c.decodeMemberForm(w, r)
	if !ok {
		return
	}
	member, err := c.Service.Create(r.Context(), in)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, member)
}

// Update godoc
// @Summary Update a team member
// @Description Replaces a team member's fields from a multipart form. A new photo upload supersedes a previously uploaded photo (the old file is deleted); photoType=url or import without a file replaces an uploaded photo; supplying neither leaves the photo untouched. Omitting displayOrder keeps the previous value. Admin only.
// @Tags team-members
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Team member ID"
// @Success 200 {object} controllers.TeamMemberSuccessResponse "data contains the updated team member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: bad_request (duplicate id number)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /team-members/{memberID} [put]
func (c *TeamMemberController) Update(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	in, ok := c.decodeMemberForm(w, r)
	if !ok {
		return
	}
	member, err := c.Service.Update(r.Context(), memberID, in)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, member)
}

// Delete godoc
// @Summary Delete a team member
// @Description Deletes a team member. An uploaded photo file is removed from disk as well. Admin only.
// @Tags team-members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Team member ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed id)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /team-members/{memberID} [delete]
func (c *TeamMemberController) Delete(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	if err := c.Service.Delete(r.Context(), memberID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeleteStatusResponse{Status: "deleted"})
}

// decodeMemberForm parses the multipart form into a TeamMemberInput, storing an
// uploaded photo file last so decode failures never leave a file behind.
// On failure it writes the error response and returns ok=false.
func (c *TeamMemberController) decodeMemberForm(w http.ResponseWriter, r *http.Request) (domain.TeamMemberInput, bool) {
	var in domain.TeamMemberInput
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return in, false
	}
	in.Name = r.FormValue("name")
	in.IDNumber = strings.TrimSpace(r.FormValue("idNumber"))
	in.Position = r.FormValue("position")
	in.AcademicYear = strings.TrimSpace(r.FormValue("academicYear"))
	in.LinkedinID = strings.TrimSpace(r.FormValue("linkedinId"))
	in.PhoneNumber = strings.TrimSpace(r.FormValue("phoneNumber"))
	in.ShowPhone = parseFormBool(r.FormValue("showPhone"))
	in.ShowTelegram = parseFormBool(r.FormValue("showTelegram"))
	in.TelegramLink = strings.TrimSpace(r.FormValue("telegramLink"))
	in.PhotoType = strings.TrimSpace(r.FormValue("photoType"))
	in.PhotoValue = r.FormValue("photoURL")

	if orderStr := strings.TrimSpace(r.FormValue("displayOrder")); orderStr != "" {
		order, err := strconv.Atoi(orderStr)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "displayOrder must be an integer")
			return in, false
		}
		in.DisplayOrder = &order
	}

	path, ok := saveFormFile(w, r, c.Files, "photo")
	if !ok {
		return in, false
	}
	in.NewUploadPath = path
	return in, true
}

func (c *TeamMemberController) writeMemberError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "malformed team member id")
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "team member not found")
	case errors.Is(err, domain.ErrDuplicateIDNumber):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeBadRequest, "id number already in use")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

func parseFormBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}
