package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/auth"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// maxProfileUpload bounds the multipart form held in memory while parsing.
const maxProfileUpload = 10 << 20

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Register handles POST /api/user/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Warn("Registration failed")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, tokenResponse{Success: true, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/user/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Warn("Login failed")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, tokenResponse{Success: true, Token: token})
}

// AdminLogin handles POST /api/user/admin.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	token, err := h.service.AdminLogin(req.Email, req.Password)
	if err != nil {
		h.logger.WithField("email", req.Email).Warn("Admin login failed")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, tokenResponse{Success: true, Token: token})
}

type profileResponse struct {
	Success bool            `json:"success"`
	User    *models.Profile `json:"user"`
}

// GetProfile handles GET /api/user/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load profile")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, profileResponse{Success: true, User: profile})
}

type updateProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *models.Profile `json:"user"`
}

// UpdateProfile handles POST /api/user/update-profile. The body is multipart
// form data so an avatar image can ride along with the text fields.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxProfileUpload); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid form data"))
		return
	}

	in := UpdateProfileInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		in.Avatar = file
		in.AvatarName = header.Filename
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		h.logger.WithError(err).Warn("Profile update failed")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, updateProfileResponse{Success: true, Message: "Profile Updated", User: profile})
}
