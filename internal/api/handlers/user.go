package handlers

import (
	"context"
	"net/http"

	"github.com/dom/videotube/internal/api/middleware"
	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	base
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService, cfg *config.Config) *UserHandler {
	return &UserHandler{base: newBase(cfg), authService: authService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) error {
	form, err := h.uploads.parse(w, r, "avatar", "coverImage")
	if err != nil {
		return err
	}
	defer form.Cleanup()

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		FullName:       form.Value("fullName"),
		Email:          form.Value("email"),
		Username:       form.Value("username"),
		Password:       form.RawValue("password"),
		AvatarPath:     form.File("avatar"),
		CoverImagePath: form.File("coverImage"),
	})
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.cookies.setTokens(w, result.Tokens)
	return respond(w, http.StatusOK, LoginResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// RefreshToken takes the refresh token from its cookie, falling back to the
// JSON body.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) error {
	var token string
	if c, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var req RefreshRequest
		if err := h.decoder.decodeOptional(w, r, &req); err != nil {
			return err
		}
		token = req.RefreshToken
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		return err
	}

	h.cookies.setTokens(w, result.Tokens)
	return respond(w, http.StatusOK, result.Tokens, "Access token refreshed")
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		return err
	}
	h.cookies.clearTokens(w)
	return respond(w, http.StatusOK, nil, "User logged out")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(w, http.StatusOK, nil, "Password changed successfully")
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	var req UpdateAccountRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	updated, err := h.authService.UpdateDetails(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, updated, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) error {
	return h.updateImage(w, r, "avatar", h.authService.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) error {
	return h.updateImage(w, r, "coverImage", h.authService.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, id uuid.UUID, path string) (*domain.User, error),
	message string,
) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	form, err := h.uploads.parse(w, r, field)
	if err != nil {
		return err
	}
	defer form.Cleanup()

	updated, err := update(r.Context(), user.ID, form.File(field))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, updated, message)
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) error {
	viewer, err := currentUser(r)
	if err != nil {
		return err
	}
	profile, err := h.authService.ChannelProfile(r.Context(), chi.URLParam(r, "username"), viewer.ID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	history, err := h.authService.WatchHistory(r.Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, history, "Watch history fetched successfully")
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	if err := h.authService.DeleteAccount(r.Context(), user.ID); err != nil {
		return err
	}
	h.cookies.clearTokens(w)
	return respond(w, http.StatusOK, nil, "Account deleted successfully")
}
