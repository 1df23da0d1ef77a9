package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/logging"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/repository"
	"github.com/dom/videotube/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidAccess  = "Invalid access token"
	msgInvalidRefresh = "Invalid refresh token"
	msgUsedRefresh    = "Refresh token is expired or used"
)

// AuthService owns the account lifecycle: registration, the session token
// flows and profile maintenance.
type AuthService struct {
	users      repository.UserRepository
	videos     repository.VideoRepository
	tokens     *TokenService
	media      media
	metrics    *metrics.Metrics
	bcryptCost int
}

func NewAuthService(
	users repository.UserRepository,
	videos repository.VideoRepository,
	tokens *TokenService,
	store storage.MediaStorage,
	metrics *metrics.Metrics,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		users:      users,
		videos:     videos,
		tokens:     tokens,
		media:      media{store: store, metrics: metrics},
		metrics:    metrics,
		bcryptCost: bcryptCost,
	}
}

// RegisterInput carries the form fields plus the local paths of the
// uploaded images. CoverImagePath is optional.
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user *domain.User, err error) {
	defer func() { s.metrics.RecordAuth("register", err) }()

	fullName := strings.TrimSpace(input.FullName)
	email := domain.NormalizeHandle(input.Email)
	username := domain.NormalizeHandle(input.Username)
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domain.BadRequest("All fields are required")
	}
	if input.AvatarPath == "" {
		return nil, domain.BadRequest("Avatar file is required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, storeErr(err, "")
	}
	if exists {
		return nil, domain.Conflict("User with email or username already exists")
	}

	avatar, err := s.media.upload(ctx, input.AvatarPath)
	if err != nil {
		return nil, domain.BadRequest("Avatar file upload failed")
	}

	var coverURL string
	if input.CoverImagePath != "" {
		cover, err := s.media.upload(ctx, input.CoverImagePath)
		if err != nil {
			s.media.discard(ctx, avatar.URL)
			return nil, domain.BadRequest("Cover image upload failed")
		}
		coverURL = cover.URL
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		s.media.discard(ctx, avatar.URL, coverURL)
		return nil, domain.Internal("Something went wrong while registering the user", err)
	}

	created := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, created); err != nil {
		s.media.discard(ctx, avatar.URL, coverURL)
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.Conflict("User with email or username already exists")
		}
		return nil, domain.Internal("Something went wrong while registering the user", err)
	}

	user, err = s.users.GetSanitizedByID(ctx, created.ID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (result *AuthResult, err error) {
	defer func() { s.metrics.RecordAuth("login", err) }()

	username := domain.NormalizeHandle(input.Username)
	email := domain.NormalizeHandle(input.Email)
	if username == "" && email == "" {
		return nil, domain.BadRequest("Username or email is required")
	}
	if input.Password == "" {
		return nil, domain.BadRequest("Password is required")
	}

	user, err := s.users.GetByLogin(ctx, username, email)
	if err != nil {
		return nil, storeErr(err, "User does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.InvalidCredential("Invalid user credentials")
	}

	return s.rotate(ctx, user.ID)
}

// Logout clears the stored refresh token. Repeating it is not an error.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) (err error) {
	defer func() { s.metrics.RecordAuth("logout", err) }()

	err = s.users.SetRefreshToken(ctx, userID, "")
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Internal(msgInternal, err)
	}
	return nil
}

// Refresh exchanges the presented refresh token for a new pair. The token
// must verify and equal the stored value, so a token already rotated away
// is rejected even before it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (result *AuthResult, err error) {
	defer func() { s.metrics.RecordAuth("refresh", err) }()

	if refreshToken == "" {
		return nil, domain.BadRequest("Refresh token is required")
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.Unauthenticated(msgInvalidRefresh)
	}
	userID, _ := claims.UserID()

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Unauthenticated(msgInvalidRefresh)
	}
	if err != nil {
		return nil, domain.Internal(msgInternal, err)
	}

	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		logging.FromContext(ctx).Warn("refresh token reuse rejected", slog.String("user_id", userID.String()))
		return nil, domain.Unauthenticated(msgUsedRefresh)
	}

	return s.rotate(ctx, user.ID)
}

func (s *AuthService) rotate(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	user, tokens, err := s.tokens.Rotate(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Unauthenticated(msgInvalidRefresh)
	}
	if err != nil {
		return nil, domain.Internal("Something went wrong while generating tokens", err)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Authenticate resolves an access token to the sanitized account it names.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, domain.Unauthenticated(msgInvalidAccess)
	}
	userID, _ := claims.UserID()

	user, err := s.users.GetSanitizedByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Unauthenticated(msgInvalidAccess)
	}
	if err != nil {
		return nil, domain.Internal(msgInternal, err)
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return domain.BadRequest("New password is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeErr(err, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.BadRequest("Invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return domain.Internal(msgInternal, err)
	}
	return storeErr(s.users.UpdatePassword(ctx, userID, string(hash)), "User not found")
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID uuid.UUID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = domain.NormalizeHandle(email)
	if fullName == "" && email == "" {
		return nil, domain.BadRequest("At least one of fullName or email is required")
	}

	err := s.users.UpdateDetails(ctx, userID, fullName, email)
	if errors.Is(err, repository.ErrConflict) {
		return nil, domain.Conflict("Email is already in use")
	}
	if err != nil {
		return nil, storeErr(err, "User not found")
	}

	user, err := s.users.GetSanitizedByID(ctx, userID)
	return user, storeErr(err, "User not found")
}

func (s *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath, "Avatar",
		func(u *domain.User) string { return u.Avatar },
		s.users.UpdateAvatar)
}

func (s *AuthService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath, "Cover image",
		func(u *domain.User) string { return u.CoverImage },
		s.users.UpdateCoverImage)
}

// replaceImage uploads the new image, persists it and then deletes the old
// one. Failing to delete the old asset is only logged; failing to persist
// removes the new asset again.
func (s *AuthService) replaceImage(
	ctx context.Context,
	userID uuid.UUID,
	localPath, label string,
	current func(*domain.User) string,
	persist func(context.Context, uuid.UUID, string) error,
) (*domain.User, error) {
	if localPath == "" {
		return nil, domain.BadRequest(label + " file is missing")
	}

	user, err := s.users.GetSanitizedByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	previous := current(user)

	asset, err := s.media.upload(ctx, localPath)
	if err != nil {
		return nil, domain.BadRequest("Error while uploading " + strings.ToLower(label))
	}

	if err := persist(ctx, userID, asset.URL); err != nil {
		s.media.discard(ctx, asset.URL)
		return nil, storeErr(err, "User not found")
	}
	s.media.discard(ctx, previous)

	updated, err := s.users.GetSanitizedByID(ctx, userID)
	return updated, storeErr(err, "User not found")
}

func (s *AuthService) ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	username = domain.NormalizeHandle(username)
	if username == "" {
		return nil, domain.BadRequest("Username is missing")
	}
	profile, err := s.users.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, storeErr(err, "Channel does not exist")
	}
	return profile, nil
}

func (s *AuthService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]domain.VideoView, error) {
	history, err := s.users.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return history, nil
}

// DeleteAccount removes the account, which cascades to everything it owns,
// then deletes its media on a best-effort basis.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetSanitizedByID(ctx, userID)
	if err != nil {
		return storeErr(err, "User not found")
	}
	videos, err := s.videos.ListAssetsByOwner(ctx, userID)
	if err != nil {
		return storeErr(err, "")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return storeErr(err, "User not found")
	}

	urls := []string{user.Avatar, user.CoverImage}
	for _, v := range videos {
		urls = append(urls, v.VideoFile, v.Thumbnail)
	}
	s.media.discard(ctx, urls...)

	logging.FromContext(ctx).Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
