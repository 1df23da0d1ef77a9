package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: "user_" + suffix,
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		fullName: "Test User " + suffix,
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     domain.NormalizeHandle(b.username),
		Email:        domain.NormalizeHandle(b.email),
		FullName:     b.fullName,
		Avatar:       "memory://" + uuid.NewString() + ".png",
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// Session is an authenticated API client state.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	Cookies      []*http.Cookie
}

// Register posts the multipart registration form and returns the raw
// response. The caller closes the body.
func (b *UserBuilder) Register(t *testing.T, ts *TestServer) *http.Response {
	t.Helper()

	req := NewMultipartRequest(t, http.MethodPost, ts.APIURL("/users/register"),
		map[string]string{
			"fullName": b.fullName,
			"email":    b.email,
			"username": b.username,
			"password": b.password,
		},
		map[string][]byte{"avatar": []byte("avatar-bytes")},
		"",
	)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	return resp
}

// BuildAndAuthenticate registers the user through the API and logs in.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) *Session {
	t.Helper()

	resp := b.Register(t, ts)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	loginReq := CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/users/login"),
		map[string]string{"username": b.username, "password": b.password}, "")
	resp, err := http.DefaultClient.Do(loginReq)
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var login struct {
		Data struct {
			User         domain.User `json:"user"`
			AccessToken  string      `json:"accessToken"`
			RefreshToken string      `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return &Session{
		User:         &login.Data.User,
		AccessToken:  login.Data.AccessToken,
		RefreshToken: login.Data.RefreshToken,
		Cookies:      resp.Cookies(),
	}
}

// VideoBuilder creates test videos directly in the database
type VideoBuilder struct {
	owner       *domain.User
	title       string
	description string
	duration    float64
	views       int64
	published   bool
	createdAt   time.Time
}

func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		title:       "Video " + uuid.New().String()[:8],
		description: "A test video",
		duration:    60,
		published:   true,
	}
}

func (b *VideoBuilder) WithOwner(user *domain.User) *VideoBuilder {
	b.owner = user
	return b
}

func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

func (b *VideoBuilder) WithDuration(seconds float64) *VideoBuilder {
	b.duration = seconds
	return b
}

func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

func (b *VideoBuilder) Unpublished() *VideoBuilder {
	b.published = false
	return b
}

func (b *VideoBuilder) CreatedAt(at time.Time) *VideoBuilder {
	b.createdAt = at
	return b
}

// Build creates the video in the database, creating an owner if none is set.
func (b *VideoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Video {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	video := &domain.Video{
		ID:          uuid.New(),
		VideoFile:   "memory://" + uuid.NewString() + ".mp4",
		Thumbnail:   "memory://" + uuid.NewString() + ".png",
		OwnerID:     b.owner.ID,
		Title:       b.title,
		Description: b.description,
		Duration:    b.duration,
		Views:       b.views,
		IsPublished: true,
		CreatedAt:   b.createdAt,
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}
	// is_published defaults to true, so a false value has to be written explicitly.
	if !b.published {
		if err := db.Model(video).UpdateColumn("is_published", false).Error; err != nil {
			t.Fatalf("failed to unpublish video: %v", err)
		}
		video.IsPublished = false
	}

	return video
}

// CreateAuthenticatedRequest creates a JSON request with an optional bearer token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// NewMultipartRequest builds a multipart/form-data request. Each files entry
// is sent under its field name with a filename derived from it.
func NewMultipartRequest(t *testing.T, method, url string, fields map[string]string, files map[string][]byte, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	for name, content := range files {
		part, err := mw.CreateFormFile(name, name+".png")
		if err != nil {
			t.Fatalf("failed to create file part %s: %v", name, err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write file part %s: %v", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
