package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/videotube/internal/api"
	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/logging"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/repository"
	repoPostgres "github.com/dom/videotube/internal/repository/postgres"
	"github.com/dom/videotube/internal/service"
	"github.com/dom/videotube/internal/storage"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL container and migrates the schema into it.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_videotube"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := repoPostgres.NewConnection(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		_ = tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"playlist_videos",
		"playlists",
		"likes",
		"comments",
		"tweets",
		"subscriptions",
		"videos",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:        "0",
		Environment: "test",
		LogLevel:    "error",
		Token: config.TokenConfig{
			AccessSecret:  "test-access-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshSecret: "test-refresh-secret",
			RefreshExpiry: 24 * time.Hour,
		},
		Cookies: config.CookieConfig{Secure: false},
		Uploads: config.UploadConfig{
			TempDir:     t.TempDir(),
			MaxUploadMB: 5,
		},
		BcryptCost:      bcrypt.MinCost,
		JSONBodyLimitKB: 16,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Storage  *storage.Memory
	Metrics  *metrics.Metrics
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer wires the full router against a fresh database and an
// in-memory media store.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig(t)

	store := storage.NewMemory()
	m := metrics.New()
	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, store, m, cfg)

	router, err := api.NewRouter(services, m, cfg, logging.New(cfg.Environment, cfg.LogLevel))
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Storage:  store,
		Metrics:  m,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
