package postgres_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/dom/videotube/internal/repository/postgres"
	"github.com/dom/videotube/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{
			name: "successful creation",
			user: &domain.User{
				Username:     "alice",
				Email:        "alice@example.com",
				FullName:     "Alice",
				Avatar:       "memory://a.png",
				PasswordHash: "hash",
			},
		},
		{
			name: "duplicate username",
			user: &domain.User{
				Username:     "alice",
				Email:        "other@example.com",
				FullName:     "Other",
				Avatar:       "memory://b.png",
				PasswordHash: "hash",
			},
			wantErr: repository.ErrConflict,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				Username:     "bob",
				Email:        "alice@example.com",
				FullName:     "Bob",
				Avatar:       "memory://c.png",
				PasswordHash: "hash",
			},
			wantErr: repository.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, tt.user.ID)
		})
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("lookup").
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, "stored-token"))

	t.Run("GetByID loads credentials", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, got.PasswordHash)
		assert.Equal(t, "stored-token", got.RefreshToken)
	})

	t.Run("GetSanitizedByID omits credentials", func(t *testing.T) {
		got, err := repo.GetSanitizedByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "lookup", got.Username)
		assert.Empty(t, got.PasswordHash)
		assert.Empty(t, got.RefreshToken)
	})

	t.Run("GetByID unknown", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("GetByLogin", func(t *testing.T) {
		tests := []struct {
			name            string
			username, email string
			wantErr         bool
		}{
			{name: "by username", username: "lookup"},
			{name: "by email", email: "lookup@example.com"},
			{name: "by either", username: "nobody", email: "lookup@example.com"},
			{name: "unknown", username: "nobody", wantErr: true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.GetByLogin(ctx, tt.username, tt.email)
				if tt.wantErr {
					assert.ErrorIs(t, err, repository.ErrNotFound)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
			})
		}
	})

	t.Run("ExistsByUsernameOrEmail", func(t *testing.T) {
		exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "lookup@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "someone@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestUserRepository_UpdateDetails(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithFullName("Before").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, testDB.DB)

	require.NoError(t, repo.UpdateDetails(ctx, user.ID, "After", ""))
	got, err := repo.GetSanitizedByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.FullName)
	assert.Equal(t, user.Email, got.Email, "empty email leaves the column untouched")

	err = repo.UpdateDetails(ctx, user.ID, "", "taken@example.com")
	assert.ErrorIs(t, err, repository.ErrConflict)

	err = repo.UpdateDetails(ctx, uuid.New(), "Ghost", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_WatchHistory(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	viewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	first := testutil.NewVideoBuilder().WithTitle("first").Build(t, testDB.DB)
	second := testutil.NewVideoBuilder().WithTitle("second").Build(t, testDB.DB)

	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, first.ID))
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, second.ID))
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, first.ID))

	stored, err := repo.GetByID(ctx, viewer.ID)
	require.NoError(t, err)
	var ids []uuid.UUID
	require.NoError(t, json.Unmarshal(stored.WatchHistory, &ids))
	assert.Equal(t, []uuid.UUID{second.ID, first.ID}, ids, "rewatching moves the video to the end without duplicating it")

	history, err := repo.GetWatchHistory(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Title)
	assert.Equal(t, "first", history[1].Title)
	assert.NotEqual(t, uuid.Nil, history[0].Owner.ID)
}

func TestUserRepository_GetChannelProfile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	subs := postgres.NewSubscriptionRepository(testDB.DB)
	ctx := context.Background()

	channel, _ := testutil.NewUserBuilder().WithUsername("channel").Build(t, testDB.DB)
	fan, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := subs.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	_, err = subs.Toggle(ctx, channel.ID, stranger.ID)
	require.NoError(t, err)

	profile, err := repo.GetChannelProfile(ctx, "channel", fan.ID)
	require.NoError(t, err)
	assert.Equal(t, channel.ID, profile.ID)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.Equal(t, int64(1), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = repo.GetChannelProfile(ctx, "channel", stranger.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = repo.GetChannelProfile(ctx, "missing", fan.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	videos := postgres.NewVideoRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, owner.ID))

	_, err := videos.GetByID(ctx, video.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID), repository.ErrNotFound)
}
