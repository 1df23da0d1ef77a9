package service_test

import (
	"context"
	"testing"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_Toggle(t *testing.T) {
	f := newFixture(t)
	likes := f.services.Like
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	video := testutil.NewVideoBuilder().Build(t, f.db.DB)

	status, err := likes.Toggle(ctx, user.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatus{LikeCount: 1, IsLiked: true}, status)

	status, err = likes.Toggle(ctx, user.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatus{LikeCount: 0, IsLiked: false}, status)

	for _, target := range []domain.LikeTarget{domain.LikeTargetVideo, domain.LikeTargetComment, domain.LikeTargetTweet} {
		_, err := likes.Toggle(ctx, user.ID, target, uuid.New())
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "target %s", target)
	}
}

func TestCommentService(t *testing.T) {
	f := newFixture(t)
	comments := f.services.Comment
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	other, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	video := testutil.NewVideoBuilder().Build(t, f.db.DB)

	_, err := comments.Add(ctx, author.ID, video.ID, "   ")
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))

	_, err = comments.Add(ctx, author.ID, uuid.New(), "hello")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	comment, err := comments.Add(ctx, author.ID, video.ID, "hello")
	require.NoError(t, err)

	_, err = comments.Update(ctx, other.ID, comment.ID, "hijack")
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	updated, err := comments.Update(ctx, author.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	page, err := comments.List(ctx, other.ID, video.ID, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "edited", page.Docs[0].Content)

	assert.Equal(t, domain.KindForbidden, domain.KindOf(comments.Delete(ctx, other.ID, comment.ID)))
	require.NoError(t, comments.Delete(ctx, author.ID, comment.ID))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(comments.Delete(ctx, author.ID, comment.ID)))
}

func TestSubscriptionService_Toggle(t *testing.T) {
	f := newFixture(t)
	subs := f.services.Subscription
	ctx := context.Background()

	channel, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	fan, _ := testutil.NewUserBuilder().Build(t, f.db.DB)

	_, err := subs.Toggle(ctx, fan.ID, fan.ID)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))

	_, err = subs.Toggle(ctx, fan.ID, uuid.New())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	sub, err := subs.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)

	profile, err := f.services.Auth.ChannelProfile(ctx, channel.Username, fan.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, int64(1), profile.SubscriberCount)

	sub, err = subs.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)

	_, err = subs.Subscribers(ctx, uuid.New(), domain.NewPageRequest(1, 10))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestPlaylistService(t *testing.T) {
	f := newFixture(t)
	playlists := f.services.Playlist
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	other, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	video := testutil.NewVideoBuilder().Build(t, f.db.DB)

	_, err := playlists.Create(ctx, owner.ID, "", "desc")
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))

	playlist, err := playlists.Create(ctx, owner.ID, "Watch later", "to watch")
	require.NoError(t, err)

	_, err = playlists.AddVideo(ctx, other.ID, video.ID, playlist.ID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	_, err = playlists.AddVideo(ctx, owner.ID, uuid.New(), playlist.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	view, err := playlists.AddVideo(ctx, owner.ID, video.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.VideoCount)

	view, err = playlists.AddVideo(ctx, owner.ID, video.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.VideoCount, "adding twice keeps one entry")

	view, err = playlists.RemoveVideo(ctx, owner.ID, video.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.VideoCount)
	assert.NotNil(t, view.Videos)

	renamed, err := playlists.Update(ctx, owner.ID, playlist.ID, "Later", "")
	require.NoError(t, err)
	assert.Equal(t, "Later", renamed.Name)
	assert.Equal(t, "to watch", renamed.Description)

	require.NoError(t, playlists.Delete(ctx, owner.ID, playlist.ID))
	_, err = playlists.Get(ctx, owner.ID, playlist.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTweetAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	testutil.NewVideoBuilder().WithOwner(owner).WithViews(5).Build(t, f.db.DB)

	tweet, err := f.services.Tweet.Create(ctx, owner.ID, "first tweet")
	require.NoError(t, err)
	_, err = f.services.Like.Toggle(ctx, owner.ID, domain.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)

	page, err := f.services.Tweet.ListByUser(ctx, owner.ID, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, int64(1), page.Docs[0].LikeCount)

	_, err = f.services.Tweet.ListByUser(ctx, uuid.New(), domain.NewPageRequest(1, 10))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	stats, err := f.services.Dashboard.ChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(5), stats.TotalViews)
	assert.Equal(t, int64(0), stats.TotalLikes, "tweet likes do not count toward video likes")
}

func TestUnpublishedVideoHiddenFromOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	draft := testutil.NewVideoBuilder().WithOwner(owner).Unpublished().Build(t, f.db.DB)

	strangerList, err := f.services.Playlist.Create(ctx, stranger.ID, "Stolen", "not yours")
	require.NoError(t, err)
	ownerList, err := f.services.Playlist.Create(ctx, owner.ID, "Drafts", "work in progress")
	require.NoError(t, err)

	tests := []struct {
		name string
		call func(userID, playlistID uuid.UUID) error
	}{
		{
			name: "like toggle",
			call: func(userID, _ uuid.UUID) error {
				_, err := f.services.Like.Toggle(ctx, userID, domain.LikeTargetVideo, draft.ID)
				return err
			},
		},
		{
			name: "comment add",
			call: func(userID, _ uuid.UUID) error {
				_, err := f.services.Comment.Add(ctx, userID, draft.ID, "first")
				return err
			},
		},
		{
			name: "comment list",
			call: func(userID, _ uuid.UUID) error {
				_, err := f.services.Comment.List(ctx, userID, draft.ID, domain.NewPageRequest(1, 10))
				return err
			},
		},
		{
			name: "playlist add",
			call: func(userID, playlistID uuid.UUID) error {
				_, err := f.services.Playlist.AddVideo(ctx, userID, draft.ID, playlistID)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(stranger.ID, strangerList.ID)
			assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

			assert.NoError(t, tt.call(owner.ID, ownerList.ID), "the owner still reaches the draft")
		})
	}

	view, err := f.services.Playlist.Get(ctx, stranger.ID, ownerList.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Videos, "drafts are not nested for other viewers")
	assert.Equal(t, 0, view.VideoCount)

	view, err = f.services.Playlist.Get(ctx, owner.ID, ownerList.ID)
	require.NoError(t, err)
	require.Len(t, view.Videos, 1)
	assert.Equal(t, draft.ID, view.Videos[0].ID)

	page, err := f.services.Playlist.ListByUser(ctx, stranger.ID, owner.ID, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Empty(t, page.Docs[0].Videos)
}
