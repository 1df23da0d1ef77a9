package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/videotube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestVideoEngagementFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	creator := testutil.NewUserBuilder().WithUsername("creator").BuildAndAuthenticate(t, ts)
	fan := testutil.NewUserBuilder().WithUsername("fan").BuildAndAuthenticate(t, ts)

	var video struct {
		ID          string  `json:"id"`
		Duration    float64 `json:"duration"`
		IsPublished bool    `json:"isPublished"`
	}
	resp := do(t, testutil.NewMultipartRequest(t, http.MethodPost, ts.APIURL("/video/publish"),
		map[string]string{"title": "Intro to Go", "description": "basics", "duration": "95.5"},
		map[string][]byte{"videoFile": []byte("mp4"), "thumbnail": []byte("png")},
		creator.AccessToken))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.DecodeData(t, resp, &video)
	assert.Equal(t, 95.5, video.Duration)
	assert.True(t, video.IsPublished)

	t.Run("fan watches the video", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/video/get-video/"+video.ID), nil, fan.AccessToken))
		var view struct {
			Views int64 `json:"views"`
			Owner struct {
				Username string `json:"username"`
			} `json:"owner"`
		}
		testutil.DecodeData(t, resp, &view)
		assert.Equal(t, int64(1), view.Views)
		assert.Equal(t, "creator", view.Owner.Username)

		resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/users/watch-history"), nil, fan.AccessToken))
		var history []struct {
			ID string `json:"id"`
		}
		testutil.DecodeData(t, resp, &history)
		require.Len(t, history, 1)
		assert.Equal(t, video.ID, history[0].ID)
	})

	t.Run("like toggles", func(t *testing.T) {
		expect := []bool{true, false, true}
		for _, liked := range expect {
			resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/like/toggle/v/"+video.ID), nil, fan.AccessToken))
			var status struct {
				IsLiked   bool  `json:"isLiked"`
				LikeCount int64 `json:"likeCount"`
			}
			testutil.DecodeData(t, resp, &status)
			assert.Equal(t, liked, status.IsLiked)
		}

		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/like/videos"), nil, fan.AccessToken))
		var page struct {
			Docs []struct {
				ID string `json:"id"`
			} `json:"docs"`
			TotalResults int64 `json:"totalResults"`
		}
		testutil.DecodeData(t, resp, &page)
		assert.Equal(t, int64(1), page.TotalResults)
	})

	t.Run("subscribe then channel profile", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/subscription/c/"+creator.User.ID.String()), nil, fan.AccessToken))
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/users/c/creator"), nil, fan.AccessToken))
		var profile struct {
			SubscriberCount int64 `json:"subscriberCount"`
			IsSubscribed    bool  `json:"isSubscribed"`
		}
		testutil.DecodeData(t, resp, &profile)
		assert.Equal(t, int64(1), profile.SubscriberCount)
		assert.True(t, profile.IsSubscribed)

		resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/subscription/c/"+fan.User.ID.String()), nil, fan.AccessToken))
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "You cannot subscribe to your own channel")
	})

	t.Run("dashboard stats", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/dashboard/channel-stats"), nil, creator.AccessToken))
		var stats struct {
			TotalSubscribers int64 `json:"totalSubscribers"`
			TotalViews       int64 `json:"totalViews"`
			TotalVideos      int64 `json:"totalVideos"`
			TotalLikes       int64 `json:"totalLikes"`
		}
		testutil.DecodeData(t, resp, &stats)
		assert.Equal(t, int64(1), stats.TotalSubscribers)
		assert.Equal(t, int64(1), stats.TotalViews)
		assert.Equal(t, int64(1), stats.TotalVideos)
		assert.Equal(t, int64(1), stats.TotalLikes)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/video/delete-video/"+video.ID), nil, fan.AccessToken))
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)

		resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/video/delete-video/"+video.ID), nil, creator.AccessToken))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/video/get-video/"+video.ID), nil, fan.AccessToken))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "")
	})

	t.Run("malformed id", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/video/get-video/nope"), nil, fan.AccessToken))
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid video id")
	})
}

func TestRouter_Ambient(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("healthcheck", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/healthcheck"), nil, ""))
		var body struct {
			Status string `json:"status"`
		}
		testutil.DecodeData(t, resp, &body)
		assert.Equal(t, "OK", body.Status)
	})

	t.Run("unknown route uses the error envelope", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/nothing-here"), nil, ""))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Route not found")
	})

	t.Run("wrong method on a known route is 405", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/healthcheck"), nil, ""))
		testutil.AssertErrorResponse(t, resp, http.StatusMethodNotAllowed, "Method not allowed")
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/metrics", nil, ""))
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "http_requests_total"), "metrics body should list the request counter")
	})
}
