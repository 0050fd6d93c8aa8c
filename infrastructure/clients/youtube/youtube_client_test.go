package youtube_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/clients/youtube"
	"yt-dashboard/infrastructure/metrics"
)

type recordedCall struct {
	endpoint string
	failed   bool
}

type fakeRecorder struct {
	metrics.Nop
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) ObserveUpstream(endpoint string, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{endpoint: endpoint, failed: err != nil})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, recorder metrics.IRecorder) repository.IYouTube {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := youtube.NewYouTubeClient(context.Background(), &youtube.Config{
		APIKey:   "test-key",
		Endpoint: srv.URL + "/",
		Recorder: recorder,
	})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewYouTubeClient_RequiresAPIKey(t *testing.T) {
	_, err := youtube.NewYouTubeClient(context.Background(), &youtube.Config{})
	assert.Error(t, err)

	_, err = youtube.NewYouTubeClient(context.Background(), nil)
	assert.Error(t, err)
}

func TestSearchVideos(t *testing.T) {
	recorder := &fakeRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "golang", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "12", q.Get("maxResults"))
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "CAwQAA", q.Get("pageToken"))
		assert.Equal(t, "test-key", q.Get("key"))

		writeJSON(w, http.StatusOK, `{
			"nextPageToken": "CBgQAA",
			"prevPageToken": "CAAQAQ",
			"pageInfo": {"totalResults": 1000000, "resultsPerPage": 12},
			"items": [
				{"id": {"kind": "youtube#video", "videoId": "vid-1"},
				 "snippet": {"title": "Go in 100 Seconds", "channelTitle": "Fireship", "channelId": "UC1",
				             "publishedAt": "2024-01-02T03:04:05Z",
				             "thumbnails": {"medium": {"url": "https://i.ytimg.com/m.jpg", "width": 320, "height": 180}}}},
				{"id": {"kind": "youtube#video", "videoId": "vid-2"},
				 "snippet": {"title": "Concurrency", "publishedAt": "not-a-date"}}
			]
		}`)
	}, recorder)

	page, err := client.SearchVideos(context.Background(), &dto.YouTubeSearchRequest{Q: "golang", PageToken: "CAwQAA"})
	require.NoError(t, err)

	assert.Equal(t, "CBgQAA", page.NextPageToken)
	assert.Equal(t, "CAAQAQ", page.PrevPageToken)
	assert.Equal(t, int64(1000000), page.TotalResults)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "vid-1", page.Items[0].ID)
	assert.Equal(t, "Go in 100 Seconds", page.Items[0].Snippet.Title)
	assert.Equal(t, "UC1", page.Items[0].Snippet.ChannelID)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), page.Items[0].Snippet.PublishedAt)
	assert.Equal(t, "https://i.ytimg.com/m.jpg", page.Items[0].Snippet.Thumbnails.Medium.URL)
	assert.Equal(t, 320, page.Items[0].Snippet.Thumbnails.Medium.Width)
	assert.True(t, page.Items[1].Snippet.PublishedAt.IsZero())

	assert.Equal(t, []recordedCall{{endpoint: metrics.EndpointSearch}}, recorder.calls)
}

func TestSearchVideos_FirstPageHasNoToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["pageToken"]
		assert.False(t, ok)
		writeJSON(w, http.StatusOK, `{"items": []}`)
	}, nil)

	page, err := client.SearchVideos(context.Background(), &dto.YouTubeSearchRequest{Q: "rust"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestSearchVideos_Failure(t *testing.T) {
	recorder := &fakeRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error": {"code": 403, "message": "quota exceeded", "errors": [{"reason": "quotaExceeded"}]}}`)
	}, recorder)

	_, err := client.SearchVideos(context.Background(), &dto.YouTubeSearchRequest{Q: "golang"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSearchFailure)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, []recordedCall{{endpoint: metrics.EndpointSearch, failed: true}}, recorder.calls)
}

func TestGetVideoStatistics_SingleBatchedRequest(t *testing.T) {
	var requests int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "a,b,c", r.URL.Query().Get("id"))

		writeJSON(w, http.StatusOK, `{"items": [
			{"id": "b", "statistics": {"viewCount": "1500000", "likeCount": "20", "commentCount": "3"}},
			{"id": "a", "statistics": {"viewCount": "7"}}
		]}`)
	}, nil)

	stats, err := client.GetVideoStatistics(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	require.Len(t, stats, 2)
	assert.Equal(t, "b", stats[0].ID)
	assert.Equal(t, model.VideoStatistics{ViewCount: 1500000, LikeCount: 20, CommentCount: 3}, stats[0].Statistics)
	assert.Equal(t, int64(7), stats[1].Statistics.ViewCount)
}

func TestGetVideoStatistics_EmptyIDsSkipsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, nil)

	stats, err := client.GetVideoStatistics(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestGetVideoStatistics_Failure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error": {"code": 500, "message": "backend error"}}`)
	}, nil)

	_, err := client.GetVideoStatistics(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, model.ErrStatsFailure)
}

func TestGetVideoDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "vid-1", r.URL.Query().Get("id"))
		assert.ElementsMatch(t, []string{"snippet", "statistics", "contentDetails"}, r.URL.Query()["part"])

		writeJSON(w, http.StatusOK, `{"items": [{
			"id": "vid-1",
			"snippet": {"title": "Go", "channelTitle": "Fireship", "channelId": "UC1", "categoryId": "28",
			            "tags": ["go", "golang"], "publishedAt": "2024-01-02T03:04:05Z"},
			"statistics": {"viewCount": "1000", "likeCount": "50", "commentCount": "10"},
			"contentDetails": {"duration": "PT4M13S"}
		}]}`)
	}, nil)

	video, err := client.GetVideoDetails(context.Background(), "vid-1")
	require.NoError(t, err)
	assert.Equal(t, "vid-1", video.ID)
	assert.Equal(t, "PT4M13S", video.Duration)
	assert.Equal(t, "28", video.Category)
	assert.Equal(t, []string{"go", "golang"}, video.Tags)
	assert.Equal(t, int64(1000), video.Statistics.ViewCount)
}

func TestGetVideoDetails_NotFound(t *testing.T) {
	t.Run("empty items", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"items": []}`)
		}, nil)
		_, err := client.GetVideoDetails(context.Background(), "missing")
		assert.ErrorIs(t, err, model.ErrVideoNotFound)
	})

	t.Run("upstream 404", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error": {"code": 404, "message": "not found"}}`)
		}, nil)
		_, err := client.GetVideoDetails(context.Background(), "missing")
		assert.ErrorIs(t, err, model.ErrVideoNotFound)
	})
}

func TestGetCommentThreads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/commentThreads", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "vid-1", q.Get("videoId"))
		assert.Equal(t, "20", q.Get("maxResults"))
		assert.Equal(t, "relevance", q.Get("order"))
		assert.ElementsMatch(t, []string{"snippet", "replies"}, q["part"])

		writeJSON(w, http.StatusOK, `{"items": [
			{"id": "t1", "snippet": {"totalReplyCount": 5, "topLevelComment": {"id": "c1", "snippet": {
				"authorDisplayName": "Ann", "authorProfileImageUrl": "https://a/img", "authorChannelId": {"value": "UCann"},
				"textDisplay": "great video", "publishedAt": "2024-01-02T03:04:05Z", "likeCount": 12}}},
			 "replies": {"comments": [
				{"id": "r1", "snippet": {"authorDisplayName": "Bob", "textDisplay": "agreed", "parentId": "c1"}}
			 ]}},
			{"id": "t2", "snippet": {"totalReplyCount": 0, "topLevelComment": {"id": "c2", "snippet": {"authorDisplayName": "Cy"}}}}
		]}`)
	}, nil)

	threads, err := client.GetCommentThreads(context.Background(), &dto.YouTubeCommentListRequest{VideoID: "vid-1"})
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, "c1", threads[0].TopLevelComment.ID)
	assert.Equal(t, "UCann", threads[0].TopLevelComment.AuthorChannelID)
	assert.Equal(t, int64(12), threads[0].TopLevelComment.LikeCount)
	assert.Equal(t, int64(5), threads[0].TotalReplyCount)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "agreed", threads[0].Replies[0].TextDisplay)

	assert.Nil(t, threads[1].Replies)
}

func TestGetCommentThreads_Disabled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error": {"code": 403, "message": "comments disabled", "errors": [{"reason": "commentsDisabled"}]}}`)
	}, nil)

	_, err := client.GetCommentThreads(context.Background(), &dto.YouTubeCommentListRequest{VideoID: "vid-1"})
	assert.ErrorIs(t, err, model.ErrCommentsUnavailable)
}

func TestClient_CanceledContext(t *testing.T) {
	client, err := youtube.NewYouTubeClient(context.Background(), &youtube.Config{
		APIKey:            "test-key",
		Endpoint:          "http://127.0.0.1:1/",
		RequestsPerSecond: 0.001,
		Burst:             1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.SearchVideos(ctx, &dto.YouTubeSearchRequest{Q: "golang"})
	assert.ErrorIs(t, err, model.ErrSearchFailure)
}
