package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"youtube-gateway/domain/dto"
	"youtube-gateway/domain/errs"
	"youtube-gateway/domain/model"
	"youtube-gateway/domain/repository"
	"youtube-gateway/usecase"
)

// Mock implementations
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoDetails), args.Error(1)
}

func (m *MockYouTube) GetVideoComments(ctx context.Context, req *dto.CommentsRequest) (*dto.CommentsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentsResponse), args.Error(1)
}

type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheStore) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

func (m *MockCacheStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, jobName string, payload []byte) error {
	args := m.Called(ctx, jobName, payload)
	return args.Error(0)
}

func (m *MockQueue) Consume(ctx context.Context, jobName string, handler repository.JobHandler) error {
	args := m.Called(ctx, jobName, handler)
	return args.Error(0)
}

type MockVideoCache struct {
	mock.Mock
}

func (m *MockVideoCache) GetVideo(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoDetails), args.Error(1)
}

func (m *MockVideoCache) UpsertVideo(ctx context.Context, videoID string, video *model.VideoDetails, ttl time.Duration) error {
	args := m.Called(ctx, videoID, video, ttl)
	return args.Error(0)
}

func TestGetVideoDetails_CacheHit(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	cached := &model.VideoDetails{Title: "Cached", ViewCount: 5}
	raw, _ := json.Marshal(cached)

	mockStore.On("Get", mock.Anything, "video:video-1").
		Return(string(raw), nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	details, err := uc.GetVideoDetails(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Equal(t, cached, details)

	// Upstream must never be called on a hit
	mockYouTube.AssertNotCalled(t, "GetVideoDetails", mock.Anything, mock.Anything)
	mockStore.AssertExpectations(t)
}

func TestGetVideoDetails_CacheMissFetchesAndStores(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &model.VideoDetails{Title: "Fresh", ViewCount: 7}
	raw, _ := json.Marshal(fetched)

	mockStore.On("Get", mock.Anything, "video:video-1").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoDetails", mock.Anything, "video-1").
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "video:video-1", string(raw), time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	details, err := uc.GetVideoDetails(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Equal(t, fetched, details)

	mockYouTube.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestGetVideoDetails_CacheReadErrorFallsThrough(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &model.VideoDetails{Title: "Fresh"}

	mockStore.On("Get", mock.Anything, "video:video-1").
		Return("", assert.AnError).
		Once()
	mockYouTube.On("GetVideoDetails", mock.Anything, "video-1").
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "video:video-1", mock.Anything, time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	details, err := uc.GetVideoDetails(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Equal(t, fetched, details)
}

func TestGetVideoDetails_CacheWriteErrorDoesNotFailRequest(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &model.VideoDetails{Title: "Fresh"}

	mockStore.On("Get", mock.Anything, "video:video-1").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoDetails", mock.Anything, "video-1").
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "video:video-1", mock.Anything, time.Hour).
		Return(assert.AnError).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	details, err := uc.GetVideoDetails(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Equal(t, fetched, details)
}

func TestGetVideoDetails_UpstreamNotFound(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	mockStore.On("Get", mock.Anything, "video:missing").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoDetails", mock.Anything, "missing").
		Return(nil, errs.ErrNotFound).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	_, err := uc.GetVideoDetails(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	mockStore.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVideoDetails_EmptyID(t *testing.T) {
	uc := usecase.NewYouTubeUseCase(new(MockYouTube), new(MockCacheStore), new(MockQueue), time.Hour, time.Hour)

	_, err := uc.GetVideoDetails(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestGetVideoDetails_DurableTierPromotesHit(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)
	mockDurable := new(MockVideoCache)

	durableHit := &model.VideoDetails{Title: "Durable"}
	raw, _ := json.Marshal(durableHit)

	mockStore.On("Get", mock.Anything, "video:video-1").
		Return("", repository.ErrCacheMiss).
		Once()
	mockDurable.On("GetVideo", mock.Anything, "video-1").
		Return(durableHit, nil).
		Once()
	mockStore.On("Set", mock.Anything, "video:video-1", string(raw), time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour).(*usecase.YouTubeUseCase).
		WithDurableCache(mockDurable)

	details, err := uc.GetVideoDetails(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Equal(t, durableHit, details)

	mockYouTube.AssertNotCalled(t, "GetVideoDetails", mock.Anything, mock.Anything)
	mockDurable.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestGetVideoComments_CacheHit(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	cached := &dto.CommentsResponse{
		Comments: []dto.Comment{{ID: "c1", Text: "hi"}},
		PageInfo: dto.PageInfo{TotalResults: 1, ResultsPerPage: 20},
	}
	raw, _ := json.Marshal(cached)

	mockStore.On("Get", mock.Anything, "comments:video-1:initial").
		Return(string(raw), nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	resp, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{VideoID: "video-1"})
	require.NoError(t, err)
	assert.Equal(t, cached, resp)

	mockYouTube.AssertNotCalled(t, "GetVideoComments", mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVideoComments_MissEnqueuesNextPage(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	next := "token-b"
	fetched := &dto.CommentsResponse{
		Comments:      []dto.Comment{{ID: "c1"}},
		NextPageToken: &next,
	}
	jobPayload, _ := json.Marshal(dto.FetchNextPageJob{
		VideoID:    "video-1",
		PageToken:  "token-b",
		MaxResults: 20,
	})

	mockStore.On("Get", mock.Anything, "comments:video-1:initial").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoComments", mock.Anything, mock.MatchedBy(func(req *dto.CommentsRequest) bool {
		return req.VideoID == "video-1" && req.MaxResults == 20 && req.PageToken == ""
	})).
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "comments:video-1:initial", mock.Anything, time.Hour).
		Return(nil).
		Once()
	mockQueue.On("Enqueue", mock.Anything, usecase.JobFetchNextPage, jobPayload).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	resp, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{VideoID: "video-1"})
	require.NoError(t, err)
	assert.Equal(t, fetched, resp)

	mockQueue.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestGetVideoComments_LastPageEnqueuesNothing(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &dto.CommentsResponse{Comments: []dto.Comment{{ID: "c1"}}}

	mockStore.On("Get", mock.Anything, "comments:video-1:token-z").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoComments", mock.Anything, mock.Anything).
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "comments:video-1:token-z", mock.Anything, time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	_, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{VideoID: "video-1", PageToken: "token-z"})
	require.NoError(t, err)

	mockQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVideoComments_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	next := "token-b"
	fetched := &dto.CommentsResponse{NextPageToken: &next}

	mockStore.On("Get", mock.Anything, mock.Anything).
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoComments", mock.Anything, mock.Anything).
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Hour).
		Return(nil).
		Once()
	mockQueue.On("Enqueue", mock.Anything, usecase.JobFetchNextPage, mock.Anything).
		Return(assert.AnError).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	resp, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{VideoID: "video-1"})
	require.NoError(t, err)
	assert.Equal(t, fetched, resp)
}

func TestGetVideoComments_InvalidMaxResults(t *testing.T) {
	uc := usecase.NewYouTubeUseCase(new(MockYouTube), new(MockCacheStore), new(MockQueue), time.Hour, time.Hour)

	for _, maxResults := range []int64{-1, 101, 1000} {
		_, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{VideoID: "video-1", MaxResults: maxResults})
		assert.ErrorIs(t, err, errs.ErrInvalidInput, "maxResults=%d should be rejected", maxResults)
	}
}

func TestGetVideoComments_MissingVideoID(t *testing.T) {
	uc := usecase.NewYouTubeUseCase(new(MockYouTube), new(MockCacheStore), new(MockQueue), time.Hour, time.Hour)

	_, err := uc.GetVideoComments(context.Background(), &dto.CommentsRequest{})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestHandleFetchNextPage(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &dto.CommentsResponse{Comments: []dto.Comment{{ID: "c9"}}}
	payload, _ := json.Marshal(dto.FetchNextPageJob{VideoID: "video-1", PageToken: "token-b", MaxResults: 20})

	mockStore.On("Get", mock.Anything, "comments:video-1:token-b").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoComments", mock.Anything, mock.MatchedBy(func(req *dto.CommentsRequest) bool {
		return req.VideoID == "video-1" && req.PageToken == "token-b" && req.MaxResults == 20
	})).
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "comments:video-1:token-b", mock.Anything, time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	err := uc.HandleFetchNextPage(context.Background(), payload)
	require.NoError(t, err)
	mockYouTube.AssertExpectations(t)
}

func TestHandleFetchNextPage_AbsentMaxResultsUsesDefault(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)
	mockQueue := new(MockQueue)

	fetched := &dto.CommentsResponse{Comments: []dto.Comment{{ID: "c3"}}}
	payload, _ := json.Marshal(dto.FetchNextPageJob{VideoID: "video-1", PageToken: "token-b"})

	mockStore.On("Get", mock.Anything, "comments:video-1:token-b").
		Return("", repository.ErrCacheMiss).
		Once()
	mockYouTube.On("GetVideoComments", mock.Anything, mock.MatchedBy(func(req *dto.CommentsRequest) bool {
		return req.VideoID == "video-1" && req.PageToken == "token-b" && req.MaxResults == 20
	})).
		Return(fetched, nil).
		Once()
	mockStore.On("Set", mock.Anything, "comments:video-1:token-b", mock.Anything, time.Hour).
		Return(nil).
		Once()

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, mockQueue, time.Hour, time.Hour)

	err := uc.HandleFetchNextPage(context.Background(), payload)
	require.NoError(t, err)
	mockYouTube.AssertExpectations(t)
}

func TestHandleFetchNextPage_InvalidPayload(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockStore := new(MockCacheStore)

	uc := usecase.NewYouTubeUseCase(mockYouTube, mockStore, new(MockQueue), time.Hour, time.Hour)

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "malformed json", payload: []byte("{not json")},
		{name: "missing videoId", payload: mustMarshal(t, dto.FetchNextPageJob{PageToken: "t", MaxResults: 20})},
		{name: "negative maxResults", payload: mustMarshal(t, dto.FetchNextPageJob{VideoID: "v", MaxResults: -5})},
		{name: "oversized maxResults", payload: mustMarshal(t, dto.FetchNextPageJob{VideoID: "v", MaxResults: 500})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.HandleFetchNextPage(context.Background(), tc.payload)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}

	// Invalid jobs must never reach the cache or upstream
	mockYouTube.AssertNotCalled(t, "GetVideoComments", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
