package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/api/middleware"
	"foodscroll-go/internal/authz"
	"foodscroll-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withPrincipal 跳过 JWT，直接注入调用方身份
func withPrincipal(p authz.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyPrincipal, p)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// ---- stubs ----

type stubFeed struct {
	viewer         int64
	page, pageSize int
	err            error
}

func (s *stubFeed) GetFeed(_ context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error) {
	s.viewer, s.page, s.pageSize = viewerID, page, pageSize
	if s.err != nil {
		return nil, s.err
	}
	return &dto.FeedData{Videos: []dto.FeedVideo{}, Page: 1, PageSize: 10}, nil
}

func (s *stubFeed) ListSaved(ctx context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error) {
	return s.GetFeed(ctx, viewerID, page, pageSize)
}

type stubEngagement struct {
	res *dto.ToggleResult
	err error
}

func (s *stubEngagement) ToggleLike(context.Context, int64, int64) (*dto.ToggleResult, error) {
	return s.res, s.err
}

func (s *stubEngagement) ToggleSave(context.Context, int64, int64) (*dto.ToggleResult, error) {
	return s.res, s.err
}

type stubComments struct {
	text string
	err  error
}

func (s *stubComments) AddComment(_ context.Context, userID, videoID int64, text string) (*dto.CommentInfo, error) {
	s.text = text
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentInfo{ID: 1, UserID: userID, VideoID: videoID, Text: text}, nil
}

func (s *stubComments) DeleteComment(context.Context, authz.Principal, int64) error {
	return s.err
}

func (s *stubComments) ListComments(context.Context, int64) (*dto.CommentListData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentListData{Comments: []dto.CommentInfo{}}, nil
}

type stubPartners struct {
	partnerID int64
	err       error
}

func (s *stubPartners) GetPartnerVideos(_ context.Context, partnerID int64) (*dto.PartnerCatalog, error) {
	s.partnerID = partnerID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PartnerCatalog{Partner: dto.PartnerProfile{ID: partnerID}}, nil
}

func (s *stubPartners) UpdateProfile(_ context.Context, _ authz.Principal, partnerID int64, _ *dto.PartnerProfileUpdateRequest) (*dto.PartnerProfile, error) {
	s.partnerID = partnerID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PartnerProfile{ID: partnerID}, nil
}

type stubSearch struct {
	keyword string
}

func (s *stubSearch) SearchVideos(_ context.Context, keyword string, page, pageSize int) (*dto.SearchVideoData, error) {
	s.keyword = keyword
	return &dto.SearchVideoData{Videos: []dto.VideoInfo{}, Page: page, PageSize: pageSize, Source: "db"}, nil
}

type stubPublisher struct {
	err error
}

func (s *stubPublisher) AddVideo(_ context.Context, p authz.Principal, req *dto.VideoCreateRequest) (*dto.VideoInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.VideoInfo{ID: 3, PartnerID: p.ID, Title: req.Title}, nil
}

func (s *stubPublisher) SetOrderLink(_ context.Context, _ authz.Principal, videoID int64, link string) (*dto.VideoInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.VideoInfo{ID: videoID, ExternalOrderLink: link}, nil
}

var (
	viewer  = authz.Principal{ID: 5, Role: authz.RoleUser}
	partner = authz.Principal{ID: 9, Role: authz.RolePartner}
)

// ---- tests ----

func TestGetFeedPassesPagination(t *testing.T) {
	feed := &stubFeed{}
	h := NewVideoHandler(feed, &stubPublisher{})
	r := gin.New()
	r.GET("/feed", withPrincipal(viewer), h.GetFeed)

	w := serve(r, http.MethodGet, "/feed?page=3&limit=7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
	assert.Equal(t, int64(5), feed.viewer)
	assert.Equal(t, 3, feed.page)
	assert.Equal(t, 7, feed.pageSize)

	serve(r, http.MethodGet, "/feed?page_size=4", "")
	assert.Equal(t, 0, feed.page)
	assert.Equal(t, 4, feed.pageSize)

	serve(r, http.MethodGet, "/feed?page=abc&limit=-2", "")
	assert.Equal(t, 0, feed.page)
	assert.Equal(t, -2, feed.pageSize)
}

func TestGetFeedStoreUnavailable(t *testing.T) {
	feed := &stubFeed{err: fmt.Errorf("%w: %w", service.ErrStoreUnavailable, fmt.Errorf("timeout"))}
	r := gin.New()
	r.GET("/feed", withPrincipal(viewer), NewVideoHandler(feed, &stubPublisher{}).GetFeed)

	w := serve(r, http.MethodGet, "/feed", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "ServiceUnavailable", decode(t, w).Error.Type)
}

func TestToggleLikeResponseShape(t *testing.T) {
	eng := &stubEngagement{res: &dto.ToggleResult{VideoID: 2, Active: true, Count: 11}}
	h := NewEngagementHandler(eng)
	r := gin.New()
	r.PUT("/videos/:id/like", withPrincipal(viewer), h.ToggleLike)
	r.POST("/videos/:id/save", withPrincipal(viewer), h.ToggleSave)

	w := serve(r, http.MethodPut, "/videos/2/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	var liked struct {
		Liked bool  `json:"liked"`
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &liked))
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(11), liked.Count)

	eng.res = &dto.ToggleResult{VideoID: 2, Active: false, Count: 0}
	w = serve(r, http.MethodPost, "/videos/2/save", "")
	require.Equal(t, http.StatusOK, w.Code)
	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &saved))
	assert.Equal(t, false, saved["saved"])
	assert.Equal(t, float64(0), saved["count"])
}

func TestToggleErrors(t *testing.T) {
	eng := &stubEngagement{}
	r := gin.New()
	r.PUT("/videos/:id/like", withPrincipal(viewer), NewEngagementHandler(eng).ToggleLike)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPut, "/videos/abc/like", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPut, "/videos/0/like", "").Code)

	eng.err = service.ErrVideoNotFound
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPut, "/videos/1/like", "").Code)

	eng.err = fmt.Errorf("boom")
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodPut, "/videos/1/like", "").Code)
}

func TestCreateCommentValidation(t *testing.T) {
	comments := &stubComments{}
	r := gin.New()
	r.POST("/videos/:id/comments", withPrincipal(viewer), NewCommentHandler(comments).Create)

	w := serve(r, http.MethodPost, "/videos/4/comments", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/videos/4/comments", `{"text":"delicious"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "delicious", comments.text)

	comments.err = service.ErrVideoNotFound
	w = serve(r, http.MethodPost, "/videos/4/comments", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentErrorMapping(t *testing.T) {
	comments := &stubComments{}
	r := gin.New()
	r.DELETE("/comments/:id", withPrincipal(viewer), NewCommentHandler(comments).Delete)

	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{service.ErrCommentNotFound, http.StatusNotFound},
		{service.ErrCommentNoPermission, http.StatusForbidden},
		{fmt.Errorf("%w: %w", service.ErrStoreUnavailable, fmt.Errorf("down")), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		comments.err = tt.err
		assert.Equal(t, tt.status, serve(r, http.MethodDelete, "/comments/8", "").Code, "%v", tt.err)
	}
}

func TestUpdateProfileResolvesPartnerID(t *testing.T) {
	partners := &stubPartners{}
	h := NewPartnerHandler(partners)
	r := gin.New()
	r.PUT("/partners/profile", withPrincipal(partner), h.UpdateProfile)
	r.PUT("/partners/:id/profile", withPrincipal(partner), h.UpdateProfile)

	w := serve(r, http.MethodPut, "/partners/profile", `{"shop_name":"New"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), partners.partnerID)

	serve(r, http.MethodPut, "/partners/12/profile", `{"shop_name":"New"}`)
	assert.Equal(t, int64(12), partners.partnerID)

	partners.err = service.ErrProfileNoPermission
	w = serve(r, http.MethodPut, "/partners/12/profile", `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPut, "/partners/x/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPartnerVideosNotFound(t *testing.T) {
	partners := &stubPartners{err: service.ErrPartnerNotFound}
	r := gin.New()
	r.GET("/partners/:id/videos", NewPartnerHandler(partners).GetVideos)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/partners/3/videos", "").Code)
}

func TestSearchRequiresKeyword(t *testing.T) {
	search := &stubSearch{}
	r := gin.New()
	r.GET("/search", NewSearchHandler(search).SearchVideos)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/search", "").Code)

	w := serve(r, http.MethodGet, "/search?q=taco&page=2&limit=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "taco", search.keyword)
}

func TestCreateVideo(t *testing.T) {
	pub := &stubPublisher{}
	h := NewVideoHandler(&stubFeed{}, pub)
	r := gin.New()
	r.POST("/videos", withPrincipal(partner), h.Create)
	r.PUT("/videos/:id/order-link", withPrincipal(partner), h.SetOrderLink)

	w := serve(r, http.MethodPost, "/videos", `{"title":"Birria","description":"d","video_url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/videos", `{"title":"Birria","description":"d","video_url":"https://cdn.example.com/b.mp4"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	pub.err = service.ErrInvalidAsset
	w = serve(r, http.MethodPost, "/videos", `{"title":"Birria","description":"d","video_url":"https://cdn.example.com/b.mp4"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pub.err = service.ErrVideoNotFound
	w = serve(r, http.MethodPut, "/videos/3/order-link", `{"external_order_link":"https://order.example.com/x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
