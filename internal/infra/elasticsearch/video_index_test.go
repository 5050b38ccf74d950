package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodscroll-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*VideoIndex, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		// 客户端会校验产品头
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient([]string{srv.URL})
	require.NoError(t, err)
	return NewVideoIndex(es, "videos-test"), &reqs
}

func TestNewClientRejectsEmptyHosts(t *testing.T) {
	_, err := NewClient([]string{" ", ""})
	assert.Error(t, err)
}

func TestIndexVideo(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.IndexVideo(context.Background(), &model.Video{
		ID: 42, PartnerID: 7, Title: "Birria", LikeCount: 3,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, *reqs, 1)

	r := (*reqs)[0]
	assert.Equal(t, http.MethodPut, r.method)
	assert.Equal(t, "/videos-test/_doc/42", r.path)

	var doc VideoDoc
	require.NoError(t, json.Unmarshal([]byte(r.body), &doc))
	assert.Equal(t, int64(7), doc.PartnerID)
	assert.Equal(t, int64(3), doc.LikeCount)
	assert.Equal(t, "2024-01-02T03:04:05Z", doc.CreatedAt)
}

func TestIndexVideoError(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})

	err := idx.IndexVideo(context.Background(), &model.Video{ID: 1})
	assert.Error(t, err)
}

func TestSearchVideoIDs(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":12},"hits":[{"_source":{"id":5}},{"_source":{"id":3}}]}}`))
	})

	ids, total, err := idx.SearchVideoIDs(context.Background(), "taco", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3}, ids)
	assert.Equal(t, int64(12), total)

	r := (*reqs)[0]
	assert.Equal(t, "/videos-test/_search", r.path)
	assert.True(t, strings.Contains(r.body, `"multi_match"`))
	assert.True(t, strings.Contains(r.body, `"from":10`))
}

func TestBulkIndex(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`))
	})

	success, failed, err := idx.BulkIndex(context.Background(), []model.Video{{ID: 1}, {ID: 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 4, strings.Count((*reqs)[0].body, "\n"))

	success, failed, err = idx.BulkIndex(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, success+failed)
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPut, (*reqs)[1].method)
	assert.Contains(t, (*reqs)[1].body, `"partner_id"`)
}
