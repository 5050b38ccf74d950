package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodscroll-go/internal/model"
	"foodscroll-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID            int64  `json:"id"`
	PartnerID     int64  `json:"partner_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	LikeCount     int64  `json:"like_count"`
	SavesCount    int64  `json:"saves_count"`
	CommentsCount int64  `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
}

func toVideoDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:            v.ID,
		PartnerID:     v.PartnerID,
		Title:         v.Title,
		Description:   v.Description,
		LikeCount:     v.LikeCount,
		SavesCount:    v.SavesCount,
		CommentsCount: v.CommentsCount,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}

// VideoIndex 视频索引读写
type VideoIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewVideoIndex(client *elasticsearch.Client, index string) *VideoIndex {
	return &VideoIndex{client: client, index: index}
}

// IndexVideo 写入或覆盖单个视频文档
func (x *VideoIndex) IndexVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(toVideoDoc(v))
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// BulkIndex 批量写入视频文档，返回成功与失败数
func (x *VideoIndex) BulkIndex(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	if len(videos) == 0 {
		return 0, 0, nil
	}

	var buf strings.Builder
	for i := range videos {
		doc, err := json.Marshal(toVideoDoc(&videos[i]))
		if err != nil {
			return 0, len(videos), err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":"%s","_id":"%d"}}`+"\n", x.index, videos[i].ID)
		buf.Write(doc)
		buf.WriteString("\n")
	}

	resp, err := x.client.Bulk(strings.NewReader(buf.String()), x.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchVideoIDs 标题/描述全文检索，标题权重更高
func (x *VideoIndex) SearchVideoIDs(ctx context.Context, keyword string, from, size int) ([]int64, int64, error) {
	query := map[string]interface{}{
		"from":    from,
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keyword,
				"fields": []string{"title^3", "description"},
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, result.Hits.Total.Value, nil
}
