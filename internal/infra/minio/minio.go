package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"foodscroll-go/internal/config"
	"foodscroll-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并检查公开视频桶
// 桶由上传服务创建，这里只读
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.PublicBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.PublicBucket, err)
	}
	if !exists {
		logger.Warn("MinIO public bucket not found", zap.String("bucket", cfg.PublicBucket))
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("public_bucket", cfg.PublicBucket),
	)

	return nil
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// objectFromURL 从公开 URL 解析对象名，URL 不在该桶下时 ok 为 false
func objectFromURL(rawURL, endpoint, bucket string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Host, endpoint) {
		return "", false
	}
	prefix := "/" + bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	object := strings.TrimPrefix(u.Path, prefix)
	if object == "" {
		return "", false
	}
	return object, true
}

// objectStater minio.Client 的最小子集
type objectStater interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// AssetVerifier 校验发布视频引用的资源确实已上传
// 只校验指向公开桶的 URL，其他 CDN 地址视为存在
type AssetVerifier struct {
	stater   objectStater
	endpoint string
	bucket   string
}

func NewAssetVerifier(c *minio.Client, cfg *config.MinIOConfig) *AssetVerifier {
	return &AssetVerifier{stater: c, endpoint: cfg.Endpoint, bucket: cfg.PublicBucket}
}

// Exists 对象不存在返回 (false, nil)，存储不可达返回 error
func (v *AssetVerifier) Exists(ctx context.Context, rawURL string) (bool, error) {
	object, ok := objectFromURL(rawURL, v.endpoint, v.bucket)
	if !ok {
		return true, nil
	}

	_, err := v.stater.StatObject(ctx, v.bucket, object, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return false, nil
	}
	return false, fmt.Errorf("stat object %s: %w", object, err)
}
