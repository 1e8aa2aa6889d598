package minio

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保所有 Bucket 存在
// 媒体 Bucket 统一公开读，返回的 URL 可直接访问
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

	for _, bucket := range cfg.Buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}

		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			return fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("buckets", len(cfg.Buckets)),
	)

	return nil
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// UploadLocalFile 上传本地文件到指定 Bucket，返回可公开访问的 URL
func UploadLocalFile(ctx context.Context, bucket, objectName, filePath string) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := client.FPutObject(ctx, bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	cfg := config.GetMinIO()
	return GetPublicURL(cfg.Endpoint, cfg.UseSSL, bucket, objectName), nil
}

// RemoveByURL 根据之前返回的公开 URL 删除远端对象（上传回滚用）
func RemoveByURL(ctx context.Context, fileURL string) error {
	cfg := config.GetMinIO()
	bucket, objectName, err := parsePublicURL(cfg.Endpoint, fileURL)
	if err != nil {
		return err
	}
	return client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
}

// GetPublicURL 生成公开访问 URL（需要 Bucket 设置为 public-read）
func GetPublicURL(endpoint string, useSSL bool, bucket, objectName string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}

// parsePublicURL 从公开 URL 中还原 bucket 和对象名
func parsePublicURL(endpoint, fileURL string) (bucket, objectName string, err error) {
	idx := strings.Index(fileURL, endpoint)
	if idx < 0 {
		return "", "", fmt.Errorf("url %q does not belong to endpoint %s", fileURL, endpoint)
	}

	path := strings.TrimPrefix(fileURL[idx+len(endpoint):], "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse object path from url %q", fileURL)
	}
	return parts[0], parts[1], nil
}

// Storage 以对象形式暴露媒体托管操作，便于服务层按接口依赖
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) UploadFile(ctx context.Context, bucket, objectName, filePath string) (string, error) {
	return UploadLocalFile(ctx, bucket, objectName, filePath)
}

func (s *Storage) Remove(ctx context.Context, fileURL string) error {
	return RemoveByURL(ctx, fileURL)
}
