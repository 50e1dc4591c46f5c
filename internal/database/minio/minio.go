package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
)

// MinioClient wraps a minio connection scoped to the diagnosis-image bucket.
type MinioClient struct {
	client *minio.Client
	bucket string
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO: %w", err)
	}

	if err := ensureBucket(client, cfg.Bucket, cfg.Location); err != nil {
		return nil, err
	}

	// Uploaded images are served back by URL, so the bucket is public
	// read-only.
	if err := setPublicBucketPolicy(client, cfg.Bucket); err != nil {
		return nil, err
	}

	return &MinioClient{client: client, bucket: cfg.Bucket}, nil
}

func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucketName, err)
		}
	}

	return nil
}

func setPublicBucketPolicy(client *minio.Client, bucketName string) error {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Action":    []string{"s3:GetObject"},
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucketName)},
			},
		},
	}

	policyBytes, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("error marshalling policy: %w", err)
	}

	if err := client.SetBucketPolicy(context.Background(), bucketName, string(policyBytes)); err != nil {
		return fmt.Errorf("error setting bucket policy: %w", err)
	}

	return nil
}

func (mc *MinioClient) UploadFile(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) error {
	_, err := mc.client.PutObject(ctx, mc.bucket, fileName, reader, size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	return err
}

func (mc *MinioClient) DeleteFile(ctx context.Context, fileName string) error {
	if fileName == "" {
		return fmt.Errorf("fileName cannot be empty")
	}
	return mc.client.RemoveObject(ctx, mc.bucket, fileName, minio.RemoveObjectOptions{})
}

func (mc *MinioClient) Bucket() string {
	return mc.bucket
}
