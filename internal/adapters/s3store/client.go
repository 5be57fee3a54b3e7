package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var errNoSuchKey = errors.New("no such key")

// objectClient is the subset of object storage operations used by Store.
type objectClient interface {
	EnsureBucket(ctx context.Context, bucket, region string) error
	Put(ctx context.Context, bucket, key string, data []byte) error
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// ClientOptions configures the connection to an S3-compatible endpoint.
type ClientOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

type minioClient struct {
	mc *minio.Client
}

func newMinioClient(opts ClientOptions) (*minioClient, error) {
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &minioClient{mc: mc}, nil
}

func (c *minioClient) EnsureBucket(ctx context.Context, bucket, region string) error {
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
	if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
		return nil
	}
	return err
}

func (c *minioClient) Put(ctx context.Context, bucket, key string, data []byte) error {
	_, err := c.mc.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (c *minioClient) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	// Cancelling stops the listing goroutine when returning early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var keys []string
	for obj := range c.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: false}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (c *minioClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

func translate(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.Join(errNoSuchKey, err)
	}
	return err
}
