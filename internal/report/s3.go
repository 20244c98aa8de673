package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/rahilkadakia/gcevm/internal/config"
)

// Uploader pushes sweep reports to an S3-compatible object store.
type Uploader struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// NewUploader creates an uploader from the report S3 configuration.
// Credentials missing from the config fall back to the GCEVM_S3_ACCESS_KEY
// and GCEVM_S3_SECRET_KEY environment variables.
func NewUploader(cfg *config.S3Config) (*Uploader, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 upload requires a bucket")
	}

	accessKey := cfg.AccessKey
	if accessKey == "" {
		accessKey = os.Getenv("GCEVM_S3_ACCESS_KEY")
	}
	secretKey := cfg.SecretKey
	if secretKey == "" {
		secretKey = os.Getenv("GCEVM_S3_SECRET_KEY")
	}
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("s3 upload requires credentials (config or GCEVM_S3_ACCESS_KEY/GCEVM_S3_SECRET_KEY)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion(regionOrDefault(cfg.Region)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Path style works across MinIO and other S3-compatible stores.
		o.UsePathStyle = true
	})

	return &Uploader{
		s3:     client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func regionOrDefault(region string) string {
	if region == "" {
		return "us-east-1"
	}
	return region
}

// EnsureBucket creates the bucket if it does not already exist.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	_, err := u.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
	}
	return nil
}

// Upload puts the report under the given object key.
func (u *Uploader) Upload(ctx context.Context, key string, r *Report) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	if u.prefix != "" {
		key = u.prefix + "/" + key
	}

	_, err = u.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s to bucket %s: %w", key, u.bucket, err)
	}
	return nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists
// and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// Some S3-compatible services do not return the exact SDK error types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}
