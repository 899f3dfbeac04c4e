// File: pkg/storage/aws/client.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sitedeploy/internal/config"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

func init() {
	registry.RegisterProvider(common.AWS, registry.ProviderRegistration{
		Description: "Amazon S3, or any S3-compatible endpoint via aws.endpoint",
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Only the region is required here. Missing keys surface as an authentication
// failure from VerifyCredentials, before any bucket call
func isConfigured(cfg *config.Config) error {
	if cfg.AWS.Region == "" {
		return errors.New("aws.region is not set. Use 'sitedeploy config set aws.region <region>'")
	}
	return nil
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	return NewAWSStorage(ctx, cfg.AWS, logger)
}

// The subset of the S3 client used here
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutBucketWebsite(ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type AWSStorage struct {
	s3Client       s3API
	stsClient      stsAPI
	region         string
	endpoint       string
	hasCredentials bool
	logger         *slog.Logger
}

var _ storage.Storage = (*AWSStorage)(nil)

// Builds S3 and STS clients from explicit configuration. The static credentials
// provider is always installed so the SDK never falls back to ambient credentials
func NewAWSStorage(ctx context.Context, cfg config.AWSConfig, logger *slog.Logger) (*AWSStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = awssdk.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newAWSStorage(s3Client, sts.NewFromConfig(awsCfg), cfg, logger), nil
}

func newAWSStorage(s3Client s3API, stsClient stsAPI, cfg config.AWSConfig, logger *slog.Logger) *AWSStorage {
	return &AWSStorage{
		s3Client:       s3Client,
		stsClient:      stsClient,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		hasCredentials: cfg.AccessKeyID != "" && cfg.SecretAccessKey != "",
		logger:         logger,
	}
}

func (s *AWSStorage) ProviderName() common.Provider {
	return common.AWS
}

func (s *AWSStorage) SupportsWebsiteRedirect() bool {
	return true
}

func (s *AWSStorage) VerifyCredentials(ctx context.Context) error {
	if !s.hasCredentials {
		return serrors.With(serrors.ErrAuthentication, "AWS credentials are not set. Export AWS_ID and AWS_SECRET")
	}

	// S3-compatible services rarely implement STS
	if s.endpoint != "" {
		s.logger.Debug("Verifying credentials with ListBuckets", "endpoint", s.endpoint)
		if _, err := s.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
			return classifyError(err, "verifying credentials against %s", s.endpoint)
		}
		return nil
	}

	out, err := s.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return classifyError(err, "verifying AWS credentials")
	}
	s.logger.Debug("Using AWS account for object storage", "account", awssdk.ToString(out.Account))
	return nil
}

func (s *AWSStorage) Close() error {
	return nil
}
