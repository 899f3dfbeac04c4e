// File: pkg/storage/aws/buckets.go
package aws

import (
	"context"
	"errors"

	"sitedeploy/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Buckets in this region must be created without a location constraint
const defaultRegion = "us-east-1"

func (s *AWSStorage) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	s.logger.Debug("Starting S3 HeadBucket", "bucket", bucketName)

	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: awssdk.String(bucketName),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchBucket") {
		return false, nil
	}
	return false, classifyError(err, "checking bucket %s", bucketName)
}

// Creates the bucket with object ownership left to the writer, so per-object
// public-read ACLs are honoured once public access is opened by PutBucketWebsite
func (s *AWSStorage) CreateBucket(ctx context.Context, bucketName string) error {
	s.logger.Debug("Starting S3 CreateBucket", "bucket", bucketName, "region", s.region)

	input := &s3.CreateBucketInput{
		Bucket:          awssdk.String(bucketName),
		ObjectOwnership: types.ObjectOwnershipObjectWriter,
	}
	if s.region != "" && s.region != defaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.s3Client.CreateBucket(ctx, input); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if !errors.As(err, &owned) {
			return classifyError(err, "creating bucket %s", bucketName)
		}
		s.logger.Debug("Bucket already owned by caller", "bucket", bucketName)
	}
	return nil
}

// Lifts the public access block on every website update, so a bucket whose
// creation was interrupted is repaired by the next deploy. Custom endpoints
// rarely implement the API and are left alone
func (s *AWSStorage) openPublicAccess(ctx context.Context, bucketName string) error {
	if s.endpoint != "" {
		return nil
	}

	_, err := s.s3Client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: awssdk.String(bucketName),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       awssdk.Bool(false),
			IgnorePublicAcls:      awssdk.Bool(false),
			BlockPublicPolicy:     awssdk.Bool(false),
			RestrictPublicBuckets: awssdk.Bool(false),
		},
	})
	if err != nil {
		return classifyError(err, "opening public access on bucket %s", bucketName)
	}
	return nil
}

func (s *AWSStorage) PutBucketWebsite(ctx context.Context, bucketName string, website storage.WebsiteConfiguration) error {
	s.logger.Debug("Starting S3 PutBucketWebsite", "bucket", bucketName, "website", website.String())

	if err := s.openPublicAccess(ctx, bucketName); err != nil {
		return err
	}

	_, err := s.s3Client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket:               awssdk.String(bucketName),
		WebsiteConfiguration: mapWebsiteConfiguration(website),
	})
	if err != nil {
		return classifyError(err, "configuring website on bucket %s", bucketName)
	}
	return nil
}
