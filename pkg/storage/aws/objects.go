// File: pkg/storage/aws/objects.go
package aws

import (
	"bytes"
	"context"

	"sitedeploy/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func (s *AWSStorage) PutObject(ctx context.Context, bucketName string, object storage.ObjectInput) error {
	s.logger.Debug("Starting S3 PutObject", "bucket", bucketName, "key", object.Key, "size", len(object.Content))

	input := &s3.PutObjectInput{
		Bucket:        awssdk.String(bucketName),
		Key:           awssdk.String(object.Key),
		Body:          bytes.NewReader(object.Content),
		ContentLength: awssdk.Int64(int64(len(object.Content))),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if object.ContentType != "" {
		input.ContentType = awssdk.String(object.ContentType)
	}

	if _, err := s.s3Client.PutObject(ctx, input); err != nil {
		return classifyError(err, "writing s3://%s/%s", bucketName, object.Key)
	}
	return nil
}
