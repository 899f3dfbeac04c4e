// File: pkg/storage/gcp/buckets.go
package gcp

import (
	"context"
	"errors"

	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
)

func (g *GCPStorage) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	g.logger.Debug("Starting GCP bucket attributes lookup", "bucket", bucketName)

	_, err := g.client.Bucket(bucketName).Attrs(ctx)
	if errors.Is(err, gcpstorage.ErrBucketNotExist) {
		return false, nil
	}
	if err != nil {
		return false, classifyError(err, "checking bucket %s", bucketName)
	}
	return true, nil
}

// Creates the bucket with fine-grained access so per-object publicRead ACLs apply
func (g *GCPStorage) CreateBucket(ctx context.Context, bucketName string) error {
	g.logger.Debug("Starting GCP CreateBucket", "bucket", bucketName, "location", g.location)

	attrs := &gcpstorage.BucketAttrs{
		Location:                 g.location,
		UniformBucketLevelAccess: gcpstorage.UniformBucketLevelAccess{Enabled: false},
		PublicAccessPrevention:   gcpstorage.PublicAccessPreventionInherited,
	}
	if err := g.client.Bucket(bucketName).Create(ctx, g.projectID, attrs); err != nil {
		return classifyError(err, "creating bucket %s", bucketName)
	}
	return nil
}

func (g *GCPStorage) PutBucketWebsite(ctx context.Context, bucketName string, website storage.WebsiteConfiguration) error {
	g.logger.Debug("Starting GCP website update", "bucket", bucketName, "website", website.String())

	bucketWebsite, err := mapWebsiteConfiguration(website)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnsupported, err, "configuring website on bucket %s", bucketName)
	}

	_, err = g.client.Bucket(bucketName).Update(ctx, gcpstorage.BucketAttrsToUpdate{
		Website: bucketWebsite,
	})
	if err != nil {
		return classifyError(err, "configuring website on bucket %s", bucketName)
	}
	return nil
}
