// File: pkg/storage/storage.go
package storage

import (
	"context"

	"sitedeploy/pkg/common"
)

// Storage is the provider-facing contract used by the deploy workflow.
// Implementations classify their SDK errors into serrors kinds.
type Storage interface {
	ProviderName() common.Provider

	// Fails with serrors.ErrAuthentication before any container call when credentials are missing or rejected
	VerifyCredentials(ctx context.Context) error

	BucketExists(ctx context.Context, bucketName string) (bool, error)
	CreateBucket(ctx context.Context, bucketName string) error

	// Writes the object with public-read access, replacing any existing object of the same key
	PutObject(ctx context.Context, bucketName string, object ObjectInput) error

	PutBucketWebsite(ctx context.Context, bucketName string, website WebsiteConfiguration) error
	// Reports whether PutBucketWebsite accepts a configuration that redirects all requests
	SupportsWebsiteRedirect() bool

	Close() error
}
