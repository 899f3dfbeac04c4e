// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"

	"sitedeploy/pkg/storage"
)

// Predefined object ACL granting allUsers read access
const publicReadACL = "publicRead"

func (g *GCPStorage) PutObject(ctx context.Context, bucketName string, object storage.ObjectInput) error {
	g.logger.Debug("Starting GCP object write", "bucket", bucketName, "key", object.Key, "size", storage.FormatBytes(int64(len(object.Content))))

	w := g.client.Bucket(bucketName).Object(object.Key).NewWriter(ctx)
	w.PredefinedACL = publicReadACL
	if object.ContentType != "" {
		w.ContentType = object.ContentType
	}

	if _, err := w.Write(object.Content); err != nil {
		_ = w.Close()
		return classifyError(err, "writing gs://%s/%s", bucketName, object.Key)
	}
	// The upload is only committed once Close returns
	if err := w.Close(); err != nil {
		return classifyError(err, "writing gs://%s/%s", bucketName, object.Key)
	}
	return nil
}
