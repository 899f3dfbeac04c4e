// File: internal/site/namespace.go
package site

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"

	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
)

// Namespace is one storage container. Its name doubles as the redirect target host
type Namespace struct {
	name    string
	created bool
	backend storage.Storage
	logger  *slog.Logger
}

func (n *Namespace) Name() string {
	return n.name
}

// Reports whether this run created the container
func (n *Namespace) Created() bool {
	return n.created
}

// Writes content under objectName with public-read access, replacing any
// existing object of that name
func (n *Namespace) Write(ctx context.Context, objectName string, content []byte) error {
	contentType := detectContentType(objectName, content)
	n.logger.Debug("Writing object", "object", objectName, "size", storage.FormatBytes(int64(len(content))), "content_type", contentType)

	err := n.backend.PutObject(ctx, n.name, storage.ObjectInput{
		Key:         objectName,
		Content:     content,
		ContentType: contentType,
	})
	if err != nil {
		return serrors.Wrap(serrors.ErrUploadFailed, err, "failed to upload %s to %s", objectName, n.name)
	}
	return nil
}

// Applies cfg to the container. Applying the same configuration again leaves the same state
func (n *Namespace) SetWebsiteConfiguration(ctx context.Context, cfg WebsiteConfig) error {
	website, err := Translate(cfg)
	if err != nil {
		return err
	}

	if err := n.backend.PutBucketWebsite(ctx, n.name, website); err != nil {
		return fmt.Errorf("failed to configure website on %s: %w", n.name, err)
	}
	n.logger.Info("Configured website", "website", website.String())
	return nil
}

// Extension first, so text formats keep their specific type (text/css, not text/plain)
func detectContentType(objectName string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(objectName)); ct != "" {
		return ct
	}
	return mimetype.Detect(content).String()
}
