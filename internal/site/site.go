// File: internal/site/site.go
package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"sitedeploy/pkg/serrors"
)

const (
	domainSuffix = ".com"
	wwwPrefix    = "www."
)

// Phase is the point a Site has reached. Phases only move forward
type Phase int

const (
	PhaseConstructed Phase = iota
	PhaseConfigured
	PhaseUploaded
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseConfigured:
		return "configured"
	case PhaseUploaded:
		return "uploaded"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// File is one local input. Name is the object name it is stored under
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Site owns the bare-domain container, which serves the content, and the www
// container, which redirects to it
type Site struct {
	base   *Namespace
	www    *Namespace
	phase  Phase
	logger *slog.Logger
}

// Container name serving the site for domain
func BaseName(domain string) string {
	return strings.ToLower(domain) + domainSuffix
}

// Container name redirecting to BaseName(domain)
func WWWName(domain string) string {
	return wwwPrefix + BaseName(domain)
}

// Resolves or creates both containers for domain, base first
func New(ctx context.Context, store *Store, domain string, logger *slog.Logger) (*Site, error) {
	if domain == "" {
		return nil, serrors.With(serrors.ErrInvalidArgument, "domain must not be empty")
	}

	base, err := store.Namespace(ctx, BaseName(domain))
	if err != nil {
		return nil, err
	}
	www, err := store.Namespace(ctx, WWWName(domain))
	if err != nil {
		return nil, err
	}

	return &Site{
		base:   base,
		www:    www,
		phase:  PhaseConstructed,
		logger: logger.With("component", "Site", "site", base.Name()),
	}, nil
}

func (s *Site) Base() *Namespace { return s.base }
func (s *Site) WWW() *Namespace  { return s.www }
func (s *Site) Phase() Phase     { return s.phase }

// Makes the base container serve directly and the www container redirect to it
func (s *Site) ConfigureWebsite(ctx context.Context) error {
	if s.phase != PhaseConstructed {
		return serrors.With(serrors.ErrOutOfOrder, "website for %s is already %s", s.base.Name(), s.phase)
	}

	if err := s.base.SetWebsiteConfiguration(ctx, Direct{}); err != nil {
		return err
	}
	if err := s.www.SetWebsiteConfiguration(ctx, RedirectTo{Target: s.base}); err != nil {
		return err
	}

	s.phase = PhaseConfigured
	return nil
}

// Uploads files to the base container in the order given and returns the object
// names written. The first failure stops the upload; objects already written stay.
// A later file with the same name replaces an earlier one
func (s *Site) UploadFiles(ctx context.Context, files []File) ([]string, error) {
	if s.phase == PhaseConstructed {
		return nil, serrors.With(serrors.ErrOutOfOrder, "website for %s must be configured before uploading", s.base.Name())
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := s.upload(ctx, f); err != nil {
			return written, err
		}
		written = append(written, f.Name())
	}

	s.phase = PhaseUploaded
	s.logger.Info("Uploaded files", "count", len(written))
	return written, nil
}

func (s *Site) upload(ctx context.Context, f File) error {
	rc, err := f.Open()
	if err != nil {
		return serrors.Wrap(serrors.ErrLocalIO, err, "failed to open %s", f.Name())
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return serrors.Wrap(serrors.ErrLocalIO, err, "failed to read %s", f.Name())
	}

	if err := s.base.Write(ctx, f.Name(), content); err != nil {
		return err
	}
	s.logger.Info("Uploaded file", "object", f.Name(), "size", len(content))
	return nil
}
