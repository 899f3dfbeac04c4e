// File: internal/site/website.go
package site

import (
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
)

// WebsiteConfig is the website role of a container: Direct or RedirectTo.
// The set of variants is closed
type WebsiteConfig interface {
	websiteConfig()
}

// The container serves its own objects
type Direct struct{}

// Every request is redirected to Target's name
type RedirectTo struct {
	Target *Namespace
}

func (Direct) websiteConfig()     {}
func (RedirectTo) websiteConfig() {}

// Converts a website role into the provider-neutral configuration. Direct yields
// the empty configuration, RedirectTo yields a redirect of all requests and nothing else
func Translate(cfg WebsiteConfig) (storage.WebsiteConfiguration, error) {
	switch c := cfg.(type) {
	case Direct:
		return storage.WebsiteConfiguration{}, nil
	case RedirectTo:
		if c.Target == nil {
			return storage.WebsiteConfiguration{}, serrors.With(serrors.ErrInvalidArgument, "redirect has no target container")
		}
		return storage.WebsiteConfiguration{
			RedirectAllRequestsTo: &storage.RedirectAllRequestsTo{HostName: c.Target.Name()},
		}, nil
	default:
		return storage.WebsiteConfiguration{}, serrors.With(serrors.ErrInvalidArgument, "unknown website configuration %T", cfg)
	}
}
