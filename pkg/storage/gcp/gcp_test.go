package gcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sitedeploy/internal/config"
	"sitedeploy/internal/logger"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestIsConfigured(t *testing.T) {
	require.Error(t, isConfigured(&config.Config{}))
	require.NoError(t, isConfigured(&config.Config{GCP: config.GCPConfig{Project: "my-project"}}))
}

func TestMapWebsiteConfiguration_Direct(t *testing.T) {
	website, err := mapWebsiteConfiguration(storage.WebsiteConfiguration{})
	require.NoError(t, err)
	require.Equal(t, "index.html", website.MainPageSuffix)
	require.Empty(t, website.NotFoundPage)
}

func TestMapWebsiteConfiguration_RedirectUnsupported(t *testing.T) {
	_, err := mapWebsiteConfiguration(storage.WebsiteConfiguration{
		RedirectAllRequestsTo: &storage.RedirectAllRequestsTo{HostName: "example.com"},
	})
	require.ErrorContains(t, err, "example.com")
}

func TestSupportsWebsiteRedirect(t *testing.T) {
	require.False(t, (&GCPStorage{}).SupportsWebsiteRedirect())
}

func TestPutBucketWebsite_RedirectFailsBeforeAnyCall(t *testing.T) {
	// No client: the redirect must be rejected without touching GCS
	g := &GCPStorage{logger: logger.Discard()}

	err := g.PutBucketWebsite(context.Background(), "www.example.com", storage.WebsiteConfiguration{
		RedirectAllRequestsTo: &storage.RedirectAllRequestsTo{HostName: "example.com"},
	})
	require.ErrorIs(t, err, serrors.ErrUnsupported)
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{"unauthorized", &googleapi.Error{Code: 401}, serrors.ErrAuthentication},
		{"forbidden", &googleapi.Error{Code: 403}, serrors.ErrPermissionDenied},
		{"bad request", &googleapi.Error{Code: 400}, serrors.ErrInvalidArgument},
		{"name taken", &googleapi.Error{Code: 409}, serrors.ErrInvalidArgument},
		{"server error", &googleapi.Error{Code: 503}, serrors.ErrUnavailable},
		{"wrapped", fmt.Errorf("create: %w", &googleapi.Error{Code: 403}), serrors.ErrPermissionDenied},
		{"network", errors.New("connection reset by peer"), serrors.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, errorKind(tc.err))
		})
	}
}

func TestClassifyErrorKeepsCause(t *testing.T) {
	cause := &googleapi.Error{Code: 403, Message: "caller does not have storage.objects.create access"}
	err := classifyError(cause, "writing gs://%s/%s", "example.com", "index.html")

	require.ErrorIs(t, err, serrors.ErrPermissionDenied)
	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, err.Error(), "gs://example.com/index.html")
}
