package site_test

import (
	"context"
	"testing"

	"sitedeploy/internal/logger"
	"sitedeploy/internal/site"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
	"sitedeploy/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestTranslate_Direct(t *testing.T) {
	got, err := site.Translate(site.Direct{})
	require.NoError(t, err)
	require.Equal(t, storage.WebsiteConfiguration{}, got)
	require.False(t, got.IsRedirect())
}

func TestTranslate_Redirect(t *testing.T) {
	ns, err := site.NewStore(memory.New(), logger.Discard()).Namespace(context.Background(), "example.com")
	require.NoError(t, err)

	got, err := site.Translate(site.RedirectTo{Target: ns})
	require.NoError(t, err)
	require.Equal(t, storage.WebsiteConfiguration{
		RedirectAllRequestsTo: &storage.RedirectAllRequestsTo{HostName: "example.com"},
	}, got)
}

func TestTranslate_RedirectWithoutTarget(t *testing.T) {
	_, err := site.Translate(site.RedirectTo{})
	require.ErrorIs(t, err, serrors.ErrInvalidArgument)
}

func TestTranslate_Nil(t *testing.T) {
	_, err := site.Translate(nil)
	require.ErrorIs(t, err, serrors.ErrInvalidArgument)
}

func TestNamespace_WriteContentTypes(t *testing.T) {
	backend := memory.New()
	ns, err := site.NewStore(backend, logger.Discard()).Namespace(context.Background(), "example.com")
	require.NoError(t, err)

	require.NoError(t, ns.Write(context.Background(), "style.css", []byte("body{}")))
	require.NoError(t, ns.Write(context.Background(), "logo", []byte("\x89PNG\r\n\x1a\n0000")))

	b, _ := backend.Bucket("example.com")
	require.Equal(t, "text/css; charset=utf-8", b.Objects["style.css"].ContentType)
	require.Equal(t, "image/png", b.Objects["logo"].ContentType)
}

func TestNamespace_SetWebsiteConfigurationIsIdempotent(t *testing.T) {
	backend := memory.New()
	ns, err := site.NewStore(backend, logger.Discard()).Namespace(context.Background(), "example.com")
	require.NoError(t, err)

	require.NoError(t, ns.SetWebsiteConfiguration(context.Background(), site.Direct{}))
	first, _ := backend.Bucket("example.com")
	require.NoError(t, ns.SetWebsiteConfiguration(context.Background(), site.Direct{}))
	second, _ := backend.Bucket("example.com")

	require.Equal(t, first.Website, second.Website)
}
