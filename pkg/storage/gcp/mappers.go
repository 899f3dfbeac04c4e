// File: pkg/storage/gcp/mappers.go
package gcp

import (
	"errors"
	"fmt"
	"net/http"

	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCS website settings only cover the main page and not-found page, so a
// redirect of every request has no equivalent
func mapWebsiteConfiguration(w storage.WebsiteConfiguration) (*gcpstorage.BucketWebsite, error) {
	if w.IsRedirect() {
		return nil, fmt.Errorf("GCS buckets cannot redirect all requests to %s", w.RedirectAllRequestsTo.HostName)
	}
	return &gcpstorage.BucketWebsite{MainPageSuffix: storage.DefaultIndexDocument}, nil
}

func errorKind(err error) serrors.Kind {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			return serrors.ErrAuthentication
		case http.StatusForbidden:
			return serrors.ErrPermissionDenied
		case http.StatusBadRequest, http.StatusConflict:
			return serrors.ErrInvalidArgument
		}
	}
	return serrors.ErrUnavailable
}

func classifyError(err error, msgFmt string, args ...any) error {
	return serrors.Wrap(errorKind(err), err, msgFmt, args...)
}
