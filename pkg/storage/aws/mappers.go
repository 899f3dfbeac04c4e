// File: pkg/storage/aws/mappers.go
package aws

import (
	"errors"

	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// A redirect produces RedirectAllRequestsTo and nothing else; otherwise the
// bucket serves its own index document
func mapWebsiteConfiguration(w storage.WebsiteConfiguration) *types.WebsiteConfiguration {
	if r := w.RedirectAllRequestsTo; r != nil {
		return &types.WebsiteConfiguration{
			RedirectAllRequestsTo: &types.RedirectAllRequestsTo{HostName: awssdk.String(r.HostName)},
		}
	}

	return &types.WebsiteConfiguration{
		IndexDocument: &types.IndexDocument{Suffix: awssdk.String(storage.DefaultIndexDocument)},
	}
}

var (
	authenticationCodes = map[string]bool{
		"InvalidAccessKeyId":          true,
		"SignatureDoesNotMatch":       true,
		"InvalidClientTokenId":        true,
		"ExpiredToken":                true,
		"ExpiredTokenException":       true,
		"InvalidToken":                true,
		"UnrecognizedClientException": true,
		"AuthFailure":                 true,
	}
	permissionCodes = map[string]bool{
		"AccessDenied":          true,
		"AccessDeniedException": true,
		"Forbidden":             true,
		"AllAccessDisabled":     true,
		"AccountProblem":        true,
	}
	invalidArgumentCodes = map[string]bool{
		"InvalidBucketName":                  true,
		"InvalidArgument":                    true,
		"IllegalLocationConstraintException": true,
		"InvalidLocationConstraint":          true,
		"BucketAlreadyExists":                true,
	}
)

// Maps an SDK error to a semantic kind. Anything unrecognised is treated as the
// service being unavailable
func errorKind(err error) serrors.Kind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case authenticationCodes[code]:
			return serrors.ErrAuthentication
		case permissionCodes[code]:
			return serrors.ErrPermissionDenied
		case invalidArgumentCodes[code]:
			return serrors.ErrInvalidArgument
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case 401:
			return serrors.ErrAuthentication
		case 403:
			return serrors.ErrPermissionDenied
		}
	}

	return serrors.ErrUnavailable
}

func classifyError(err error, msgFmt string, args ...any) error {
	return serrors.Wrap(errorKind(err), err, msgFmt, args...)
}
