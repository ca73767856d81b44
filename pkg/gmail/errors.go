package gmail

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// IsAuthError reports whether err means the credential itself is no longer
// usable: the provider rejected the refresh token (invalid_grant) or refused
// the request as unauthorized. A merely expired access token never surfaces
// here because the token source refreshes it transparently.
//
// Everything else (network, rate limits, 5xx) is transient and is retried on
// the next scheduled cycle.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		// invalid_grant is Google's signal for a revoked or expired
		// refresh token.
		if retrieveErr.ErrorCode == "invalid_grant" {
			return true
		}
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusBadRequest &&
			strings.Contains(string(retrieveErr.Body), "invalid_grant") {
			return true
		}
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized
	}

	return false
}
