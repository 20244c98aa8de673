package gce

import (
	"errors"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
)

// httpStatus extracts the HTTP status code from a Compute Engine API error.
// Returns 0 when the error carries no status code.
func httpStatus(err error) int {
	if err == nil {
		return 0
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.HTTPCode(); code > 0 {
			return code
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}

	return 0
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return httpStatus(err) == http.StatusNotFound
}

// IsQuotaDenied checks if the error indicates the request was refused for
// quota or permission reasons. Compute returns 403 when a project has no
// GPU quota in the region.
func IsQuotaDenied(err error) bool {
	return httpStatus(err) == http.StatusForbidden
}

// IsBadRequest checks if the error indicates an invalid request, which for
// accelerator-attached instances usually means the GPU type does not exist
// in the requested zone.
func IsBadRequest(err error) bool {
	return httpStatus(err) == http.StatusBadRequest
}

// IsZoneExhausted checks if the error indicates the zone has no capacity
// for the requested resources.
func IsZoneExhausted(err error) bool {
	return httpStatus(err) == http.StatusServiceUnavailable
}

// IsConflict checks if the error indicates a resource conflict, such as an
// instance with the same name already existing.
func IsConflict(err error) bool {
	return httpStatus(err) == http.StatusConflict
}

// IsRateLimited checks if the error indicates API rate limiting.
func IsRateLimited(err error) bool {
	return httpStatus(err) == http.StatusTooManyRequests
}

// IsRetryable checks if the error is transient and worth retrying.
func IsRetryable(err error) bool {
	switch httpStatus(err) {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway:
		return true
	}
	return false
}
