// Package weberror resolves user-safe copy and statuses for failed requests.
package weberror

import (
	"net/http"
	"strings"

	webi18n "github.com/sinhaparth5/portfolio/internal/services/web/i18n"
	apperrors "github.com/sinhaparth5/portfolio/internal/services/web/platform/errors"
)

// internalKey is the catalog fallback for failures without a key.
const internalKey = "error.internal"

// PublicMessage resolves a user-safe localized error message. Raw error text
// never reaches the visitor.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc == nil {
		return http.StatusText(SubmissionStatus(err))
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	return loc.Sprintf(internalKey)
}

// SubmissionStatus maps a failed form submission to its response status.
// Token rejections stay distinguishable; every other failure is a bad
// request.
func SubmissionStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if apperrors.Is(err, apperrors.KindForbidden) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}
