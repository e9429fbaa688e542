package weberror

import (
	"errors"
	"net/http"
	"testing"

	"golang.org/x/text/language"

	webi18n "github.com/sinhaparth5/portfolio/internal/services/web/i18n"
	apperrors "github.com/sinhaparth5/portfolio/internal/services/web/platform/errors"
)

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.English)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "localized key",
			err:  apperrors.EK(apperrors.KindForbidden, "error.csrf_invalid", "token mismatch"),
			want: "Invalid security token",
		},
		{
			name: "unknown key falls back",
			err:  apperrors.EK(apperrors.KindInvalidInput, "error.nope", "bad form"),
			want: "Something went wrong. Please try again.",
		},
		{
			name: "untyped error does not leak",
			err:  errors.New("dial tcp: refused"),
			want: "Something went wrong. Please try again.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(loc, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPublicMessageWithoutLocalizer(t *testing.T) {
	t.Parallel()

	got := PublicMessage(nil, apperrors.EK(apperrors.KindForbidden, "", "secret detail"))
	if got != http.StatusText(http.StatusForbidden) {
		t.Fatalf("PublicMessage() = %q", got)
	}
}

func TestSubmissionStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":         {err: nil, want: http.StatusOK},
		"forbidden":   {err: apperrors.EK(apperrors.KindForbidden, "error.csrf_invalid", "token"), want: http.StatusForbidden},
		"invalid":     {err: apperrors.EK(apperrors.KindInvalidInput, "error.contact_email_invalid", "email"), want: http.StatusBadRequest},
		"unavailable": {err: apperrors.EK(apperrors.KindUnavailable, "error.email_failed", "send"), want: http.StatusBadRequest},
		"untyped":     {err: errors.New("boom"), want: http.StatusBadRequest},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := SubmissionStatus(tc.err); got != tc.want {
				t.Fatalf("SubmissionStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
