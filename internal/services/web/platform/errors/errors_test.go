package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKindOfAndIs(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("status 502")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "untyped", err: cause, want: KindUnknown},
		{name: "typed", err: EK(KindForbidden, "error.csrf_invalid", "token"), want: KindForbidden},
		{name: "wrapped typed", err: fmt.Errorf("submit: %w", Wrap(KindUnavailable, "error.email_failed", "send", cause)), want: KindUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %q, want %q", got, tc.want)
			}
			if tc.want != KindUnknown && !Is(tc.err, tc.want) {
				t.Fatalf("Is(%q) = false", tc.want)
			}
		})
	}
	if Is(nil, KindUnknown) {
		t.Fatal("Is(nil) = true")
	}
}

func TestWrapKeepsCauseReachable(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("status 502")
	err := Wrap(KindUnavailable, " error.email_failed ", "Failed to send email", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("cause not reachable")
	}
	if got := LocalizationKey(err); got != "error.email_failed" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := err.Error(); got != "Failed to send email" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  Error
		want string
	}{
		"message":      {err: Error{Kind: KindForbidden, Message: "token"}, want: "token"},
		"kind only":    {err: Error{Kind: KindInvalidInput}, want: "invalid_input"},
		"cause hidden": {err: Error{Kind: KindUnavailable, Message: "send", Err: stderrors.New("eof")}, want: "send"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocalizationKeyUntyped(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(stderrors.New("x")); got != "" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("LocalizationKey(nil) = %q", got)
	}
}
