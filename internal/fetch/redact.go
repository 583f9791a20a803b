package fetch

import (
	"errors"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Redacted replaces credentials in URLs and error messages.
const Redacted = "REDACTED"

var credentialParams = []string{"apikey", "api_key", "appid", "key", "token", "access_token"}

// RedactURL masks credential query parameters and the userinfo password so
// the URL can go into errors, stats and logs.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		base, _, _ := strings.Cut(raw, "?")
		return base
	}

	q := u.Query()
	masked := false
	for k := range q {
		if lo.Contains(credentialParams, strings.ToLower(k)) {
			q.Set(k, Redacted)
			masked = true
		}
	}
	if masked {
		u.RawQuery = q.Encode()
	}

	return u.Redacted()
}

// redactError masks the URL of a transport error in place.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactURL(urlErr.URL)
	}
	return err
}

// Mask hides secrets that live outside the query string, such as a key in
// the URL path. oldnew are replacement pairs as in strings.NewReplacer.
// The error chain is kept.
func Mask(err error, oldnew ...string) error {
	if err == nil || len(oldnew) == 0 {
		return err
	}
	return &maskedError{err: err, r: strings.NewReplacer(oldnew...)}
}

type maskedError struct {
	err error
	r   *strings.Replacer
}

func (e *maskedError) Error() string { return e.r.Replace(e.err.Error()) }

func (e *maskedError) Unwrap() error { return e.err }
