package logging

import (
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

const redacted = "[REDACTED]"

// sensitiveHeaders holds lowercase header names whose values never reach a
// log record. The masq hook and RedactHeaders share it.
var sensitiveHeaders = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
	"x-api-key":           {},
}

// secretFields are attribute keys redacted wherever they appear in a record.
var secretFields = []string{"password", "secret", "token", "client_secret"}

// secretPatterns catch credentials that were interpolated into free text:
// bearer tokens, three-segment JWTs and inline api_key=... pairs.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
}

// IsSensitiveHeader reports whether values of the named header are redacted.
func IsSensitiveHeader(name string) bool {
	_, ok := sensitiveHeaders[strings.ToLower(name)]
	return ok
}

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	var opts []masq.Option
	for name := range sensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, field := range secretFields {
		opts = append(opts, masq.WithFieldName(field))
	}
	opts = append(opts, masq.WithFieldPrefix("secret_"), masq.WithFieldPrefix("api_key"))
	for _, re := range secretPatterns {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}

// RedactHeaders flattens headers into string attributes ordered by name.
// Multiple values are comma-joined and sensitive headers become
// "[REDACTED]".
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		value := redacted
		if !IsSensitiveHeader(name) {
			value = strings.Join(headers[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}

// HeaderGroup returns RedactHeaders(headers) as one group attribute.
func HeaderGroup(name string, headers http.Header) slog.Attr {
	return slog.GroupAttrs(name, RedactHeaders(headers)...)
}
