package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

// HeaderTimeZone carries an IANA zone name when the caller does not send a
// full X-Client-Info header.
const HeaderTimeZone = "X-Time-Zone"

// ClientInfo returns middleware that resolves the caller's locale and time
// zone and stores them via clientinfo.WithClientInfo for outbound calls and
// entity stamping.
//
// Resolution order:
//  1. X-Client-Info header (JSON, validated); malformed values are rejected
//     with 400.
//  2. Accept-Language (best tag) and X-Time-Zone; an unknown zone is
//     rejected with 400.
//  3. Nothing is stored; downstream resolvers fall back to their defaults.
//
// Fields left empty by the caller are filled from defaults. The resolved
// values are added to the request logger and the server span.
func ClientInfo(defaults clientinfo.ClientInfo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, ok, err := clientInfoFromRequest(r)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			info = mergeDefaults(info, defaults)
			ctx := clientinfo.WithClientInfo(r.Context(), info)
			ctx = logging.With(ctx,
				slog.String("client_locale", info.DBLocaleLanguage),
				slog.String("client_time_zone", info.TimeZone),
			)
			trace.SpanFromContext(ctx).SetAttributes(
				attribute.String("client.locale", info.DBLocaleLanguage),
				attribute.String("client.time_zone", info.TimeZone),
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientInfoFromRequest(r *http.Request) (clientinfo.ClientInfo, bool, error) {
	if raw := r.Header.Get(clientinfo.HeaderName); raw != "" {
		info, err := clientinfo.Decode(raw)
		if err != nil {
			return clientinfo.ClientInfo{}, false, headerError(clientinfo.HeaderName, "must be a valid client info JSON object")
		}
		return info, true, nil
	}

	var info clientinfo.ClientInfo
	if al := r.Header.Get("Accept-Language"); al != "" {
		if tags, _, err := language.ParseAcceptLanguage(al); err == nil && len(tags) > 0 && tags[0] != language.Und {
			info.DBLocaleLanguage = tags[0].String()
		}
	}
	if tz := strings.TrimSpace(r.Header.Get(HeaderTimeZone)); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return clientinfo.ClientInfo{}, false, headerError(HeaderTimeZone, "must be an IANA time zone name")
		}
		info.TimeZone = tz
	}

	return info, !info.IsZero(), nil
}

func mergeDefaults(info, defaults clientinfo.ClientInfo) clientinfo.ClientInfo {
	if info.DBLocaleLanguage == "" {
		info.DBLocaleLanguage = defaults.DBLocaleLanguage
	}
	if info.DBTimeZone == "" {
		info.DBTimeZone = defaults.DBTimeZone
	}
	if info.TimeZone == "" {
		info.TimeZone = defaults.TimeZone
	}
	return info
}

func headerError(name, msg string) error {
	return domain.NewFieldError("header."+name, msg)
}
