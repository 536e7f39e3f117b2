package middleware

import (
	"net"
	"net/http"
	"resto/shared"
	"resto/shared/constant"
	"resto/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit  = "limiter"
	cacheKeySubmission = "limiter:submission"
)

type budget struct {
	bucket     string
	maxReqs    int
	windowSecs int
}

// RateLimit caps every request per client across the whole API.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return a.limit(limiter.Enable, budget{
		bucket:     cacheKeyRateLimit,
		maxReqs:    limiter.MaxRequests,
		windowSecs: limiter.WindowSeconds,
	}, func(*http.Request) bool { return true })
}

// SubmissionLimit applies the tighter public write budget. Reads pass through untouched.
func (a *appMiddleware) SubmissionLimit(next http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return a.limit(limiter.Enable, budget{
		bucket:     cacheKeySubmission,
		maxReqs:    limiter.Submission.MaxRequests,
		windowSecs: limiter.Submission.WindowSeconds,
	}, isWrite)(next)
}

func (a *appMiddleware) limit(enabled bool, b budget, applies func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || b.maxReqs <= 0 || !applies(r) {
				next.ServeHTTP(w, r)

				return
			}

			count, ok := a.count(r, b)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(b.maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, b.maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(b.windowSecs))

			if count > b.maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// count bumps the client's counter for the bucket. ok is false when the cache is
// unavailable, in which case the request is let through.
func (a *appMiddleware) count(r *http.Request, b budget) (int, bool) {
	cacheKey := shared.BuildCacheKey(b.bucket, a.getClientIP(r), a.getUA(r))

	count, err := a.cache.Increment(r.Context(), cacheKey, b.windowSecs)
	if err != nil {
		log.Warn().Err(err).Str("bucket", b.bucket).Msg("rate limiter cache unavailable")

		return 0, false
	}

	return int(count), true
}

func isWrite(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket peer
// without its port.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
