package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/pkg/config"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// StatusRateLimitPolicy defines the throttling parameters for order state
// change traffic.
type StatusRateLimitPolicy struct {
	window       time.Duration
	courierLimit int
	ipLimit      int
}

// NewStatusRateLimitPolicy builds a policy from the configured limits.
func NewStatusRateLimitPolicy(cfg config.RateLimitConfig) StatusRateLimitPolicy {
	return StatusRateLimitPolicy{
		window:       cfg.StatusWindow,
		courierLimit: cfg.StatusCourierLimit,
		ipLimit:      cfg.StatusIPLimit,
	}
}

func (p StatusRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.courierLimit > 0 || p.ipLimit > 0)
}

func (p StatusRateLimitPolicy) courierKey(courierID string) string {
	if courierID == "" {
		return ""
	}
	return fmt.Sprintf("rl:status:courier:%s", courierID)
}

func (p StatusRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:status:ip:%s", ip)
}

// StatusRateLimit enforces per-courier and per-IP counters on state change
// endpoints. The courier counter follows the loaded courier identity, not the
// token, so a courier cannot dodge it by re-authenticating.
func StatusRateLimit(policy StatusRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.ipLimit > 0 {
				ip := clientIP(r)
				if key := policy.ipKey(ip); key != "" {
					if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.ipLimit)); err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, "ip", ip, count, policy.ipLimit, policy.window)
						return
					}
				}
			}

			if policy.courierLimit > 0 {
				if courier := CourierFromContext(ctx); courier != nil {
					if key := policy.courierKey(courier.ID.String()); key != "" {
						if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.courierLimit)); err != nil {
							responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
							return
						} else if !allowed {
							respondRateLimited(ctx, logg, w, "courier", courier.ID.String(), count, policy.courierLimit, policy.window)
							return
						}
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allow(ctx context.Context, store rateLimiterStore, key string, window time.Duration, limit int64) (bool, int64, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, scope, subject string, count int64, limit int, window time.Duration) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"subject":        subject,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(window.Seconds()),
		})
		logg.Warn(logCtx, "status.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
