package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/utils"
)

type timestamps []int64 // unix nanos

func nowUnix() int64 { return time.Now().UnixNano() }

// IPRateLimiter is a fixed-window per-IP limiter used on the login, signup
// and admin-login endpoints.
type IPRateLimiter struct {
	max         int
	window      time.Duration
	mu          sync.Mutex
	state       map[string]timestamps
	lastSweep   int64
	trustedCIDR []string
}

func NewIPRateLimiter(maxReq int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		max:       maxReq,
		window:    window,
		state:     make(map[string]timestamps),
		lastSweep: nowUnix(),
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	return l
}

// clientIPGeneric returns the client IP. X-Forwarded-For / X-Real-IP are
// honored only when the remote address is inside one of the trusted CIDRs.
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
				if remoteIP != nil && ipnet.Contains(remoteIP) {
					trusted = true
					break
				}
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				return strings.TrimSpace(parts[0])
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)
		now := nowUnix()
		cutoff := now - int64(l.window)

		l.mu.Lock()
		var filtered timestamps
		for _, ts := range l.state[ip] {
			if ts >= cutoff {
				filtered = append(filtered, ts)
			}
		}
		filtered = append(filtered, now)
		l.state[ip] = filtered
		count := len(filtered)
		l.sweepLocked(now, cutoff)
		l.mu.Unlock()

		remaining := l.max - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", l.max))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > l.max {
			retryAfter := int(l.window.Seconds())
			oldest := filtered[0]
			for _, ts := range filtered {
				if ts < oldest {
					oldest = ts
				}
			}
			if left := (oldest + int64(l.window) - now) / 1e9; left > 0 {
				retryAfter = int(left)
			} else {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			utils.WriteMessage(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sweepLocked drops IPs whose every timestamp has aged out of the window.
// Running it inline at most once per window keeps the map bounded without a
// background goroutine per limiter. Caller holds l.mu.
func (l *IPRateLimiter) sweepLocked(now, cutoff int64) {
	if now-l.lastSweep < int64(l.window) {
		return
	}
	l.lastSweep = now
	for k, arr := range l.state {
		var filtered timestamps
		for _, ts := range arr {
			if ts >= cutoff {
				filtered = append(filtered, ts)
			}
		}
		if len(filtered) == 0 {
			delete(l.state, k)
		} else {
			l.state[k] = filtered
		}
	}
}

// Account lockout tracker for failed logins. Redis-backed when configured
// so the lock holds across instances; in-memory otherwise.
var (
	loginMu   sync.Mutex
	failedMap = make(map[uint]int)
	lockMap   = make(map[uint]int64) // userID -> lockUntil unix nanos
)

func lockoutDuration(failures int) time.Duration {
	// progressive: nothing until 3 failures, then 1m, 5m, 15m, 30m cap
	switch {
	case failures < 3:
		return 0
	case failures == 3:
		return time.Minute
	case failures == 4:
		return 5 * time.Minute
	case failures == 5:
		return 15 * time.Minute
	default:
		return 30 * time.Minute
	}
}

func IsAccountLocked(userID uint) (bool, time.Duration) {
	if utils.RedisClient != nil {
		lockKey := fmt.Sprintf("login:lock:u:%d", userID)
		ttl, err := utils.RedisClient.TTL(context.Background(), lockKey).Result()
		if err == nil && ttl > 0 {
			return true, ttl
		}
		return false, 0
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	until := lockMap[userID]
	if until == 0 {
		return false, 0
	}
	now := nowUnix()
	if until > now {
		return true, time.Duration(until - now)
	}
	delete(lockMap, userID)
	failedMap[userID] = 0
	return false, 0
}

func RecordFailedLogin(userID uint) {
	if utils.RedisClient != nil {
		ctx := context.Background()
		failKey := fmt.Sprintf("login:fail:u:%d", userID)
		lockKey := fmt.Sprintf("login:lock:u:%d", userID)
		failures, err := utils.RedisClient.Incr(ctx, failKey).Result()
		if err == nil {
			_ = utils.RedisClient.Expire(ctx, failKey, 30*time.Minute).Err()
			if d := lockoutDuration(int(failures)); d > 0 {
				_ = utils.RedisClient.Set(ctx, lockKey, "1", d).Err()
			}
			return
		}
		// Redis error: fall through to memory
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	failedMap[userID]++
	if d := lockoutDuration(failedMap[userID]); d > 0 {
		lockMap[userID] = nowUnix() + int64(d)
	}
}

func ResetFailedLogin(userID uint) {
	if utils.RedisClient != nil {
		ctx := context.Background()
		_ = utils.RedisClient.Del(ctx,
			fmt.Sprintf("login:fail:u:%d", userID),
			fmt.Sprintf("login:lock:u:%d", userID)).Err()
		return
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	delete(lockMap, userID)
	failedMap[userID] = 0
}
