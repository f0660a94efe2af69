// Package models holds rate limit results and the 429 response body.
package models

import "time"

// Result is the outcome of one sliding-window check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// ExceededResponse is the API response when a caller is over the limit.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// Key prefixes keep caller and address buckets apart.
const (
	KeyPrefixCaller = "ratelimit:caller:"
	KeyPrefixIP     = "ratelimit:ip:"
)

// RetryAfter rounds the wait up to whole seconds, never below one.
func RetryAfter(now, resetAt time.Time) int {
	wait := resetAt.Sub(now)
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
