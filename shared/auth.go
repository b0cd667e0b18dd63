package shared

import "time"

// AuthenticationToken returns the token valid at `now` for the given timeout in minutes.
func AuthenticationToken(now time.Time, timeout uint8) uint64 {
	if timeout == 0 {
		timeout = 1
	}
	return uint64(now.Unix()/60) / uint64(timeout)
}

// ValidateAuthenticationToken checks that token is at most `timeout` tokens away from the
// current one.
func ValidateAuthenticationToken(token uint64, now time.Time, timeout uint8) bool {
	current := AuthenticationToken(now, timeout)
	var diff uint64
	if token > current {
		diff = token - current
	} else {
		diff = current - token
	}
	return diff <= uint64(timeout)
}
