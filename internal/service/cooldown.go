package service

import (
	"math"
	"time"
)

// CooldownDecision is the outcome of checking an actor against a board's
// cooldown window.
type CooldownDecision struct {
	Allowed           bool
	RetryAfterSeconds int
}

// CheckCooldown compares `now` against the actor's last accepted placement.
// lastPlacement is nil for first-time contributors. A rejected check records
// nothing: the caller only updates the contributor row on an accepted
// placement, inside the same transaction that read lastPlacement.
func CheckCooldown(lastPlacement *time.Time, now time.Time, cooldownSeconds int) CooldownDecision {
	if cooldownSeconds == 0 || lastPlacement == nil {
		return CooldownDecision{Allowed: true}
	}

	cooldown := time.Duration(cooldownSeconds) * time.Second
	elapsed := now.Sub(*lastPlacement)
	if elapsed >= cooldown {
		return CooldownDecision{Allowed: true}
	}

	retryAfter := int(math.Ceil((cooldown - elapsed).Seconds()))
	return CooldownDecision{Allowed: false, RetryAfterSeconds: retryAfter}
}
