// Package ratelimit tracks per-user per-command cooldown windows.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCooldown applies when a command does not declare its own.
const DefaultCooldown = 2 * time.Second

// Result is the outcome of a cooldown check. Remaining is the seconds left,
// formatted to one decimal place, and is set only when Limited.
type Result struct {
	Limited   bool
	Remaining string
}

// Limiter holds cooldown expiries keyed first by command name so that
// maintenance can be scoped per command. Check-and-set is atomic under mu.
type Limiter struct {
	mu        sync.Mutex
	cooldowns map[string]map[string]time.Time

	now func() time.Time // overridable in tests
}

func New() *Limiter {
	return &Limiter{
		cooldowns: make(map[string]map[string]time.Time),
		now:       time.Now,
	}
}

// Check reports whether (userID, commandName) is currently throttled. When it
// is not, a new window of the given duration is started as a side effect.
func (l *Limiter) Check(userID, commandName string, cooldown time.Duration) Result {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := userID + "-" + commandName

	perCommand, ok := l.cooldowns[commandName]
	if !ok {
		perCommand = make(map[string]time.Time)
		l.cooldowns[commandName] = perCommand
	}

	if expiry, ok := perCommand[key]; ok {
		if now.Before(expiry) {
			return Result{
				Limited:   true,
				Remaining: fmt.Sprintf("%.1f", expiry.Sub(now).Seconds()),
			}
		}
		// Expired entries are dropped lazily on next access.
		delete(perCommand, key)
	}

	perCommand[key] = now.Add(cooldown)
	return Result{}
}

// ClearAll drops every cooldown window.
func (l *Limiter) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cooldowns = make(map[string]map[string]time.Time)
}

// ClearCommand drops all windows for one command.
func (l *Limiter) ClearCommand(commandName string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cooldowns, commandName)
}

// ClearUser drops the window for one (user, command) pair.
func (l *Limiter) ClearUser(userID, commandName string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if perCommand, ok := l.cooldowns[commandName]; ok {
		delete(perCommand, userID+"-"+commandName)
	}
}

// sweep removes expired entries and empty per-command maps.
func (l *Limiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for name, perCommand := range l.cooldowns {
		for key, expiry := range perCommand {
			if !now.Before(expiry) {
				delete(perCommand, key)
				removed++
			}
		}
		if len(perCommand) == 0 {
			delete(l.cooldowns, name)
		}
	}
	return removed
}

// RunSweeper clears expired cooldown windows every minute until ctx is done,
// so memory does not grow for inactive users. Call from main.
func RunSweeper(ctx context.Context, l *Limiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("swept expired cooldowns")
			}
		}
	}
}
