// Package vennctx provides an optional build/training context: progress
// logging and named timers threaded through scene analysis and the
// training loop, in the spirit of Recast's BuildContext.
package vennctx

import (
	"fmt"
	"time"
)

// LogCategory classifies a logged message.
type LogCategory int

// Log categories.
const (
	LogProgress LogCategory = 1 + iota // A progress log entry.
	LogWarning                         // A warning log entry.
	LogError                           // An error log entry.
)

// TimerLabel names one of the named performance timers.
type TimerLabel int

// Named timers accumulated across a training run.
const (
	TimerSceneBuild TimerLabel = iota
	TimerGradient
	TimerUpdate
	TimerTraceReplay
	maxTimers
)

const maxMessages = 1000

// Context accumulates log messages and timer durations across a training
// run or a single scene analysis. The zero value has logging and timers
// disabled; use New to enable both.
//
// A nil *Context is valid everywhere one is accepted: all methods are
// no-ops on a nil receiver, so callers that don't care about progress or
// timing can simply pass nil.
type Context struct {
	startTime [maxTimers]time.Time
	accTime   [maxTimers]time.Duration

	messages    [maxMessages]string
	numMessages int

	logEnabled   bool
	timerEnabled bool

	// Stop is polled by the training driver after each step; setting it
	// true requests cooperative cancellation. No step is half-applied.
	Stop bool
}

// New returns a Context with logging and timers enabled.
func New() *Context {
	return &Context{logEnabled: true, timerEnabled: true}
}

// EnableLog enables or disables logging.
func (c *Context) EnableLog(state bool) {
	if c == nil {
		return
	}
	c.logEnabled = state
}

// EnableTimer enables or disables the performance timers.
func (c *Context) EnableTimer(state bool) {
	if c == nil {
		return
	}
	c.timerEnabled = state
}

// ResetLog clears all log entries.
func (c *Context) ResetLog() {
	if c == nil || !c.logEnabled {
		return
	}
	c.numMessages = 0
}

// ResetTimers clears all accumulated timer durations.
func (c *Context) ResetTimers() {
	if c == nil || !c.timerEnabled {
		return
	}
	for i := range c.accTime {
		c.accTime[i] = 0
	}
}

// Progressf logs a progress message.
func (c *Context) Progressf(format string, v ...interface{}) { c.Log(LogProgress, format, v...) }

// Warningf logs a warning message.
func (c *Context) Warningf(format string, v ...interface{}) { c.Log(LogWarning, format, v...) }

// Errorf logs an error message.
func (c *Context) Errorf(format string, v ...interface{}) { c.Log(LogError, format, v...) }

// Log records a formatted message under the given category.
func (c *Context) Log(category LogCategory, format string, v ...interface{}) {
	if c == nil || !c.logEnabled || c.numMessages >= maxMessages {
		return
	}
	prefix := "PROG "
	switch category {
	case LogWarning:
		prefix = "WARN "
	case LogError:
		prefix = "ERR "
	}
	c.messages[c.numMessages] = prefix + fmt.Sprintf(format, v...)
	c.numMessages++
}

// Messages returns the log messages recorded so far.
func (c *Context) Messages() []string {
	if c == nil {
		return nil
	}
	out := make([]string, c.numMessages)
	copy(out, c.messages[:c.numMessages])
	return out
}

// StartTimer starts the named timer.
func (c *Context) StartTimer(label TimerLabel) {
	if c == nil || !c.timerEnabled {
		return
	}
	c.startTime[label] = time.Now()
}

// StopTimer stops the named timer and accumulates the elapsed duration.
func (c *Context) StopTimer(label TimerLabel) {
	if c == nil || !c.timerEnabled {
		return
	}
	c.accTime[label] += time.Since(c.startTime[label])
}

// AccumulatedTime returns the total accumulated duration for a timer, or
// -1 if timers are disabled.
func (c *Context) AccumulatedTime(label TimerLabel) time.Duration {
	if c == nil || !c.timerEnabled {
		return -1
	}
	return c.accTime[label]
}

// Cancelled reports whether cooperative cancellation has been requested.
func (c *Context) Cancelled() bool {
	return c != nil && c.Stop
}
