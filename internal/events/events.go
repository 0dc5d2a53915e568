// Package events carries structured progress events from the core pipeline
// to a caller-supplied sink. Components report what happened; deciding how
// much of it to surface (verbosity, formatting) is the caller's concern.
package events

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Kind identifies the type of a pipeline event.
type Kind string

// Event kinds emitted by the core components.
const (
	KindPageFetched         Kind = "page_fetched"
	KindRetryAttempted      Kind = "retry_attempted"
	KindRateLimitWait       Kind = "rate_limit_wait"
	KindRecordDiscarded     Kind = "record_discarded"
	KindProfileFetchFailed  Kind = "profile_fetch_failed"
	KindUserExcluded        Kind = "user_excluded"
	KindSkippedKnownBlocked Kind = "skipped_known_blocked"
	KindBlockOutcome        Kind = "block_outcome"
)

// Event is a single structured progress report. Only the fields relevant to
// the Kind are populated.
type Event struct {
	Kind    Kind
	Login   string
	Page    int
	Count   int
	Attempt int
	Wait    time.Duration
	Detail  string
	Err     error
}

// Sink receives pipeline events.
type Sink interface {
	Emit(e Event)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// Nop returns a sink that discards all events.
func Nop() Sink {
	return nopSink{}
}

// LogSink adapts a logrus logger as an event sink. Routine progress is
// logged at debug/info, per-record anomalies at warn, failures at error.
type LogSink struct {
	logger *logrus.Logger
}

// NewLogSink creates a sink backed by the given logger.
func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (s *LogSink) Emit(e Event) {
	entry := s.logger.WithField("event", string(e.Kind))
	if e.Login != "" {
		entry = entry.WithField("login", e.Login)
	}
	if e.Detail != "" {
		entry = entry.WithField("detail", e.Detail)
	}
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}

	switch e.Kind {
	case KindPageFetched:
		entry.WithFields(logrus.Fields{"page": e.Page, "records": e.Count}).Debug("fetched page")
	case KindRetryAttempted:
		entry.WithFields(logrus.Fields{"attempt": e.Attempt, "backoff": e.Wait.String()}).Warn("retrying after transport error")
	case KindRateLimitWait:
		entry.WithField("wait", e.Wait.String()).Warn("rate limited, waiting for reset")
	case KindRecordDiscarded:
		entry.WithField("count", e.Count).Warn("discarded records without an author")
	case KindProfileFetchFailed:
		entry.Warn("profile fetch failed, leaving fields empty")
	case KindUserExcluded:
		entry.Warn("excluded user")
	case KindSkippedKnownBlocked:
		entry.WithField("count", e.Count).Warn("skipping known blocked users")
	case KindBlockOutcome:
		if e.Err != nil {
			entry.Error("block request failed")
		} else {
			entry.WithField("result", e.Detail).Info("block outcome")
		}
	default:
		entry.Info("event")
	}
}
