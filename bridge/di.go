package bridge

import (
	"strings"

	"github.com/truora/identity-bridge/proto"
)

// Delegate consumes digital identity lifecycle events. Exactly one of the
// lifecycle methods (or HandleError) is invoked per routed message, always
// followed by exactly one Close call: the hosted frontend is single-shot
// and the host surface is expected to be torn down after any DI event.
// All methods are invoked synchronously from the host's message-delivery
// context and must not block.
type Delegate interface {
	StepsCompleted(result proto.DIResult)
	ProcessSucceeded(result proto.DIResult)
	ProcessFailed(result proto.DIResult)
	HandleError(err error)
	Close()
}

// decodeDI parses a "<event>,<processID>" body and dispatches it. The
// processID field is taken verbatim: a comma inside it misparses as a
// field-count mismatch and is reported as an internal error.
func (b *Bridge) decodeDI(s *diSession, body string) {
	defer s.delegate.Close()

	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		b.metrics.DecodeFailures.WithLabelValues(modeDI).Inc()
		s.delegate.HandleError(proto.ErrInternal.WithCausef(
			"malformed event: expected 2 fields, got %d", len(parts)))
		return
	}

	result := proto.DIResult{ProcessID: parts[1]}

	switch proto.LifecycleEvent(parts[0]) {
	case proto.LifecycleEvent_StepsCompleted:
		b.metrics.Routed.WithLabelValues(modeDI).Inc()
		s.delegate.StepsCompleted(result)
	case proto.LifecycleEvent_ProcessSucceeded:
		b.metrics.Routed.WithLabelValues(modeDI).Inc()
		s.delegate.ProcessSucceeded(result)
	case proto.LifecycleEvent_ProcessFailed:
		b.metrics.Routed.WithLabelValues(modeDI).Inc()
		s.delegate.ProcessFailed(result)
	default:
		b.metrics.DecodeFailures.WithLabelValues(modeDI).Inc()
		s.delegate.HandleError(proto.ErrInternal.WithCausef(
			"unrecognized event %q", parts[0]))
	}
}
