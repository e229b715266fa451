package bridge

import (
	"encoding/json"
	"strings"

	"github.com/truora/identity-bridge/proto"
)

// Wire prefixes the validation widget puts in front of the JSON payload.
// The upstream widget template historically sent onComplete: for both
// events; the template rendered by this bridge emits onExpired: for the
// expiry event so the two are distinguishable. See renderWidget.
const (
	completePrefix = "onComplete:"
	expiredPrefix  = "onExpired:"
)

// decodeValidation parses a prefixed JSON body and invokes the matching
// callback exactly once, synchronously. Malformed bodies are logged and
// counted but never surfaced to the native consumer: decoding happens
// inside the host's message-delivery context, which has no caller to
// return an error to.
func (b *Bridge) decodeValidation(s *validationSession, body string) {
	var callback func(proto.ValidationResult)
	var payload string

	switch {
	case strings.HasPrefix(body, completePrefix):
		callback = s.params.OnComplete
		payload = strings.TrimPrefix(body, completePrefix)
	case strings.HasPrefix(body, expiredPrefix):
		callback = s.params.OnExpired
		payload = strings.TrimPrefix(body, expiredPrefix)
	default:
		b.log.Warn().
			Str("mode", "validation").
			Msg("invalid message: unknown prefix")
		b.metrics.DecodeFailures.WithLabelValues(modeValidation).Inc()
		return
	}

	var result proto.ValidationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		b.log.Warn().
			Err(err).
			Str("mode", "validation").
			Msg("invalid message: undecodable payload")
		b.metrics.DecodeFailures.WithLabelValues(modeValidation).Inc()
		return
	}

	b.metrics.Routed.WithLabelValues(modeValidation).Inc()
	if callback != nil {
		callback(result)
	}
}
