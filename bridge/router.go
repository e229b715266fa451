package bridge

// HandleMessage routes one inbound message to the decoder for the active
// mode. Hosts call this for every message the embedded content posts.
//
// Messages arriving before a session is activated, or on a channel other
// than the active session's, are dropped without side effects. Dropping is
// deliberate: the embedded content may keep posting around session setup
// and teardown, and there is no synchronous caller to report to.
func (b *Bridge) HandleMessage(msg RawMessage) {
	sess := b.activeSession()
	if sess == nil {
		b.log.Debug().
			Str("channel", msg.ChannelName).
			Msg("message dropped: no active session")
		b.metrics.Dropped.WithLabelValues(dropNoSession).Inc()
		return
	}

	if msg.ChannelName != sess.channel() {
		b.log.Debug().
			Str("channel", msg.ChannelName).
			Str("want", sess.channel()).
			Msg("message dropped: channel mismatch")
		b.metrics.Dropped.WithLabelValues(dropChannelMismatch).Inc()
		return
	}

	// The two payload shapes are incompatible (prefixed JSON vs.
	// comma-delimited), so the modes never share decoding logic.
	switch s := sess.(type) {
	case *validationSession:
		b.decodeValidation(s, msg.Body)
	case *diSession:
		b.decodeDI(s, msg.Body)
	}
}
