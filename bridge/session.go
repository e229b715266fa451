package bridge

import (
	"github.com/truora/identity-bridge/proto"
)

// session is the bridge's mode state: a validation session or a digital
// identity session, never both. The zero state (no session) drops every
// incoming message. Once set, a session is immutable for the lifetime of
// the bridge instance.
type session interface {
	// channel returns the only channel name this session accepts
	// messages on.
	channel() string
}

type validationSession struct {
	channelName string
	params      ValidationParams
}

func (s *validationSession) channel() string {
	return s.channelName
}

// ValidationParams configures a single-shot validation flow. OnComplete and
// OnExpired are invoked synchronously from the host's message-delivery
// context; handlers must not block.
type ValidationParams struct {
	ValidationID   string
	DocumentNumber string
	Language       string

	OnComplete func(proto.ValidationResult)
	OnExpired  func(proto.ValidationResult)
}

type diSession struct {
	channelName string
	token       string
	delegate    Delegate
}

func (s *diSession) channel() string {
	return s.channelName
}

// DIParams configures a digital identity session. The delegate must outlive
// message delivery; the bridge holds it but does not manage its lifetime.
type DIParams struct {
	Token    string
	Delegate Delegate
}
