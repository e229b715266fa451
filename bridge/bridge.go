// Package bridge carries typed results out of an embedded identity
// verification frontend. A Bridge is bound to a Host, activated for exactly
// one session (validation or digital identity), and routes every message
// the host delivers to the decoder for the active mode.
package bridge

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/truora/identity-bridge/proto"
)

type Options struct {
	// Log receives routing and decode diagnostics. Defaults to a
	// disabled logger.
	Log zerolog.Logger

	// Metrics counts routed, dropped and undecodable messages. If nil,
	// unregistered collectors are used.
	Metrics *Metrics

	// ValidationChannel and DIChannel override the channel names the
	// router accepts messages on. Defaults are proto.ValidationChannel
	// and proto.DIChannel.
	ValidationChannel string
	DIChannel         string

	// WidgetURL, DIBaseURL and ElementID configure the bootstrapped
	// content. Zero values fall back to the production frontend.
	WidgetURL string
	DIBaseURL string
	ElementID string
}

type Bridge struct {
	host    Host
	log     zerolog.Logger
	metrics *Metrics
	options Options

	// mu serializes session assignment against first message delivery.
	// The session is written once and read-only afterwards.
	mu      sync.Mutex
	session session
}

func New(host Host, options Options) *Bridge {
	if options.ValidationChannel == "" {
		options.ValidationChannel = proto.ValidationChannel
	}
	if options.DIChannel == "" {
		options.DIChannel = proto.DIChannel
	}
	if options.WidgetURL == "" {
		options.WidgetURL = defaultWidgetURL
	}
	if options.DIBaseURL == "" {
		options.DIBaseURL = defaultDIBaseURL
	}
	if options.ElementID == "" {
		options.ElementID = defaultElementID
	}
	metrics := options.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Bridge{
		host:    host,
		log:     options.Log,
		metrics: metrics,
		options: options,
	}
}

// StartValidation activates validation mode and instructs the host to render
// the validation widget with the given parameters embedded. All parameters
// are escaped before interpolation.
func (b *Bridge) StartValidation(params ValidationParams) error {
	if params.ValidationID == "" {
		return proto.ErrMissingValidationID
	}

	html, err := renderWidget(widgetData{
		ElementID:      b.options.ElementID,
		WidgetURL:      b.options.WidgetURL,
		Channel:        b.options.ValidationChannel,
		ValidationID:   params.ValidationID,
		DocumentNumber: params.DocumentNumber,
		Language:       params.Language,
	})
	if err != nil {
		return proto.ErrInternal.WithCausef("render widget content: %w", err)
	}

	if err := b.setSession(&validationSession{
		channelName: b.options.ValidationChannel,
		params:      params,
	}); err != nil {
		return err
	}

	if err := b.host.LoadHTML(html); err != nil {
		return proto.ErrInternal.WithCausef("load widget content: %w", err)
	}

	b.log.Info().
		Str("op", "startValidation").
		Str("validation_id", params.ValidationID).
		Msg("validation session started")
	return nil
}

// StartDigitalIdentity activates digital identity mode and points the host
// at the identity frontend with the token appended as a query parameter.
func (b *Bridge) StartDigitalIdentity(params DIParams) error {
	if params.Token == "" {
		return proto.ErrMissingToken
	}
	if params.Delegate == nil {
		return proto.ErrInternal.WithCausef("delegate is required")
	}

	b.inspectToken(params.Token)

	target, err := diTargetURL(b.options.DIBaseURL, params.Token)
	if err != nil {
		return proto.ErrInternal.WithCausef("build identity url: %w", err)
	}

	if err := b.setSession(&diSession{
		channelName: b.options.DIChannel,
		token:       params.Token,
		delegate:    params.Delegate,
	}); err != nil {
		return err
	}

	if err := b.host.LoadURL(target); err != nil {
		return proto.ErrInternal.WithCausef("load identity frontend: %w", err)
	}

	b.log.Info().
		Str("op", "startDigitalIdentity").
		Msg("digital identity session started")
	return nil
}

// setSession installs the session exactly once. A second start of either
// kind on the same bridge is rejected: mode state is immutable in flight.
func (b *Bridge) setSession(s session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session != nil {
		return proto.ErrInternal.WithCausef("session already active")
	}
	b.session = s
	return nil
}

// activeSession snapshots the session reference. Hosts that deliver
// messages from a goroutine other than the one calling Start* get a
// consistent view; after the first read the field never changes.
func (b *Bridge) activeSession() session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}
