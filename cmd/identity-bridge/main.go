package main

import (
	"context"
	"flag"
	"fmt"
	"net"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"

	"github.com/truora/identity-bridge/bridge"
	"github.com/truora/identity-bridge/config"
	"github.com/truora/identity-bridge/proto"
	"github.com/truora/identity-bridge/webhost"
)

var (
	flagMode           = flag.String("mode", "validation", "flow to start: validation or di")
	flagValidationID   = flag.String("validation-id", "", "validation id (validation mode)")
	flagDocumentNumber = flag.String("document-number", "", "document number (validation mode)")
	flagLanguage       = flag.String("lang", "es", "widget language (validation mode)")
	flagToken          = flag.String("token", "", "API token (di mode)")
)

func main() {
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	log := httplog.NewLogger("identity-bridge", httplog.Options{
		LogLevel: zerolog.LevelDebugValue,
	})

	s, err := webhost.New(cfg, log)
	if err != nil {
		panic(err)
	}
	defer s.Stop(context.Background())

	sess, err := s.NewSession()
	if err != nil {
		panic(err)
	}

	b := bridge.New(sess, bridge.Options{
		Log:               log,
		Metrics:           s.Metrics,
		ValidationChannel: cfg.Frontend.ValidationChannel,
		DIChannel:         cfg.Frontend.DIChannel,
		WidgetURL:         cfg.Frontend.WidgetURL,
		DIBaseURL:         cfg.Frontend.DIBaseURL,
		ElementID:         cfg.Frontend.ElementID,
	})
	sess.Bind(b.HandleMessage)

	switch *flagMode {
	case "validation":
		err = b.StartValidation(bridge.ValidationParams{
			ValidationID:   *flagValidationID,
			DocumentNumber: *flagDocumentNumber,
			Language:       *flagLanguage,
			OnComplete: func(result proto.ValidationResult) {
				log.Info().
					Str("status", result.Status.String()).
					Str("validation_id", result.ValidationID).
					Msg("validation completed")
			},
			OnExpired: func(result proto.ValidationResult) {
				log.Warn().
					Str("validation_id", result.ValidationID).
					Msg("validation expired")
			},
		})
	case "di":
		err = b.StartDigitalIdentity(bridge.DIParams{
			Token:    *flagToken,
			Delegate: &logDelegate{log: log},
		})
	default:
		panic(fmt.Errorf("unknown mode %q", *flagMode))
	}
	if err != nil {
		panic(err)
	}

	log.Info().
		Str("session_url", fmt.Sprintf("http://localhost%s/session/%s", cfg.Service.ListenAddr, sess.ID)).
		Msg("session ready")

	l, err := net.Listen("tcp", cfg.Service.ListenAddr)
	if err != nil {
		panic(err)
	}

	if err := s.Run(context.Background(), l); err != nil {
		panic(err)
	}
}

// logDelegate writes each digital identity lifecycle event to the log. The
// Close signal only marks the session as finished; tearing down the hosted
// surface is left to the operator.
type logDelegate struct {
	log zerolog.Logger
}

var _ bridge.Delegate = (*logDelegate)(nil)

func (d *logDelegate) StepsCompleted(result proto.DIResult) {
	d.log.Info().Str("process_id", result.ProcessID).Msg("steps completed")
}

func (d *logDelegate) ProcessSucceeded(result proto.DIResult) {
	d.log.Info().Str("process_id", result.ProcessID).Msg("process succeeded")
}

func (d *logDelegate) ProcessFailed(result proto.DIResult) {
	d.log.Warn().Str("process_id", result.ProcessID).Msg("process failed")
}

func (d *logDelegate) HandleError(err error) {
	d.log.Error().Err(err).Msg("digital identity error")
}

func (d *logDelegate) Close() {
	d.log.Info().Msg("session closed")
}
