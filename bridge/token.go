package bridge

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// inspectToken does a best-effort, unverified parse of the digital identity
// API token. The frontend rejects bad tokens on its own; this only surfaces
// an already-expired token in the logs at start time instead of as a silent
// process failure minutes later. It never blocks the start.
func (b *Bridge) inspectToken(token string) {
	tok, err := jwt.Parse([]byte(token), jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		b.log.Debug().Err(err).Msg("token is not a parseable JWT")
		return
	}

	if exp := tok.Expiration(); !exp.IsZero() && exp.Before(time.Now()) {
		b.log.Warn().
			Time("expired_at", exp).
			Msg("digital identity token is already expired")
	}
}
