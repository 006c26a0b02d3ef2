package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/config"
	"fabhomes/internal/models"
	"fabhomes/utils"
)

// Bridge resolves bearer credentials. Resolve never fails the caller: any
// provider error, including a panic, yields an unresolved caller.
type Bridge struct {
	verifier Verifier
	log      logrus.FieldLogger
}

func NewBridge(v Verifier, log logrus.FieldLogger) *Bridge {
	if v == nil {
		v = Disabled{}
	}
	return &Bridge{verifier: v, log: log}
}

// Enabled reports whether a real provider is configured.
func (b *Bridge) Enabled() bool {
	_, disabled := b.verifier.(Disabled)
	return !disabled
}

// Resolve verifies credential, which may carry a "Bearer " prefix.
func (b *Bridge) Resolve(ctx context.Context, credential string) (claims models.IdentityClaims, ok bool) {
	fields := strings.Fields(credential)
	if len(fields) > 0 && strings.EqualFold(fields[0], "bearer") {
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return models.IdentityClaims{}, false
	}
	token := fields[0]

	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", fmt.Sprint(r)).Error("identity verifier panicked")
			claims, ok = models.IdentityClaims{}, false
		}
	}()

	c, err := b.verifier.Verify(ctx, token)
	if err != nil {
		b.log.WithError(err).Debug("bearer credential not accepted")
		return models.IdentityClaims{}, false
	}
	if c.UID == "" {
		return models.IdentityClaims{}, false
	}
	return c, true
}

// Setup picks the verifier: Firebase when credentials are configured, the
// dev signing key otherwise, and the disabled stand-in when neither is set
// or Firebase fails to initialise.
func Setup(ctx context.Context, cfg config.Config, log logrus.FieldLogger) Verifier {
	if cfg.Firebase.CredentialsFile != "" {
		v, err := NewFirebaseVerifier(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.ProjectID)
		if err == nil {
			log.Info("identity: firebase verifier enabled")
			return v
		}
		log.WithError(err).Warn("identity: firebase unavailable, bearer credentials will be ignored")
		return Disabled{}
	}
	if cfg.Auth.DevSigningKey != "" {
		m, err := utils.NewManager(cfg.Auth.DevSigningKey)
		if err == nil {
			log.Warn("identity: using development token verifier")
			return DevVerifier{Tokens: m}
		}
	}
	log.Info("identity: no provider configured, all callers are anonymous")
	return Disabled{}
}
