package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/infrastructure/pinstore"
)

type RequestPinRequest struct {
	Identity string `json:"identity" validate:"required"`
}

type VerifyPinRequest struct {
	Identity string `json:"identity" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// PinStore is the pending-code state machine the service drives. The
// in-memory implementation lives in infrastructure/pinstore; anything with
// atomic per-identity issue/verify can stand in.
type PinStore interface {
	Issue(identity string) (string, error)
	Verify(identity, submitted string) pinstore.Outcome
}

// Notifier delivers an issued code to the identity out-of-band.
type Notifier interface {
	Deliver(ctx context.Context, identity, code string) error
}

// TokenSigner mints a session token bound to a subject.
type TokenSigner interface {
	Sign(subject string) (string, error)
}

// Service orchestrates PIN issuance and redemption. It is the only component
// that talks to both the pin store/notifier and the token signer.
type Service interface {
	// RequestPin issues a code and asks the notifier to deliver it. A
	// delivery failure comes back wrapped in domain.ErrDelivery and does NOT
	// roll back the pending code — it stays verifiable until its TTL.
	RequestPin(ctx context.Context, identity string) error

	// VerifyPin redeems (identity, code) for a session token. Every failed
	// outcome maps to domain.ErrUnauthorized; the specific reason is logged,
	// never returned, so callers cannot distinguish a wrong code from an
	// expired or missing one.
	VerifyPin(ctx context.Context, identity, code string) (token string, err error)
}

type service struct {
	pins     PinStore
	notifier Notifier
	signer   TokenSigner
}

func NewService(pins PinStore, notifier Notifier, signer TokenSigner) Service {
	return &service{pins: pins, notifier: notifier, signer: signer}
}

func (s *service) RequestPin(ctx context.Context, identity string) error {
	identity = normalizeIdentity(identity)
	if identity == "" {
		return fmt.Errorf("identity required: %w", domain.ErrBadRequest)
	}

	// Issue holds the store lock only for the map write; delivery runs after
	// it is released so a slow SMTP server cannot stall other identities.
	code, err := s.pins.Issue(identity)
	if err != nil {
		return err
	}
	slog.Info("pin issued", "identity", identity)

	if err := s.notifier.Deliver(ctx, identity, code); err != nil {
		slog.Warn("pin delivery failed", "identity", identity, "err", err)
		return fmt.Errorf("deliver pin: %w", domain.ErrDelivery)
	}
	return nil
}

func (s *service) VerifyPin(ctx context.Context, identity, code string) (string, error) {
	identity = normalizeIdentity(identity)

	outcome := s.pins.Verify(identity, code)
	if outcome != pinstore.OutcomeSuccess {
		slog.Warn("pin rejected", "identity", identity, "outcome", outcome.String())
		return "", fmt.Errorf("invalid credential: %w", domain.ErrUnauthorized)
	}

	token, err := s.signer.Sign(identity)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	slog.Info("login succeeded", "identity", identity)
	return token, nil
}

// normalizeIdentity case-folds so "A@x.com" and "a@x.com" share one pending
// code and one token subject.
func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
