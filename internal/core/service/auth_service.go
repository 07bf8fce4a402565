package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/api/metrics"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

const registeredMessage = "Registration successful. Please check your email to confirm your account."

// AuthService implements login and the registration/confirmation workflow:
// Unregistered -> PendingConfirmation (register + email) -> Active (confirm).
type AuthService struct {
	gateway ports.CredentialGateway
	codec   ports.SessionCodec
	mailer  ports.Mailer
	emails  ports.ConfirmationEmailer
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewAuthService(
	gateway ports.CredentialGateway,
	codec ports.SessionCodec,
	mailer ports.Mailer,
	emails ports.ConfirmationEmailer,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		gateway: gateway,
		codec:   codec,
		mailer:  mailer,
		emails:  emails,
		audit:   audit,
		log:     log,
	}
}

// Login authenticates req and issues a session token for the principal.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*ports.LoginResult, error) {
	principal, msg, err := s.gateway.Authenticate(ctx, req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(outcome(err)).Inc()
		s.record(domain.AuditLogin, req.Username, err)
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditLogin, req.Username, nil)
	s.log.Info().Str("username", principal.Username).Msg("user logged in")

	return &ports.LoginResult{
		Principal: principal,
		Token:     s.codec.Encode(principal),
		Message:   msg,
	}, nil
}

// Register creates a pending account and mails its confirmation link.
//
// The datastore has committed the account by the time the email is sent, so
// a dispatch failure leaves the account pending and is returned as a
// *domain.DispatchError for the caller to report. It is not rolled back.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (string, error) {
	invitation, err := s.gateway.Register(ctx, req)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(outcome(err)).Inc()
		s.record(domain.AuditRegister, req.Username, err)
		return "", err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditRegister, req.Username, nil)

	// The account exists now; a client hanging up must not cancel its email.
	email := s.emails.ConfirmationEmail(req.Username, invitation)
	if err := s.mailer.Send(context.WithoutCancel(ctx), email); err != nil {
		var de *domain.DispatchError
		if !errors.As(err, &de) {
			err = &domain.DispatchError{Err: err}
		}
		metrics.EmailsDispatchedTotal.WithLabelValues("failure").Inc()
		s.record(domain.AuditDispatch, req.Username, err)
		s.log.Error().Err(err).
			Str("username", req.Username).
			Msg("account pending confirmation but confirmation email was not sent")
		return "", err
	}

	metrics.EmailsDispatchedTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditDispatch, req.Username, nil)
	s.log.Info().Str("username", req.Username).Msg("confirmation email sent")

	return registeredMessage, nil
}

// Confirm activates the account behind an invitation token. Tokens are
// single use; a spent token fails with *domain.AuthenticationError.
func (s *AuthService) Confirm(ctx context.Context, token string) (string, error) {
	msg, err := s.gateway.Confirm(ctx, token)
	if err != nil {
		metrics.ConfirmationsTotal.WithLabelValues(outcome(err)).Inc()
		s.record(domain.AuditConfirm, "", err)
		return "", err
	}
	metrics.ConfirmationsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditConfirm, "", nil)
	return msg, nil
}

func (s *AuthService) record(action domain.AuditAction, username string, err error) {
	if s.audit == nil {
		return
	}
	ev := domain.AuditEvent{
		Action:    action,
		Username:  username,
		Success:   err == nil,
		Timestamp: time.Now().UTC(),
	}
	var ae *domain.AuthenticationError
	if errors.As(err, &ae) {
		ev.Message = ae.Message
	} else if err != nil {
		ev.Message = outcome(err)
	}
	s.audit.Record(ev)
}

// outcome labels err for metrics and audit records.
func outcome(err error) string {
	var (
		ae *domain.AuthenticationError
		pe *domain.PoolError
		qe *domain.QueryError
		de *domain.DispatchError
	)
	switch {
	case errors.As(err, &ae):
		return "rejected"
	case errors.As(err, &pe):
		return "pool_error"
	case errors.As(err, &qe):
		return "query_error"
	case errors.As(err, &de):
		return "dispatch_error"
	default:
		return "error"
	}
}
