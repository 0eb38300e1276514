package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/observability"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/internal/worker"
)

// Operation labels used for metrics.
const (
	OperationLogin    = "login"
	OperationRegister = "register"
)

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	Issue(subject, role string) (domain.IssuedToken, error)
}

// loginForm and registerForm carry the credential rules checked before storage is touched.
type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hashes     *worker.HashPool
	tokens     TokenIssuer
	validate   *validator.Validate
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hashes     *worker.HashPool
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		hashes:     deps.Hashes,
		tokens:     deps.Tokens,
		validate:   validator.New(),
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger.Named("auth"),
	}
}

// Login authenticates a credential and, on success, issues a session token.
// Domain failures are reported through the outcome; the error is reserved for
// infrastructure faults.
func (s *AuthService) Login(ctx context.Context, cred domain.Credential) (*domain.AuthOutcome, error) {
	if reason := s.checkForm(loginForm{Username: blankToEmpty(cred.Username), Password: blankToEmpty(cred.Password)}); reason != "" {
		return s.done(OperationLogin, validationFailed(reason)), nil
	}

	user, err := s.users.FindByUsername(ctx, cred.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("login failed: user not found", zap.String("username", cred.Username))
			return s.done(OperationLogin, &domain.AuthOutcome{
				Kind:    domain.OutcomeUserNotFound,
				Message: domain.MessageInvalidUser,
			}), nil
		}
		s.logger.Error("unexpected error during login", zap.String("username", cred.Username), zap.Error(err))
		return nil, fmt.Errorf("login %q: %w", cred.Username, err)
	}

	ok, err := s.hashes.Verify(ctx, cred.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("unexpected error during login", zap.String("username", cred.Username), zap.Error(err))
		return nil, fmt.Errorf("login %q: %w", cred.Username, err)
	}
	if !ok {
		s.logger.Warn("login failed: incorrect password", zap.String("username", cred.Username))
		return s.done(OperationLogin, &domain.AuthOutcome{
			Kind:     domain.OutcomeInvalidCredentials,
			Message:  domain.MessageIncorrectPassword,
			Username: user.Username,
		}), nil
	}

	session, err := s.tokens.Issue(user.Username, domain.RoleAdmin)
	if err != nil {
		s.logger.Error("unexpected error issuing token", zap.String("username", user.Username), zap.Error(err))
		return nil, fmt.Errorf("login %q: issue token: %w", user.Username, err)
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	return s.done(OperationLogin, &domain.AuthOutcome{
		Kind:     domain.OutcomeSuccess,
		Message:  domain.MessageLoginSuccess,
		Username: user.Username,
		UserID:   user.ID,
		Session:  &session,
	}), nil
}

// Register creates a new account. It never issues a session token.
func (s *AuthService) Register(ctx context.Context, cred domain.Credential) (*domain.AuthOutcome, error) {
	if reason := s.checkForm(registerForm{Username: blankToEmpty(cred.Username), Password: blankToEmpty(cred.Password)}); reason != "" {
		return s.done(OperationRegister, validationFailed(reason)), nil
	}

	_, err := s.users.FindByUsername(ctx, cred.Username)
	switch {
	case err == nil:
		s.logger.Warn("registration failed: user already exists", zap.String("username", cred.Username))
		return s.done(OperationRegister, alreadyExists()), nil
	case !errors.Is(err, repository.ErrUserNotFound):
		s.logger.Error("unexpected error during registration", zap.String("username", cred.Username), zap.Error(err))
		return nil, fmt.Errorf("register %q: %w", cred.Username, err)
	}

	hash, err := s.hashes.Hash(ctx, cred.Password)
	if err != nil {
		s.logger.Error("unexpected error during registration", zap.String("username", cred.Username), zap.Error(err))
		return nil, fmt.Errorf("register %q: hash password: %w", cred.Username, err)
	}

	user := &domain.UserRecord{Username: cred.Username, PasswordHash: hash}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			s.logger.Warn("registration failed: user already exists", zap.String("username", cred.Username))
			return s.done(OperationRegister, alreadyExists()), nil
		}
		s.logger.Error("unexpected error during registration", zap.String("username", cred.Username), zap.Error(err))
		return nil, fmt.Errorf("register %q: %w", cred.Username, err)
	}

	s.logger.Info("user registered", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.Username, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
	}))

	return s.done(OperationRegister, &domain.AuthOutcome{
		Kind:     domain.OutcomeSuccess,
		Message:  domain.MessageRegistered,
		Username: user.Username,
		UserID:   user.ID,
	}), nil
}

// checkForm returns the caller-visible reason a form is rejected, or "".
func (s *AuthService) checkForm(form any) string {
	err := s.validate.Struct(form)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return domain.MessageRequiredFields
			}
		}
		for _, fe := range fieldErrs {
			if fe.Field() == "Password" && fe.Tag() == "min" {
				return domain.MessagePasswordTooShort
			}
		}
	}
	return domain.MessageRequiredFields
}

func (s *AuthService) done(operation string, outcome *domain.AuthOutcome) *domain.AuthOutcome {
	s.metrics.RecordAuthOutcome(operation, string(outcome.Kind))
	return outcome
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validationFailed(reason string) *domain.AuthOutcome {
	return &domain.AuthOutcome{Kind: domain.OutcomeValidationFailed, Message: reason}
}

func alreadyExists() *domain.AuthOutcome {
	return &domain.AuthOutcome{Kind: domain.OutcomeUserAlreadyExists, Message: domain.MessageAlreadyRegistered}
}

// blankToEmpty maps whitespace-only input to "" so the required rule rejects it.
// Non-blank values pass through untouched.
func blankToEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

var _ TokenIssuer = (*auth.TokenManager)(nil)
