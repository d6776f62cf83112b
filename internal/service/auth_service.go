package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/apiclient"
	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/events"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// CredentialWriter is the write side of a session's credential store.
type CredentialWriter interface {
	SetCredential(ctx context.Context, token string, payload events.LoggedInPayload)
	Logout(ctx context.Context)
}

// AuthService coordinates sign-in, sign-out and sign-up.
type AuthService struct {
	api       *apiclient.Client
	decoder   *auth.Decoder
	validator *dto.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(api *apiclient.Client, decoder *auth.Decoder, validator *dto.Validator, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, decoder: decoder, validator: validator, logger: logger, now: time.Now}
}

// ErrUnusableCredential means the API issued a credential the dashboard cannot read.
var ErrUnusableCredential = apperrors.NewDomainError(
	"UNUSABLE_CREDENTIAL",
	"Signed in, but this account has no dashboard role.",
	http.StatusForbidden,
	nil,
)

// Login exchanges the form for a credential and stores it in store.
func (s *AuthService) Login(ctx context.Context, store CredentialWriter, form dto.LoginForm) (domain.Claims, error) {
	if err := s.validator.Struct(form); err != nil {
		return domain.Claims{}, err
	}
	token, err := s.api.Auth().Login(ctx, form.Email, form.Password)
	if err != nil {
		return domain.Claims{}, err
	}

	claims, ok := s.decoder.Decode(token)
	if !ok || claims.Expired(s.now()) {
		s.logger.Warn("login returned unusable credential", zap.Bool("decoded", ok))
		return domain.Claims{}, ErrUnusableCredential
	}

	store.SetCredential(ctx, token, events.LoggedInPayload{SubjectID: claims.SubjectID, Role: claims.Role})
	return claims, nil
}

// Logout clears the stored credential.
func (s *AuthService) Logout(ctx context.Context, store CredentialWriter) {
	store.Logout(ctx)
}

// RegisterCompany signs up a tenant. The new admin signs in separately.
func (s *AuthService) RegisterCompany(ctx context.Context, form dto.RegisterCompanyForm) error {
	if err := s.validator.Struct(form); err != nil {
		return err
	}
	return s.api.Auth().RegisterCompany(ctx, form.Request())
}
