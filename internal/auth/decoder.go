package auth

import (
	"encoding/json"
	"strconv"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/observability"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// Decoder extracts display claims from a credential without verifying its signature.
// The API validates the credential on every call; nothing here is an authorization check.
type Decoder struct {
	parser  *jwt.Parser
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewDecoder builds a decoder. logger and metrics may be nil.
func NewDecoder(logger *zap.Logger, metrics *observability.Metrics) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{parser: jwt.NewParser(), logger: logger, metrics: metrics}
}

// credentialPayload lists the claim spellings the API has been seen to issue.
type credentialPayload struct {
	Sub       domain.ID        `json:"sub"`
	UserID    domain.ID        `json:"userId"`
	ID        domain.ID        `json:"id"`
	TenantID  domain.ID        `json:"tenantId"`
	CompanyID domain.ID        `json:"companyId"`
	Role      string           `json:"role"`
	FullName  string           `json:"fullName"`
	Name      string           `json:"name"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

// Decode returns the claims carried by token. The second result is false for an
// absent or malformed credential.
func (d *Decoder) Decode(token string) (domain.Claims, bool) {
	if token == "" {
		return domain.Claims{}, false
	}
	claims, err := d.Parse(token)
	if err != nil {
		d.metrics.RecordDecodeFailure()
		d.logger.Debug("credential decode failed", zap.Error(err))
		return domain.Claims{}, false
	}
	return claims, true
}

// Parse is Decode with the failure reason kept.
func (d *Decoder) Parse(token string) (domain.Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return domain.Claims{}, &apperrors.DecodeError{Reason: "expected three segments"}
	}

	raw, err := d.parser.DecodeSegment(segments[1])
	if err != nil {
		return domain.Claims{}, &apperrors.DecodeError{Reason: "payload is not base64url", Err: err}
	}

	var payload credentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Claims{}, &apperrors.DecodeError{Reason: "payload is not a JSON object", Err: err}
	}

	role, ok := domain.ParseRole(payload.Role)
	if !ok {
		return domain.Claims{}, &apperrors.DecodeError{Reason: "unknown role " + strconv.Quote(payload.Role)}
	}

	claims := domain.Claims{
		SubjectID:   firstNonEmpty(payload.Sub, payload.UserID, payload.ID),
		TenantID:    firstNonEmpty(payload.TenantID, payload.CompanyID),
		Role:        role,
		DisplayName: payload.FullName,
	}
	if claims.DisplayName == "" {
		claims.DisplayName = payload.Name
	}
	if payload.ExpiresAt != nil {
		exp := payload.ExpiresAt.Time
		claims.ExpiresAt = &exp
	}
	return claims, nil
}

func firstNonEmpty(ids ...domain.ID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}
