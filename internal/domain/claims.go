package domain

import "time"

// Claims is the identity decoded from a credential. It is display-only data.
type Claims struct {
	SubjectID   string
	TenantID    string
	Role        Role
	DisplayName string
	ExpiresAt   *time.Time
}

// Expired reports whether the credential carried an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// Name returns the display name, falling back to the subject id.
func (c Claims) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.SubjectID
}
