package domain

import "time"

// Company is the tenant profile, one per tenant.
type Company struct {
	ID        ID         `json:"id"`
	Name      string     `json:"name"`
	LogoURL   string     `json:"logoUrl,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CompanyPayload is the body of PUT /api/company.
type CompanyPayload struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}
