package domain

// DomainStatus marks whether a track accepts interns.
type DomainStatus string

const (
	DomainStatusActive   DomainStatus = "Active"
	DomainStatusInactive DomainStatus = "Inactive"
)

// SupervisorRef is a weak reference to a supervisor user.
type SupervisorRef struct {
	ID       ID     `json:"id"`
	FullName string `json:"fullName,omitempty"`
}

// InternshipDomain is a specialization track such as "Data Science".
type InternshipDomain struct {
	ID            ID              `json:"id"`
	DomainName    string          `json:"domainName"`
	Description   string          `json:"description,omitempty"`
	Supervisors   []SupervisorRef `json:"supervisors"`
	ActiveInterns int             `json:"activeInterns"`
	TotalInterns  int             `json:"totalInterns"`
	Status        DomainStatus    `json:"status"`
}
