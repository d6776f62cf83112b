package domain

// User is the client view of a tenant member.
type User struct {
	ID           ID     `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Domain       string `json:"domain,omitempty"`
	SupervisorID ID     `json:"supervisorId,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// UserPayload is the body of POST/PUT /api/users. The optional profile fields
// are always sent so an edit that blanks one clears it on the server.
type UserPayload struct {
	FullName     string `json:"fullName,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         Role   `json:"role,omitempty"`
	Domain       string `json:"domain"`
	SupervisorID string `json:"supervisorId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Password     string `json:"password,omitempty"`
}

// RoleCounts tallies users per role.
func RoleCounts(users []User) map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, r := range Roles {
		counts[r] = 0
	}
	for _, u := range users {
		counts[u.Role]++
	}
	return counts
}

// SupervisedBy returns the interns whose supervisorId references supervisorID.
func SupervisedBy(users []User, supervisorID string) []User {
	out := make([]User, 0)
	for _, u := range users {
		if u.Role == RoleIntern && supervisorID != "" && string(u.SupervisorID) == supervisorID {
			out = append(out, u)
		}
	}
	return out
}

// FilterByRole keeps users with the given role.
func FilterByRole(users []User, role Role) []User {
	out := make([]User, 0)
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
