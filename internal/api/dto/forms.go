package dto

import (
	"strings"

	"github.com/spec-kit/intern-dashboard/internal/apiclient"
	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// LoginForm is posted by the sign-in page.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterCompanyForm is posted by the sign-up page.
type RegisterCompanyForm struct {
	CompanyName     string `form:"companyName" validate:"required"`
	FullName        string `form:"fullName" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	Consent         bool   `form:"consent" validate:"required"`
}

func (f RegisterCompanyForm) Request() apiclient.RegisterCompanyRequest {
	return apiclient.RegisterCompanyRequest{
		CompanyName: strings.TrimSpace(f.CompanyName),
		FullName:    strings.TrimSpace(f.FullName),
		Email:       strings.TrimSpace(f.Email),
		Password:    f.Password,
	}
}

// UserForm backs the admin create and edit user dialogs.
type UserForm struct {
	FullName     string `form:"fullName" validate:"required"`
	Email        string `form:"email" validate:"required,email"`
	Role         string `form:"role" validate:"required,oneof=ADMIN SUPERVISOR INTERN"`
	Domain       string `form:"domain"`
	SupervisorID string `form:"supervisorId"`
	StartDate    string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Password     string `form:"password" validate:"omitempty,min=8"`
}

// UserFormFrom fills the edit dialog from an existing user.
func UserFormFrom(u domain.User) UserForm {
	return UserForm{
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		Domain:       u.Domain,
		SupervisorID: u.SupervisorID.String(),
		StartDate:    u.StartDate,
		EndDate:      u.EndDate,
	}
}

func (f UserForm) Payload() domain.UserPayload {
	return domain.UserPayload{
		FullName:     strings.TrimSpace(f.FullName),
		Email:        strings.TrimSpace(f.Email),
		Role:         domain.Role(f.Role),
		Domain:       strings.TrimSpace(f.Domain),
		SupervisorID: strings.TrimSpace(f.SupervisorID),
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Password:     f.Password,
	}
}

// TaskForm backs the supervisor's task dialogs.
type TaskForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	InternID    string `form:"internId" validate:"required"`
	Status      string `form:"status" validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW PENDING COMPLETED APPROVED"`
	Priority    string `form:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate     string `form:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// TaskFormFrom fills the edit dialog from an existing task.
func TaskFormFrom(t domain.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		InternID:    t.InternID.String(),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
	}
}

func (f TaskForm) Payload() domain.TaskPayload {
	return domain.TaskPayload{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		InternID:    f.InternID,
		Status:      domain.TaskStatus(f.Status),
		Priority:    domain.TaskPriority(f.Priority),
		DueDate:     f.DueDate,
	}
}

// TaskStatusForm is the intern's status change on the task board.
type TaskStatusForm struct {
	Status string `form:"status" validate:"required,oneof=TODO IN_PROGRESS REVIEW PENDING COMPLETED APPROVED"`
}

// EvaluationForm backs the supervisor's evaluation dialog.
type EvaluationForm struct {
	InternID           string `form:"internId" validate:"required"`
	TechnicalScore     int    `form:"technicalScore" validate:"min=1,max=10"`
	CommunicationScore int    `form:"communicationScore" validate:"min=1,max=10"`
	TeamworkScore      int    `form:"teamworkScore" validate:"min=1,max=10"`
	Comments           string `form:"comments"`
}

// Overall previews the mean score before submission.
func (f EvaluationForm) Overall() float64 {
	return domain.MeanScore(f.TechnicalScore, f.CommunicationScore, f.TeamworkScore)
}

func (f EvaluationForm) Payload() domain.EvaluationPayload {
	return domain.EvaluationPayload{
		InternID:           f.InternID,
		TechnicalScore:     f.TechnicalScore,
		CommunicationScore: f.CommunicationScore,
		TeamworkScore:      f.TeamworkScore,
		Comments:           strings.TrimSpace(f.Comments),
	}
}

// CompanyForm backs the company settings dialog.
type CompanyForm struct {
	Name    string `form:"name" validate:"required"`
	LogoURL string `form:"logoUrl" validate:"omitempty,url"`
}

// CompanyFormFrom fills the dialog from the current profile.
func CompanyFormFrom(c domain.Company) CompanyForm {
	return CompanyForm{Name: c.Name, LogoURL: c.LogoURL}
}

func (f CompanyForm) Payload() domain.CompanyPayload {
	return domain.CompanyPayload{Name: strings.TrimSpace(f.Name), LogoURL: strings.TrimSpace(f.LogoURL)}
}
