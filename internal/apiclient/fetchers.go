package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/schemas"
)

// AuthFetcher signs users in and registers companies.
type AuthFetcher struct {
	client *Client
}

// RegisterCompanyRequest is the body of POST /api/auth/register-company.
type RegisterCompanyRequest struct {
	CompanyName string `json:"companyName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (f *AuthFetcher) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := f.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/login",
		schema: schemas.Token,
		body:   map[string]string{"email": email, "password": password},
		out:    &out,
	})
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// RegisterCompany creates a tenant with its first admin.
func (f *AuthFetcher) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) error {
	return f.client.do(ctx, call{method: http.MethodPost, path: "/api/auth/register-company", body: req})
}

// UsersFetcher is the /api/users resource.
type UsersFetcher struct {
	client *Client
	creds  CredentialSource
}

func (f *UsersFetcher) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/users", schema: schemas.ListOf(schemas.User), out: &users, creds: f.creds,
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (f *UsersFetcher) Get(ctx context.Context, id string) (domain.User, error) {
	var user domain.User
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/users/" + url.PathEscape(id), schema: schemas.User, out: &user, creds: f.creds,
	})
	return user, err
}

func (f *UsersFetcher) Create(ctx context.Context, payload domain.UserPayload) error {
	return f.client.do(ctx, call{method: http.MethodPost, path: "/api/users", body: payload, creds: f.creds})
}

func (f *UsersFetcher) Update(ctx context.Context, id string, payload domain.UserPayload) error {
	return f.client.do(ctx, call{method: http.MethodPut, path: "/api/users/" + url.PathEscape(id), body: payload, creds: f.creds})
}

func (f *UsersFetcher) Remove(ctx context.Context, id string) error {
	return f.client.do(ctx, call{method: http.MethodDelete, path: "/api/users/" + url.PathEscape(id), creds: f.creds})
}

// TasksFetcher is the /api/tasks resource.
type TasksFetcher struct {
	client *Client
	creds  CredentialSource
}

func (f *TasksFetcher) List(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/tasks", schema: schemas.ListOf(schemas.Task), out: &tasks, creds: f.creds,
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (f *TasksFetcher) Create(ctx context.Context, payload domain.TaskPayload) error {
	return f.client.do(ctx, call{method: http.MethodPost, path: "/api/tasks", body: payload, creds: f.creds})
}

func (f *TasksFetcher) Update(ctx context.Context, id string, payload domain.TaskPayload) error {
	return f.client.do(ctx, call{method: http.MethodPut, path: "/api/tasks/" + url.PathEscape(id), body: payload, creds: f.creds})
}

func (f *TasksFetcher) Remove(ctx context.Context, id string) error {
	return f.client.do(ctx, call{method: http.MethodDelete, path: "/api/tasks/" + url.PathEscape(id), creds: f.creds})
}

// EvaluationsFetcher is the /api/evaluations resource.
type EvaluationsFetcher struct {
	client *Client
	creds  CredentialSource
}

func (f *EvaluationsFetcher) List(ctx context.Context) ([]domain.Evaluation, error) {
	evaluations := []domain.Evaluation{}
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/evaluations", schema: schemas.ListOf(schemas.Evaluation), out: &evaluations, creds: f.creds,
	})
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

// Mine returns the signed-in intern's evaluation. The API answers 404 when
// none has been submitted; see errorutil.IsNotFound.
func (f *EvaluationsFetcher) Mine(ctx context.Context) (*domain.Evaluation, error) {
	var evaluation domain.Evaluation
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/evaluations/me", schema: schemas.Evaluation, out: &evaluation, creds: f.creds,
	})
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (f *EvaluationsFetcher) Submit(ctx context.Context, payload domain.EvaluationPayload) error {
	return f.client.do(ctx, call{method: http.MethodPost, path: "/api/evaluations", body: payload, creds: f.creds})
}

// CompanyFetcher is the tenant's /api/company singleton.
type CompanyFetcher struct {
	client *Client
	creds  CredentialSource
}

func (f *CompanyFetcher) Get(ctx context.Context) (domain.Company, error) {
	var company domain.Company
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/company", schema: schemas.Company, out: &company, creds: f.creds,
	})
	return company, err
}

func (f *CompanyFetcher) Update(ctx context.Context, payload domain.CompanyPayload) error {
	return f.client.do(ctx, call{method: http.MethodPut, path: "/api/company", body: payload, creds: f.creds})
}

// DomainsFetcher lists internship domains. Create and edit are not offered.
type DomainsFetcher struct {
	client *Client
	creds  CredentialSource
}

func (f *DomainsFetcher) List(ctx context.Context) ([]domain.InternshipDomain, error) {
	domains := []domain.InternshipDomain{}
	err := f.client.do(ctx, call{
		method: http.MethodGet, path: "/api/domains", schema: schemas.ListOf(schemas.Domain), out: &domains, creds: f.creds,
	})
	if err != nil {
		return nil, err
	}
	return domains, nil
}
