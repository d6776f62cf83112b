// Package apitest is an in-memory stand-in for the internship REST API.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// Failure is a canned error response.
type Failure struct {
	Status int
	Body   string
}

// Account is a login the fake accepts.
type Account struct {
	Password string
	Token    string
}

// Server is an httptest server over in-memory entities.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	nextID      int
	Accounts    map[string]Account
	Users       []domain.User
	Tasks       []domain.Task
	Evaluations []domain.Evaluation
	Mine        *domain.Evaluation
	Company     domain.Company
	Domains     []domain.InternshipDomain
	Registered  []map[string]string

	failures   map[string]Failure
	calls      map[string]int
	lastAuth   string
	lastBodies map[string][]byte
}

// New starts a fake API. Close it with Server.Close.
func New() *Server {
	s := &Server{
		nextID:     1000,
		Accounts:   map[string]Account{},
		Company:    domain.Company{ID: "1", Name: "Acme"},
		failures:   map[string]Failure{},
		calls:      map[string]int{},
		lastBodies: map[string][]byte{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register-company", s.register)
	mux.HandleFunc("GET /api/users", s.listUsers)
	mux.HandleFunc("GET /api/users/{id}", s.getUser)
	mux.HandleFunc("POST /api/users", s.createUser)
	mux.HandleFunc("PUT /api/users/{id}", s.updateUser)
	mux.HandleFunc("DELETE /api/users/{id}", s.deleteUser)
	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	mux.HandleFunc("GET /api/evaluations", s.listEvaluations)
	mux.HandleFunc("GET /api/evaluations/me", s.myEvaluation)
	mux.HandleFunc("POST /api/evaluations", s.submitEvaluation)
	mux.HandleFunc("GET /api/company", s.getCompany)
	mux.HandleFunc("PUT /api/company", s.updateCompany)
	mux.HandleFunc("GET /api/domains", s.listDomains)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.calls[key]++
		s.lastAuth = r.Header.Get("Authorization")
		failure, failing := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.Status)
			_, _ = w.Write([]byte(failure.Body))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// FailNext makes the next request to "METHOD /path" answer with f.
func (s *Server) FailNext(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

// Calls returns how many requests reached "METHOD /path".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// LastBody returns the latest JSON body sent to "METHOD /path".
func (s *Server) LastBody(route string) map[string]any {
	s.mu.Lock()
	raw := s.lastBodies[route]
	s.mu.Unlock()
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}

// UserByID returns a stored user.
func (s *Server) UserByID(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if string(u.ID) == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Server) newID() domain.ID {
	s.nextID++
	return domain.ID(strconv.Itoa(s.nextID))
}

func (s *Server) readBody(r *http.Request, out any) error {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastBodies[r.Method+" "+r.URL.Path] = raw
	s.mu.Unlock()
	return json.Unmarshal(raw, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := s.readBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	acct, ok := s.Accounts[strings.ToLower(body.Email)]
	s.mu.Unlock()
	if !ok || acct.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": acct.Token})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := s.readBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.Accounts[strings.ToLower(body["email"])]; taken {
		writeError(w, http.StatusConflict, "Email already exists")
		return
	}
	s.Registered = append(s.Registered, body)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.User{}, s.Users...))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if string(u.ID) == r.PathValue("id") {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var p domain.UserPayload
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if strings.EqualFold(u.Email, p.Email) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
	}
	u := domain.User{
		ID: s.newID(), FullName: p.FullName, Email: p.Email, Role: p.Role, Domain: p.Domain,
		SupervisorID: domain.ID(p.SupervisorID), StartDate: p.StartDate, EndDate: p.EndDate,
	}
	s.Users = append(s.Users, u)
	writeJSON(w, http.StatusCreated, u)
}

// userPatch tells an absent key apart from an explicit empty one.
type userPatch struct {
	FullName     *string      `json:"fullName"`
	Email        *string      `json:"email"`
	Role         *domain.Role `json:"role"`
	Domain       *string      `json:"domain"`
	SupervisorID *string      `json:"supervisorId"`
	StartDate    *string      `json:"startDate"`
	EndDate      *string      `json:"endDate"`
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var p userPatch
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if string(u.ID) != r.PathValue("id") {
			continue
		}
		if p.FullName != nil {
			u.FullName = *p.FullName
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		if p.Domain != nil {
			u.Domain = *p.Domain
		}
		if p.SupervisorID != nil {
			u.SupervisorID = domain.ID(*p.SupervisorID)
		}
		if p.StartDate != nil {
			u.StartDate = *p.StartDate
		}
		if p.EndDate != nil {
			u.EndDate = *p.EndDate
		}
		s.Users[i] = u
		writeJSON(w, http.StatusOK, u)
		return
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if string(u.ID) == r.PathValue("id") {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Task{}, s.Tasks...))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var p domain.TaskPayload
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status := p.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	t := domain.Task{
		ID: s.newID(), Title: p.Title, Description: p.Description, InternID: domain.ID(p.InternID),
		Status: status, Priority: p.Priority, DueDate: p.DueDate,
	}
	s.Tasks = append(s.Tasks, t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var p domain.TaskPayload
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.Tasks {
		if string(t.ID) != r.PathValue("id") {
			continue
		}
		if p.Title != "" {
			t.Title = p.Title
		}
		if p.Description != "" {
			t.Description = p.Description
		}
		if p.InternID != "" {
			t.InternID = domain.ID(p.InternID)
		}
		if p.Status != "" {
			t.Status = p.Status
		}
		if p.Priority != "" {
			t.Priority = p.Priority
		}
		if p.DueDate != "" {
			t.DueDate = p.DueDate
		}
		s.Tasks[i] = t
		writeJSON(w, http.StatusOK, t)
		return
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.Tasks {
		if string(t.ID) == r.PathValue("id") {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (s *Server) listEvaluations(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Evaluation{}, s.Evaluations...))
}

func (s *Server) myEvaluation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mine == nil {
		writeError(w, http.StatusNotFound, "Evaluation not found")
		return
	}
	writeJSON(w, http.StatusOK, s.Mine)
}

func (s *Server) submitEvaluation(w http.ResponseWriter, r *http.Request) {
	var p domain.EvaluationPayload
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := domain.Evaluation{
		ID: s.newID(), InternID: domain.ID(p.InternID), TechnicalScore: p.TechnicalScore,
		CommunicationScore: p.CommunicationScore, TeamworkScore: p.TeamworkScore, Comments: p.Comments,
	}
	s.Evaluations = append(s.Evaluations, e)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) getCompany(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Company)
}

func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	var p domain.CompanyPayload
	if err := s.readBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Company.Name = p.Name
	s.Company.LogoURL = p.LogoURL
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDomains(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.InternshipDomain{}, s.Domains...))
}
