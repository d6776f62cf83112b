package views

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TableQuery is a table's search, filter and paging state.
type TableQuery struct {
	Search   string `query:"q"`
	Role     string `query:"role"`
	Status   string `query:"status"`
	Page     int    `query:"page"`
	PageSize int    `query:"size"`
}

// AtPage returns q moved to page n.
func (q TableQuery) AtPage(n int) TableQuery {
	q.Page = n
	return q
}

// Encode renders q as a URL query string, omitting zero values.
func (q TableQuery) Encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 && q.PageSize != DefaultPageSize {
		v.Set("size", strconv.Itoa(q.PageSize))
	}
	return v.Encode()
}

// Page is one page of rows.
type Page[T any] struct {
	Rows   []T
	Total  int
	Number int
	Pages  int
	Size   int
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.Pages }
func (p Page[T]) Prev() int     { return p.Number - 1 }
func (p Page[T]) Next() int     { return p.Number + 1 }

// Paginate slices rows to page number (1-based), clamping out of range
// numbers and sizes.
func Paginate[T any](rows []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	pages := len(rows) / size
	if len(rows)%size != 0 || pages == 0 {
		pages++
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	start := (number - 1) * size
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return Page[T]{
		Rows:   append([]T(nil), rows[start:end]...),
		Total:  len(rows),
		Number: number,
		Pages:  pages,
		Size:   size,
	}
}

// FilterUsers applies the search text (name, email, domain) and role filter.
func FilterUsers(users []domain.User, q TableQuery) []domain.User {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if q.Role != "" && string(u.Role) != q.Role {
			continue
		}
		if needle != "" && !containsAny(needle, u.FullName, u.Email, u.Domain) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// FilterTasks applies the search text (title, description) and status filter.
func FilterTasks(tasks []domain.Task, q TableQuery) []domain.Task {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Status != "" && string(t.Status) != q.Status {
			continue
		}
		if needle != "" && !containsAny(needle, t.Title, t.Description) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
