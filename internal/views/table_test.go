package views

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(rows, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, p.Rows)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 3, p.Pages)

	p = Paginate(rows, 9, 3)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, []int{7}, p.Rows)

	p = Paginate([]int{}, 0, 0)
	assert.Equal(t, 1, p.Pages)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Empty(t, p.Rows)
	assert.False(t, p.HasNext())
}

func TestPaginateClampsHugeSize(t *testing.T) {
	p := Paginate([]int{1, 2, 3}, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2, 3}, p.Rows)
	assert.Equal(t, 1, p.Pages)
	assert.Equal(t, MaxPageSize, p.Size)

	rows := make([]int, MaxPageSize+1)
	p = Paginate(rows, math.MaxInt, math.MaxInt)
	assert.Equal(t, 2, p.Pages)
	assert.Equal(t, 2, p.Number)
	assert.Len(t, p.Rows, 1)
}

func TestFilterTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "Write docs", Status: domain.TaskStatusTodo},
		{ID: "2", Title: "Review PR", Description: "docs section", Status: domain.TaskStatusReview},
		{ID: "3", Title: "Deploy", Status: domain.TaskStatusTodo},
	}
	assert.Len(t, FilterTasks(tasks, TableQuery{Search: "DOCS"}), 2)
	assert.Len(t, FilterTasks(tasks, TableQuery{Status: "TODO"}), 2)
	assert.Len(t, FilterTasks(tasks, TableQuery{Status: "TODO", Search: "docs"}), 1)
}

func TestTableQueryEncode(t *testing.T) {
	assert.Equal(t, "", TableQuery{Page: 1, PageSize: DefaultPageSize}.Encode())
	q := TableQuery{Search: "ian smith", Role: "INTERN", PageSize: 25}
	assert.Equal(t, "page=3&q=ian+smith&role=INTERN&size=25", q.AtPage(3).Encode())
	assert.Equal(t, 0, q.Page)
}
