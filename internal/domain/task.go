package domain

// TaskStatus is a task's board column. Any status may follow any other.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusApproved   TaskStatus = "APPROVED"
)

// TaskStatuses lists statuses in board order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusPending,
	TaskStatusCompleted,
	TaskStatusApproved,
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TaskPriority expresses urgency.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// TaskPriorities lists priorities in ascending order.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

// Task is a unit of work assigned to an intern.
type Task struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	InternID    ID           `json:"internId"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"dueDate,omitempty"`
}

// TaskPayload is the body of POST/PUT /api/tasks.
type TaskPayload struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	InternID    string       `json:"internId,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     string       `json:"dueDate,omitempty"`
}

// TasksFor returns the tasks assigned to internID.
func TasksFor(tasks []Task, internID string) []Task {
	out := make([]Task, 0)
	for _, t := range tasks {
		if internID != "" && string(t.InternID) == internID {
			out = append(out, t)
		}
	}
	return out
}

// StatusCounts tallies tasks per status, with every known status present.
func StatusCounts(tasks []Task) map[TaskStatus]int {
	counts := make(map[TaskStatus]int, len(TaskStatuses))
	for _, s := range TaskStatuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
