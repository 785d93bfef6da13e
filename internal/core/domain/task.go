package domain

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// PriorityHigh marks the tasks counted as high priority in TaskStats.
const PriorityHigh = "high"

// TaskStats aggregates a user's tasks.
type TaskStats struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	InProgress     int64   `json:"in_progress"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	Overdue        int64   `json:"overdue"`
	HighPriority   int64   `json:"high_priority"`
	CompletionRate float64 `json:"completion_rate"`
}

// ComputeCompletionRate fills CompletionRate as a percentage rounded to one
// decimal. Cancelled tasks do not count towards the denominator.
func (s *TaskStats) ComputeCompletionRate() {
	base := s.Total - s.Cancelled
	if base <= 0 {
		s.CompletionRate = 0
		return
	}
	rate := float64(s.Completed) * 100 / float64(base)
	s.CompletionRate = float64(int64(rate*10+0.5)) / 10
}
