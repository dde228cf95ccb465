package entities

import "time"

type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "TODO"
	TaskStatusDone TaskStatus = "DONE"
)

// Task is a unit of project work generated from a service's task template.
type Task struct {
	ID               string     `json:"id"`
	BusinessID       string     `json:"business_id"`
	ProjectID        string     `json:"project_id"`
	ProjectServiceID string     `json:"project_service_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Phase            TaskPhase  `json:"phase"`
	Status           TaskStatus `json:"status"`
	Position         int        `json:"position"`
	CreatedAt        time.Time  `json:"created_at"`
}
