package models

type TaskStatus string

const (
	TaskTodo  TaskStatus = "todo"
	TaskDoing TaskStatus = "doing"
	TaskDone  TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskDoing, TaskDone:
		return true
	}
	return false
}

type KanbanTask struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	ClientID *string    `json:"clientId,omitempty"`
	Status   TaskStatus `json:"status"`
}
