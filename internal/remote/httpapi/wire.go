package httpapi

import (
	"time"

	"github.com/workly/workly/internal/model"
)

const (
	statusPending   = "pending"
	statusCompleted = "completed"

	dateLayout = "2006-01-02"
)

// --- JSON wire types (the REST API contract) ---

// ColumnJSON is a board column on the wire.
type ColumnJSON struct {
	ID        int64      `json:"columnId"`
	Title     string     `json:"title"`
	Position  int        `json:"position"`
	ProjectID int64      `json:"projectId,omitempty"`
	Tasks     []TaskJSON `json:"tasks,omitempty"`
}

// TaskJSON is a task on the wire.
type TaskJSON struct {
	ID          int64         `json:"taskId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	DueDate     string        `json:"dueDate,omitempty"`
	Status      string        `json:"status,omitempty"`
	Position    int           `json:"position"`
	ColumnID    int64         `json:"columnId,omitempty"`
	Assignee    *AssigneeJSON `json:"assignee,omitempty"`
	Subtasks    []SubtaskJSON `json:"subtasks,omitempty"`
}

// AssigneeJSON is the user assigned to a task on the wire.
type AssigneeJSON struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SubtaskJSON is a subtask on the wire.
type SubtaskJSON struct {
	ID     int64  `json:"subtaskId"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

// ProjectJSON is a project on the wire.
type ProjectJSON struct {
	ID       int64  `json:"projectId"`
	Title    string `json:"title"`
	Favorite bool   `json:"favorite,omitempty"`
	Owner    bool   `json:"owner,omitempty"`
}

// CreateColumnJSON is the body to create or rename a column.
type CreateColumnJSON struct {
	Title     string `json:"title"`
	ProjectID int64  `json:"projectId"`
}

// CreateTaskJSON is the body to create a task.
type CreateTaskJSON struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	ColumnID int64  `json:"columnId"`
}

// ColumnToModel maps a wire column into the domain model.
func ColumnToModel(c ColumnJSON) model.Column {
	col := model.Column{
		ID:       c.ID,
		Title:    c.Title,
		Position: c.Position,
		Tasks:    make([]model.Task, 0, len(c.Tasks)),
	}
	for _, t := range c.Tasks {
		col.Tasks = append(col.Tasks, TaskToModel(t))
	}
	return col
}

// TaskToModel maps a wire task into the domain model.
func TaskToModel(t TaskJSON) model.Task {
	task := model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     parseDate(t.DueDate),
		Completed:   t.Status == statusCompleted,
		Position:    t.Position,
	}
	if t.Assignee != nil {
		task.Assignee = &model.Assignee{ID: t.Assignee.ID, Email: t.Assignee.Email}
	}
	for _, s := range t.Subtasks {
		task.Subtasks = append(task.Subtasks, model.Subtask{
			ID:        s.ID,
			Title:     s.Title,
			Completed: s.Status == statusCompleted,
		})
	}
	return task
}

// ColumnFromModel maps a domain column into its wire representation.
func ColumnFromModel(projectID int64, c model.Column) ColumnJSON {
	col := ColumnJSON{
		ID:        c.ID,
		Title:     c.Title,
		Position:  c.Position,
		ProjectID: projectID,
	}
	for _, t := range c.Tasks {
		tj := TaskFromModel(t)
		tj.ColumnID = c.ID
		col.Tasks = append(col.Tasks, tj)
	}
	return col
}

// TaskFromModel maps a domain task into its wire representation.
func TaskFromModel(t model.Task) TaskJSON {
	task := TaskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      statusString(t.Completed),
		Position:    t.Position,
	}
	if t.DueDate != nil {
		task.DueDate = t.DueDate.Format(dateLayout)
	}
	if t.Assignee != nil {
		task.Assignee = &AssigneeJSON{ID: t.Assignee.ID, Email: t.Assignee.Email}
	}
	for _, s := range t.Subtasks {
		task.Subtasks = append(task.Subtasks, SubtaskJSON{
			ID:     s.ID,
			Title:  s.Title,
			Status: statusString(s.Completed),
		})
	}
	return task
}

// ProjectToModel maps a wire project into the domain model.
func ProjectToModel(p ProjectJSON) model.Project {
	return model.Project{ID: p.ID, Title: p.Title, Favorite: p.Favorite, Owner: p.Owner}
}

func statusString(completed bool) string {
	if completed {
		return statusCompleted
	}
	return statusPending
}

// parseDate accepts dates and date-times, only the date part is kept.
func parseDate(s string) *time.Time {
	if len(s) < len(dateLayout) {
		return nil
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return nil
	}
	return &t
}
