package fake

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/workly/workly/internal/model"
)

// SeedFile is the YAML structure of a fake API seed file.
type SeedFile struct {
	Projects []SeedProject `yaml:"projects"`
}

// SeedProject is a project with its board.
type SeedProject struct {
	ID       int64        `yaml:"id"`
	Title    string       `yaml:"title"`
	Favorite bool         `yaml:"favorite"`
	Columns  []SeedColumn `yaml:"columns"`
}

// SeedColumn is a column in board order.
type SeedColumn struct {
	ID    int64      `yaml:"id"`
	Title string     `yaml:"title"`
	Tasks []SeedTask `yaml:"tasks"`
}

// SeedTask is a task in column order.
type SeedTask struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// DueDate is a YYYY-MM-DD date.
	DueDate   string `yaml:"dueDate"`
	Completed bool   `yaml:"completed"`
	Assignee  *struct {
		ID    int64  `yaml:"id"`
		Email string `yaml:"email"`
	} `yaml:"assignee"`
	Subtasks []struct {
		ID        int64  `yaml:"id"`
		Title     string `yaml:"title"`
		Completed bool   `yaml:"completed"`
	} `yaml:"subtasks"`
}

// LoadSeed parses a YAML seed file.
func LoadSeed(data []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &f, nil
}

// Boards returns the boards of the seed.
func (f SeedFile) Boards() ([]model.Board, error) {
	boards := make([]model.Board, 0, len(f.Projects))
	for _, p := range f.Projects {
		b := model.Board{ProjectID: p.ID, Title: p.Title, Columns: make([]model.Column, 0, len(p.Columns))}
		for _, c := range p.Columns {
			col := model.Column{ID: c.ID, Title: c.Title, Tasks: make([]model.Task, 0, len(c.Tasks))}
			for _, t := range c.Tasks {
				task := model.Task{ID: t.ID, Title: t.Title, Description: t.Description, Completed: t.Completed}
				if t.DueDate != "" {
					d, err := time.Parse(time.DateOnly, t.DueDate)
					if err != nil {
						return nil, fmt.Errorf("task %d due date %q: %w", t.ID, t.DueDate, model.ErrNotValid)
					}
					task.DueDate = &d
				}
				if t.Assignee != nil {
					task.Assignee = &model.Assignee{ID: t.Assignee.ID, Email: t.Assignee.Email}
				}
				for _, s := range t.Subtasks {
					task.Subtasks = append(task.Subtasks, model.Subtask{ID: s.ID, Title: s.Title, Completed: s.Completed})
				}
				col.Tasks = append(col.Tasks, task)
			}
			b.Columns = append(b.Columns, col)
		}
		b.Normalize()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("project %d: %w", p.ID, err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// Load seeds the API with all the projects of the seed file.
func (f SeedFile) Load(a *API) error {
	boards, err := f.Boards()
	if err != nil {
		return err
	}
	for i, b := range boards {
		if err := a.Seed(b); err != nil {
			return fmt.Errorf("could not seed project %d: %w", b.ProjectID, err)
		}
		if err := a.SetFavorite(b.ProjectID, f.Projects[i].Favorite); err != nil {
			return err
		}
	}
	return nil
}

// DemoSeed is the seed used when no seed file is provided.
const DemoSeed = `
projects:
  - id: 1
    title: Roadmap
    favorite: true
    columns:
      - id: 10
        title: Todo
        tasks:
          - id: 100
            title: Write the release notes
            dueDate: "2026-11-02"
            assignee: {id: 7, email: ana@workly.dev}
          - id: 101
            title: Review the board API
            subtasks:
              - {id: 1000, title: Positions, completed: true}
              - {id: 1001, title: Moves}
      - id: 20
        title: Doing
        tasks:
          - id: 200
            title: Drag and drop
      - id: 30
        title: Done
  - id: 2
    title: Personal
    columns:
      - id: 40
        title: Backlog
`
