package tasks

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// Task is one item on a user's cockpit task list.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary reports per-user task counts for the profile read-model.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Manager keeps per-user task lists in memory.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string][]Task
}

func NewManager() *Manager {
	return &Manager{tasks: make(map[string][]Task)}
}

func (m *Manager) Add(userID, title string) Task {
	t := Task{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[userID] = append(m.tasks[userID], t)
	return t
}

func (m *Manager) Complete(userID, taskID string) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.tasks[userID]
	for i := range list {
		if list[i].ID == taskID {
			list[i].Done = true
			return list[i], nil
		}
	}
	return Task{}, ErrNotFound
}

func (m *Manager) Summarize(userID string) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Summary{}
	for _, t := range m.tasks[userID] {
		s.Total++
		if t.Done {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s
}
