// Package tasks tracks background jobs so the UI can surface what the
// application is doing.
package tasks

import "sync"

// Task is one tracked background job.
type Task struct {
	ID       int
	Name     string
	Progress int // completed units
	Total    int // total units, 0 when indeterminate
}

// Manager is a registry of running background tasks. All methods are safe
// for concurrent use; change observers are invoked on the calling
// goroutine.
type Manager struct {
	mu       sync.Mutex
	nextID   int
	tasks    map[int]*Task
	onChange []func()
}

// NewManager creates an empty task manager.
func NewManager() *Manager {
	return &Manager{tasks: make(map[int]*Task)}
}

// OnChange registers an observer called after every task mutation.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	m.mu.Unlock()
}

// Start registers a new task and returns its ID.
func (m *Manager) Start(name string) int {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.tasks[id] = &Task{ID: id, Name: name}
	m.mu.Unlock()

	m.notify()
	return id
}

// SetProgress updates a task's progress counters.
func (m *Manager) SetProgress(id, progress, total int) {
	m.mu.Lock()
	if t, ok := m.tasks[id]; ok {
		t.Progress = progress
		t.Total = total
	}
	m.mu.Unlock()

	m.notify()
}

// Finish removes a completed task.
func (m *Manager) Finish(id int) {
	m.mu.Lock()
	delete(m.tasks, id)
	m.mu.Unlock()

	m.notify()
}

// Active returns a snapshot of the running tasks.
func (m *Manager) Active() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	return out
}

func (m *Manager) notify() {
	m.mu.Lock()
	observers := make([]func(), len(m.onChange))
	copy(observers, m.onChange)
	m.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}
