package state

import (
	"sync"
	"time"

	"github.com/danhigham/splashscreen/internal/domain"
)

const maxEvents = 500

// Store holds the host's boot tasks and lifecycle event log. Boot tasks
// report from their own goroutines; drawFunc tells the UI to repaint.
type Store struct {
	mu       sync.RWMutex
	tasks    []domain.BootTask
	events   []domain.Event
	now      func() time.Time
	drawFunc func()
}

func New(drawFunc func()) *Store {
	return &Store{
		now:      time.Now,
		drawFunc: drawFunc,
	}
}

func (s *Store) SetDrawFunc(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawFunc = f
}

// SetClock replaces time.Now for task and event timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) draw() {
	if s.drawFunc != nil {
		s.drawFunc()
	}
}

// SetTasks replaces the task list; every task starts pending.
func (s *Store) SetTasks(tasks []domain.BootTask) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]domain.BootTask, len(tasks))
	for i, t := range tasks {
		s.tasks[i] = domain.BootTask{Name: t.Name, Duration: t.Duration}
	}
	s.draw()
}

func (s *Store) OnTaskStarted(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].Name == name && s.tasks[i].Status == domain.TaskPending {
			s.tasks[i].Status = domain.TaskRunning
			s.tasks[i].Started = s.now()
			break
		}
	}
	s.draw()
}

// OnTaskFinished marks a running or pending task done, or failed when err is
// non-nil. Finished tasks are not reopened.
func (s *Store) OnTaskFinished(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.Name != name || t.Status.Finished() {
			continue
		}
		t.Status = domain.TaskDone
		if err != nil {
			t.Status = domain.TaskFailed
			t.Err = err.Error()
		}
		t.Finished = s.now()
		break
	}
	s.draw()
}

func (s *Store) GetTasks() []domain.BootTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BootTask, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// BootProgress returns how many tasks have finished out of the total.
func (s *Store) BootProgress() (finished, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.Status.Finished() {
			finished++
		}
	}
	return finished, len(s.tasks)
}

// BootComplete reports whether every task has finished. An empty task list
// is complete.
func (s *Store) BootComplete() bool {
	finished, total := s.BootProgress()
	return finished == total
}

// Record appends a lifecycle event, keeping the newest maxEvents.
func (s *Store) Record(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, domain.Event{Time: s.now(), Text: text})
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
	s.draw()
}

func (s *Store) GetEvents() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}
