package eventloop

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler for tests and offline runs. Nothing
// fires until Advance moves the virtual clock past a deadline.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn at now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	task := &manualTask{owner: m, at: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

// Advance moves the clock forward by d and runs every task that became due,
// in deadline order (ties in scheduling order). Tasks scheduled by a running
// task are eligible in the same call when their deadline has passed.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		task := m.nextDue(target)
		if task == nil {
			break
		}
		m.now = task.at
		m.remove(task)
		if task.fn != nil {
			task.fn()
		}
	}
	m.now = target
}

// Now reports the virtual clock.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports how many tasks have not fired or been stopped.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

func (m *Manual) nextDue(target time.Duration) *manualTask {
	if len(m.tasks) == 0 {
		return nil
	}
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at == m.tasks[j].at {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].at < m.tasks[j].at
	})
	if m.tasks[0].at > target {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) remove(task *manualTask) bool {
	for i, candidate := range m.tasks {
		if candidate == task {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true
		}
	}
	return false
}

type manualTask struct {
	owner *Manual
	at    time.Duration
	seq   int
	fn    func()
}

func (t *manualTask) Stop() bool {
	return t.owner.remove(t)
}
