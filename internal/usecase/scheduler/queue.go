package scheduler

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
)

// BuildQueue returns every ordered pairing of distinct strategies on every
// board. Pairings are laid out in rotation layers so each layer gives every
// player exactly one game as A and one as B before the next layer starts.
func BuildQueue(boards, strategies []string) []domain.Task {
	n := len(strategies)
	if n < 2 {
		return nil
	}
	tasks := make([]domain.Task, 0, len(boards)*n*(n-1))
	for _, board := range boards {
		for offset := 1; offset < n; offset++ {
			for i, a := range strategies {
				tasks = append(tasks, domain.Task{
					ID:        uuid.NewString(),
					StrategyA: a,
					StrategyB: strategies[(i+offset)%n],
					Board:     board,
				})
			}
		}
	}
	return tasks
}

// queue is filled once and only drained afterwards.
type queue struct {
	mu    *sync.Mutex
	tasks []domain.Task
}

func newQueue(tasks []domain.Task) *queue {
	cp := make([]domain.Task, len(tasks))
	copy(cp, tasks)
	return &queue{
		mu:    &sync.Mutex{},
		tasks: cp,
	}
}

func (q *queue) pop() (domain.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return domain.Task{}, false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
