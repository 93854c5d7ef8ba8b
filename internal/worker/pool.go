package worker

import (
	"context"
	"sync"
	"time"

	"karrirconnect-backend/internal/logger"
)

// Task is a unit of background work dispatched off the request path,
// typically a notification fan-out after a ledger write has committed.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool runs tasks on a fixed set of workers fed by a buffered channel.
// Submit never blocks the caller; when the buffer is full the task is
// dropped and logged, since notifications are best-effort.
type Pool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

func NewPool(bufferSize int, taskTimeout time.Duration) *Pool {
	if bufferSize < 1 {
		bufferSize = 64
	}
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	return &Pool{
		tasks:   make(chan Task, bufferSize),
		timeout: taskTimeout,
	}
}

func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	logger.Info("worker pool started", "workers", workers, "buffer", cap(p.tasks))
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("background task panicked", "worker", id, "task", task.Name, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := task.Run(ctx); err != nil {
		logger.Error("background task failed", "worker", id, "task", task.Name, "error", err)
	}
}

// Submit enqueues a task. It returns false when the pool is shut down
// or the buffer is full.
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		logger.Warn("worker pool buffer full, dropping task", "task", task.Name)
		return false
	}
}

// Shutdown stops accepting tasks and waits for in-flight work to drain.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	logger.Info("worker pool drained")
}
