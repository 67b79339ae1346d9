package scheduler

import (
	"context"
	"fmt"
	"time"

	cron "github.com/robfig/cron/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics записывает результаты запусков задач
type Metrics interface {
	RecordSchedulerRun(job string, err error)
}

// JobFunc один проход фоновой задачи
type JobFunc func(ctx context.Context) error

// Scheduler запускает фоновые задачи по расписанию cron.
// Запуски одной задачи не перекрываются: следующий пропускается, пока идёт предыдущий.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	metrics Metrics
	log     Logger
}

// New создает планировщик. Расписания интерпретируются в часовом поясе loc.
// timeout ограничивает длительность одного прохода.
func New(loc *time.Location, timeout time.Duration, metrics Metrics, log Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// Register добавляет задачу name с расписанием spec ("@every 60s", "0 10 * * *")
func (s *Scheduler) Register(name, spec string, job JobFunc) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		s.run(name, job)
	}))

	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("scheduler: register %s with spec %q: %w", name, spec, err)
	}

	s.log.Info("Scheduler: registered job=%s spec=%q", name, spec)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler: started with %d jobs", len(s.cron.Entries()))
}

// Stop останавливает планировщик и ждёт завершения текущих проходов или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.cancel()
		<-done.Done()
	}
	s.cancel()
	s.log.Info("Scheduler: stopped")
}

func (s *Scheduler) run(name string, job JobFunc) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := job(ctx)
	s.metrics.RecordSchedulerRun(name, err)

	if err != nil {
		s.log.Error("Scheduler: job=%s failed after %s: %v", name, time.Since(start), err)
	}
}
