// Package service wires the staffing engine to storage, the async job queue
// and the worker pool. It implements the dependencies of the HTTP API and
// the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/consultmatch/internal/adapters/mq/queue"
	"github.com/okian/consultmatch/internal/adapters/mq/worker"
	"github.com/okian/consultmatch/internal/adapters/repository"
	"github.com/okian/consultmatch/internal/domain/dedupe"
	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/staffing"
	"github.com/okian/consultmatch/internal/domain/types"
	"github.com/okian/consultmatch/pkg/logger"
	"github.com/okian/consultmatch/pkg/metrics"
)

const metricsRefreshInterval = 5 * time.Second

// Service implements the API dependencies for the staffing system.
type Service struct {
	mu sync.RWMutex

	// staffMu serializes the read-score-commit sequence.
	staffMu sync.Mutex

	store     repository.Store
	engine    *scoring.Engine
	assembler *staffing.Assembler
	deduper   dedupe.Deduper
	queue     *queue.InMemoryQueue
	pool      *worker.Pool

	jobsMu sync.RWMutex
	jobs   map[string]*types.Job

	workerCount     int
	queueSize       int
	idempotencySize int
	newID           func() string

	started bool
	stopCh  chan struct{}
	// cancelRun aborts in-flight jobs once Stop has drained the queue.
	cancelRun context.CancelFunc

	logger logger.Logger
}

// New constructs a Service. Without WithStore it keeps everything in memory.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		queueSize:       1024,
		idempotencySize: 10_000,
		newID:           uuid.NewString,
		jobs:            make(map[string]*types.Job),
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.engine == nil {
		s.engine = scoring.NewEngine()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.assembler = staffing.NewAssembler(s.engine, staffing.WithIDGenerator(s.newID))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.idempotencySize))

	return s
}

// Start launches the job queue, the worker pool and the pool metrics loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting staffing service...")

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s)

	// Workers outlive ctx so that Stop can drain jobs already queued.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancelRun = cancel
	s.pool.Start(runCtx)
	s.stopCh = make(chan struct{})
	go s.refreshMetricsLoop(runCtx, s.stopCh)

	s.started = true
	s.logger.Info(ctx, "staffing service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("idempotencySize", s.idempotencySize),
	)
	return nil
}

// Stop closes the queue, waits for the workers to finish every queued job
// and closes the store. Jobs still running when ctx expires are cancelled.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.started {
		s.logger.Info(ctx, "stopping staffing service...")
		if err := s.pool.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		s.cancelRun()
		close(s.stopCh)
		s.started = false
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	s.logger.Info(ctx, "staffing service stopped")
	return errors.Join(errs...)
}

// Consultants returns the pool in store order.
func (s *Service) Consultants(ctx context.Context) ([]types.Consultant, error) {
	pool, err := s.store.Consultants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Consultant, len(pool))
	for i, c := range pool {
		out[i] = types.FromConsultant(c)
	}
	return out, nil
}

// Consultant returns one consultant.
func (s *Service) Consultant(ctx context.Context, id string) (types.Consultant, error) {
	c, err := s.store.Consultant(ctx, id)
	if err != nil {
		return types.Consultant{}, err
	}
	return types.FromConsultant(c), nil
}

// SaveConsultant validates and stores a consultant.
func (s *Service) SaveConsultant(ctx context.Context, in types.Consultant) (types.Consultant, error) {
	c, err := in.ToModel()
	if err != nil {
		return types.Consultant{}, err
	}
	if err := s.store.SaveConsultant(ctx, c); err != nil {
		return types.Consultant{}, err
	}
	s.logger.Debug(ctx, "consultant saved", logger.String("consultant_id", c.ID))
	return types.FromConsultant(c), nil
}

// Projects returns every project in store order.
func (s *Service) Projects(ctx context.Context) ([]types.Project, error) {
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Project, len(projects))
	for i, p := range projects {
		out[i] = types.FromProject(p)
	}
	return out, nil
}

// Project returns one project.
func (s *Service) Project(ctx context.Context, id string) (types.Project, error) {
	p, err := s.store.Project(ctx, id)
	if err != nil {
		return types.Project{}, err
	}
	return types.FromProject(p), nil
}

// SaveProject validates and stores a project.
func (s *Service) SaveProject(ctx context.Context, in types.Project) (types.Project, error) {
	p, err := in.ToModel()
	if err != nil {
		return types.Project{}, err
	}
	if err := s.store.SaveProject(ctx, p); err != nil {
		return types.Project{}, err
	}
	s.logger.Debug(ctx, "project saved", logger.String("project_id", p.ID))
	return types.FromProject(p), nil
}

// Recommend assembles a team for the project without committing it.
func (s *Service) Recommend(ctx context.Context, projectID string) (types.Assignment, error) {
	res, err := s.assemble(ctx, projectID)
	if err != nil {
		return types.Assignment{}, err
	}
	return types.FromAssignment(res.Assignment, false), nil
}

// Staff assembles a team for the project and commits it. The returned
// members reflect their state before the commit.
func (s *Service) Staff(ctx context.Context, projectID string) (types.Assignment, error) {
	s.staffMu.Lock()
	defer s.staffMu.Unlock()

	start := time.Now()
	res, err := s.assemble(ctx, projectID)
	if err != nil {
		return types.Assignment{}, err
	}

	out := types.FromAssignment(res.Committed(), true)
	if err := s.store.Commit(ctx, out, res.Transitions); err != nil {
		metrics.RecordCommitFailure(commitFailureReason(err))
		s.logger.Error(ctx, "commit failed",
			logger.String("project_id", projectID),
			logger.Error(err),
		)
		return types.Assignment{}, fmt.Errorf("commit assignment for %s: %w", projectID, err)
	}

	metrics.RecordAssignment(out.Outcome, len(out.Consultants), res.Considered,
		float64(time.Since(start).Microseconds())/1000)
	s.refreshPoolMetrics(ctx)
	s.logger.Info(ctx, "team committed",
		logger.String("assignment_id", out.ID),
		logger.String("project_id", projectID),
		logger.Strings("members", res.Assignment.MemberIDs()),
		logger.String("outcome", out.Outcome),
		logger.Int("adjusted_team_size", out.AdjustedTeamSize),
	)
	return out, nil
}

// StaffOnce is Staff guarded by an idempotency key scoped to the project. A
// repeated key returns the first committed assignment with replay set. An
// empty key disables the guard.
func (s *Service) StaffOnce(ctx context.Context, projectID, key string) (a types.Assignment, replay bool, err error) {
	if key == "" {
		a, err = s.Staff(ctx, projectID)
		return a, false, err
	}

	scoped := projectID + "/" + key
	if s.deduper.SeenAndRecord(ctx, scoped) {
		id, done := s.deduper.Result(ctx, scoped)
		if !done {
			return types.Assignment{}, false, fmt.Errorf("key %q: %w", key, ErrInFlight)
		}
		a, err = s.store.Assignment(ctx, id)
		if err != nil {
			return types.Assignment{}, false, err
		}
		metrics.RecordIdempotentReplay()
		return a, true, nil
	}

	a, err = s.Staff(ctx, projectID)
	if err != nil {
		s.deduper.Unrecord(ctx, scoped)
		return types.Assignment{}, false, err
	}
	s.deduper.Complete(ctx, scoped, a.ID)
	return a, false, nil
}

// Shortlist ranks the available consultants for a project. A non-positive
// limit returns all of them.
func (s *Service) Shortlist(ctx context.Context, projectID string, limit int) ([]types.ShortlistEntry, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	pool, err := s.store.Consultants(ctx)
	if err != nil {
		return nil, err
	}
	ranked, err := staffing.Shortlist(s.engine, p, pool, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordShortlist()
	return types.FromShortlist(ranked), nil
}

// Assignment returns a committed assignment.
func (s *Service) Assignment(ctx context.Context, id string) (types.Assignment, error) {
	return s.store.Assignment(ctx, id)
}

// Size returns the number of remembered idempotency keys.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"idempotencyKeys": s.deduper.Size(),
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
	}

	if pool, err := s.store.Consultants(ctx); err == nil {
		byStatus := map[string]int{}
		for _, c := range pool {
			byStatus[c.Availability.Status().String()]++
		}
		stats["consultants"] = len(pool)
		stats["consultantsByStatus"] = byStatus
	}
	if projects, err := s.store.Projects(ctx); err == nil {
		stats["projects"] = len(projects)
	}

	s.jobsMu.RLock()
	stats["jobs"] = len(s.jobs)
	s.jobsMu.RUnlock()

	return stats
}

func (s *Service) assemble(ctx context.Context, projectID string) (staffing.Result, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return staffing.Result{}, err
	}
	pool, err := s.store.Consultants(ctx)
	if err != nil {
		return staffing.Result{}, err
	}
	res, err := s.assembler.Assemble(p, pool)
	if err != nil {
		return staffing.Result{}, fmt.Errorf("assemble team for %s: %w", projectID, err)
	}
	s.logger.Debug(ctx, "team assembled",
		logger.String("project_id", projectID),
		logger.Int("considered", res.Considered),
		logger.Strings("members", res.Assignment.MemberIDs()),
	)
	return res, nil
}

func commitFailureReason(err error) string {
	switch {
	case errors.Is(err, staffing.ErrStaleState):
		return "stale_state"
	case errors.Is(err, staffing.ErrUnknownConsultant):
		return "unknown_consultant"
	case errors.Is(err, repository.ErrClosed):
		return "store_closed"
	default:
		return "store_error"
	}
}

func (s *Service) refreshMetricsLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(metricsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.refreshPoolMetrics(ctx)

			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}

func (s *Service) refreshPoolMetrics(ctx context.Context) {
	pool, err := s.store.Consultants(ctx)
	if err != nil {
		return
	}
	counts := map[model.Status]int{
		model.StatusAvailable:   0,
		model.StatusAssigned:    0,
		model.StatusUnavailable: 0,
	}
	for _, c := range pool {
		counts[c.Availability.Status()]++
	}
	for status, n := range counts {
		metrics.UpdateConsultantsByStatus(status.String(), n)
	}

	if projects, err := s.store.Projects(ctx); err == nil {
		metrics.UpdateProjectsTotal(len(projects))
	}
}
