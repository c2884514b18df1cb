package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/consultmatch/internal/adapters/mq/queue"
	"github.com/okian/consultmatch/internal/domain/types"
	"github.com/okian/consultmatch/pkg/logger"
)

// SubmitJob queues an asynchronous Staff for the project and returns the
// pending job. The project must exist.
func (s *Service) SubmitJob(ctx context.Context, projectID, key string) (types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.Job{}, ErrNotStarted
	}
	if _, err := s.store.Project(ctx, projectID); err != nil {
		return types.Job{}, err
	}

	job := &types.Job{
		ID:          s.newID(),
		ProjectID:   projectID,
		Status:      types.JobPending,
		SubmittedAt: time.Now().UTC(),
	}
	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	if !s.queue.Enqueue(ctx, queue.Request{JobID: job.ID, ProjectID: projectID, IdempotencyKey: key}) {
		s.jobsMu.Lock()
		delete(s.jobs, job.ID)
		s.jobsMu.Unlock()
		return types.Job{}, ErrQueueFull
	}

	s.logger.Debug(ctx, "job queued",
		logger.String("job_id", job.ID),
		logger.String("project_id", projectID),
	)
	return s.snapshot(job), nil
}

// Job returns the current state of a job.
func (s *Service) Job(_ context.Context, id string) (types.Job, error) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return types.Job{}, fmt.Errorf("job %s: %w", id, ErrJobNotFound)
	}
	return *copyJob(job), nil
}

// HandleStaffing runs a queued job. It is called by the worker pool.
func (s *Service) HandleStaffing(ctx context.Context, r queue.Request) error {
	a, _, err := s.StaffOnce(ctx, r.ProjectID, r.IdempotencyKey)

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	job, ok := s.jobs[r.JobID]
	if !ok {
		job = &types.Job{ID: r.JobID, ProjectID: r.ProjectID, SubmittedAt: r.EnqueuedAt}
		s.jobs[r.JobID] = job
	}
	finished := time.Now().UTC()
	job.FinishedAt = &finished
	if err != nil {
		job.Status = types.JobFailed
		job.Error = err.Error()
		return err
	}
	job.Status = types.JobSucceeded
	job.Assignment = &a
	return nil
}

func (s *Service) snapshot(job *types.Job) types.Job {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	return *copyJob(job)
}

func copyJob(job *types.Job) *types.Job {
	out := *job
	if job.FinishedAt != nil {
		t := *job.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
