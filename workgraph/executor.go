package workgraph

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/otbackend/orchestration"
)

// Work is a unit of work of the backend.
type Work interface {
	Exec(ctx *orchestration.Context) error
}

// WorkFunc adapts a function to the Work interface.
type WorkFunc func(ctx *orchestration.Context) error

// Exec calls f(ctx).
func (f WorkFunc) Exec(ctx *orchestration.Context) error {
	return f(ctx)
}

// Job is a unit of work as scheduled by the executor. Read and Write are
// the access predicates of the context view the job receives; a nil
// predicate denies all access.
type Job struct {
	Id           orchestration.AnyWorkId
	Work         Work
	Dependencies []orchestration.AnyWorkId
	Read         orchestration.AccessFn
	Write        orchestration.AccessFn
}

// Errors detected before any job runs.
var (
	ErrDuplicateJob      = errors.New("duplicate job")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCycle             = errors.New("dependency cycle")
)

// Executor runs jobs on a pool of workers.
type Executor struct {
	root      *orchestration.Context
	workers   int
	jobs      map[orchestration.AnyWorkId]*Job
	completed map[orchestration.AnyWorkId]bool
}

// NewExecutor creates an executor sharing artifacts through root. If workers
// is 0 or negative, GOMAXPROCS workers are used.
func NewExecutor(root *orchestration.Context, workers int) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{
		root:      root,
		workers:   workers,
		jobs:      make(map[orchestration.AnyWorkId]*Job),
		completed: make(map[orchestration.AnyWorkId]bool),
	}
}

// Add schedules a job.
func (e *Executor) Add(job Job) error {
	if _, dup := e.jobs[job.Id]; dup || e.completed[job.Id] {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Id)
	}
	if job.Read == nil {
		job.Read = orchestration.AccessNone()
	}
	if job.Write == nil {
		job.Write = orchestration.AccessNone()
	}
	e.jobs[job.Id] = &job
	return nil
}

// Complete marks artifacts as already available, e.g. the output of a
// frontend.
func (e *Executor) Complete(ids ...orchestration.AnyWorkId) {
	for _, id := range ids {
		e.completed[id] = true
	}
}

// Validate checks that every dependency is either a job or completed and
// that the dependency graph is acyclic.
func (e *Executor) Validate() error {
	var errs []error
	for _, id := range e.sortedIds() {
		for _, dep := range e.jobs[id].Dependencies {
			if _, ok := e.jobs[dep]; !ok && !e.completed[dep] {
				errs = append(errs, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, id, dep))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[orchestration.AnyWorkId]int, len(e.jobs))
	var path []orchestration.AnyWorkId
	var visit func(id orchestration.AnyWorkId) error
	visit = func(id orchestration.AnyWorkId) error {
		switch state[id] {
		case visiting:
			var names []string
			for _, p := range path {
				names = append(names, p.String())
			}
			return fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(names, " -> "), id)
		case done:
			return nil
		}
		state[id] = visiting
		path = append(path, id)
		if job, ok := e.jobs[id]; ok {
			for _, dep := range job.Dependencies {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}
	for _, id := range e.sortedIds() {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

type result struct {
	id  orchestration.AnyWorkId
	err error
}

// schedule tracks the jobs of a run which have not yet been started.
// unmet counts the dependencies of a job which have not completed yet;
// dependents is the reverse of the dependency relation.
type schedule struct {
	pending    map[orchestration.AnyWorkId]*Job
	unmet      map[orchestration.AnyWorkId]int
	dependents map[orchestration.AnyWorkId][]orchestration.AnyWorkId
	ready      *treeset.Set
}

func (e *Executor) newSchedule() *schedule {
	s := &schedule{
		pending:    make(map[orchestration.AnyWorkId]*Job, len(e.jobs)),
		unmet:      make(map[orchestration.AnyWorkId]int, len(e.jobs)),
		dependents: make(map[orchestration.AnyWorkId][]orchestration.AnyWorkId),
		ready:      treeset.NewWith(compareIds),
	}
	for id, job := range e.jobs {
		if e.completed[id] {
			continue
		}
		s.pending[id] = job
		for _, dep := range job.Dependencies {
			if !e.completed[dep] {
				s.unmet[id]++
				s.dependents[dep] = append(s.dependents[dep], id)
			}
		}
		if s.unmet[id] == 0 {
			s.ready.Add(id)
		}
	}
	return s
}

// next removes the smallest ready job from the schedule.
func (s *schedule) next() *Job {
	it := s.ready.Iterator()
	if !it.First() {
		return nil
	}
	id := it.Value().(orchestration.AnyWorkId)
	s.ready.Remove(id)
	job := s.pending[id]
	delete(s.pending, id)
	return job
}

// done makes the dependents of a completed job ready once all of their
// dependencies are met.
func (s *schedule) done(id orchestration.AnyWorkId) {
	for _, d := range s.dependents[id] {
		s.unmet[d]--
		if s.unmet[d] == 0 {
			s.ready.Add(d)
		}
	}
}

// Run executes all jobs. It returns the errors of all failed jobs, joined.
// Cancelling ctx stops starting new jobs.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.Validate(); err != nil {
		return err
	}
	sched := e.newSchedule()
	tracer().Infof("executing %d jobs on %d workers", len(sched.pending), e.workers)
	queue := make(chan *Job)
	results := make(chan result)
	for i := 0; i < e.workers; i++ {
		go e.worker(queue, results)
	}
	defer close(queue)
	var errs []error
	var job *Job // taken from the schedule, not yet handed to a worker
	running := 0
	for {
		stopped := len(errs) > 0 || ctx.Err() != nil
		if job == nil && !stopped {
			job = sched.next()
		}
		if stopped || job == nil {
			if running == 0 {
				break
			}
			r := <-results
			running--
			errs = e.finish(sched, r, errs)
			continue
		}
		select {
		case queue <- job:
			job = nil
			running++
		case r := <-results:
			running--
			errs = e.finish(sched, r, errs)
		}
	}
	notStarted := len(sched.pending)
	if job != nil {
		notStarted++
	}
	if err := ctx.Err(); err != nil && notStarted > 0 {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		tracer().Errorf("%d job(s) failed, %d not started", len(errs), notStarted)
	}
	return errors.Join(errs...)
}

func (e *Executor) worker(queue <-chan *Job, results chan<- result) {
	for job := range queue {
		tracer().Debugf("start %s", job.Id)
		view := e.root.CopyForWork(job.Read, job.Write)
		err := job.Work.Exec(view)
		results <- result{id: job.Id, err: err}
	}
}

func (e *Executor) finish(sched *schedule, r result, errs []error) []error {
	if r.err != nil {
		tracer().Errorf("%s failed: %v", r.id, r.err)
		return append(errs, r.err)
	}
	tracer().Debugf("done %s", r.id)
	e.completed[r.id] = true
	sched.done(r.id)
	return errs
}

func (e *Executor) sortedIds() []orchestration.AnyWorkId {
	set := treeset.NewWith(compareIds)
	for id := range e.jobs {
		set.Add(id)
	}
	ids := make([]orchestration.AnyWorkId, 0, set.Size())
	for _, v := range set.Values() {
		ids = append(ids, v.(orchestration.AnyWorkId))
	}
	return ids
}

func compareIds(a, b interface{}) int {
	return a.(orchestration.AnyWorkId).Compare(b.(orchestration.AnyWorkId))
}
