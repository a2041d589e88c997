package session

import (
	"context"

	"github.com/google/uuid"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
	"brewflow/internal/tick"
)

// Runner is the single writer for a Machine. Intents and ticks are
// funneled through one goroutine in arrival order, so the machine itself
// never needs a lock. One runner, one scheduler, one session.
type Runner struct {
	id      string
	machine *Machine
	sched   *tick.Scheduler
	clock   domain.Clock
	log     *logger.Logger

	intents chan domain.Intent
	updates chan Snapshot
	done    chan struct{}

	paused bool
}

// NewRunner wires a machine to its tick scheduler.
func NewRunner(plan *domain.BrewPlan, clock domain.Clock, sched *tick.Scheduler, log *logger.Logger) *Runner {
	return &Runner{
		id:      uuid.NewString(),
		machine: NewMachine(plan, clock, log),
		sched:   sched,
		clock:   clock,
		log:     log.Named("session"),
		intents: make(chan domain.Intent, 16),
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// ID returns the session identifier.
func (r *Runner) ID() string { return r.id }

// Updates returns the snapshot channel. Only the latest snapshot is kept;
// a slow consumer never blocks the session.
func (r *Runner) Updates() <-chan Snapshot { return r.updates }

// Done is closed when the session tears down (exit intent or context
// cancellation).
func (r *Runner) Done() <-chan struct{} { return r.done }

// Dispatch queues a user intent for the runner goroutine.
func (r *Runner) Dispatch(in domain.Intent) {
	select {
	case r.intents <- in:
	case <-r.done:
	}
}

// LogRequest assembles the boundary object for the persistence
// collaborator. Call only after a Completed snapshot has been observed;
// the machine is quiescent by then.
func (r *Runner) LogRequest(rating int, tag, note string) domain.CreateLogRequest {
	p := r.machine.Plan()
	elapsed, _ := r.machine.Elapsed()
	return domain.CreateLogRequest{
		BrewedAt:   r.clock.Now(),
		Method:     p.Method,
		RecipeID:   p.RecipeID,
		RecipeName: p.RecipeName,
		Dose:       p.Dose,
		Yield:      p.Yield,
		WaterTempC: p.WaterTempC,
		GrindLabel: p.GrindLabel,
		BrewTime:   elapsed,
		Rating:     rating,
		Tag:        tag,
		Note:       note,
	}
}

// Run starts the session at the first step and processes intents and
// ticks until exit. Blocks; run it as a goroutine.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer r.sched.Stop()

	r.machine.Apply(domain.Intent{Type: domain.IntentStart})
	r.ensureTicking(ctx)
	r.publish()

	for {
		select {
		case <-ctx.Done():
			return
		case in := <-r.intents:
			if exit := r.handle(ctx, in); exit {
				return
			}
			r.publish()
		case now := <-r.sched.Ticks():
			r.machine.Tick(now)
			if r.machine.Phase() == domain.PhaseCompleted {
				r.sched.Stop()
			}
			r.publish()
		}
	}
}

// handle applies one intent. Returns true when the session should tear
// down. Next, restart, and exit are cancellation points: the running tick
// loop is cancelled before any new loop starts.
func (r *Runner) handle(ctx context.Context, in domain.Intent) bool {
	r.log.Debug("intent %s", in.Type)

	switch in.Type {
	case domain.IntentPause:
		if r.paused || !r.sched.Running() {
			r.log.Debug("pause ignored, nothing ticking")
			return false
		}
		r.sched.Stop()
		r.paused = true

	case domain.IntentResume:
		if !r.paused {
			r.log.Debug("resume ignored, not paused")
			return false
		}
		r.paused = false
		// Re-anchor the countdown so the paused gap is not deducted.
		r.machine.ResumeAt(r.clock.Now())
		r.ensureTicking(ctx)

	case domain.IntentNext:
		r.sched.Stop()
		r.machine.Apply(in)
		r.ensureTicking(ctx)

	case domain.IntentRestart:
		r.sched.Stop()
		r.paused = false
		if r.machine.Apply(in) {
			// Rewound to NotStarted; re-enter the first step the same
			// way the session entered it originally.
			r.machine.Apply(domain.Intent{Type: domain.IntentStart})
		}
		r.ensureTicking(ctx)

	case domain.IntentStart, domain.IntentConfirmPour:
		r.machine.Apply(in)
		r.ensureTicking(ctx)

	case domain.IntentExit:
		// Confirmation happened at the boundary; tearing down is all
		// that is left to do here.
		r.sched.Stop()
		return true

	case domain.IntentStatus, domain.IntentHelp, domain.IntentUnknown:
		// Display-only intents; republishing the snapshot is enough.

	default:
		r.log.Debug("unhandled intent %s, ignored", in.Type)
	}
	return false
}

// ensureTicking keeps the tick loop alive exactly while there is
// something to display: a running countdown or a started session clock.
// Completed sessions never tick.
func (r *Runner) ensureTicking(ctx context.Context) {
	if r.paused || r.machine.Phase() == domain.PhaseCompleted {
		r.sched.Stop()
		return
	}
	_, counting := r.machine.Remaining()
	_, clockStarted := r.machine.Elapsed()
	if counting || clockStarted {
		r.sched.Start(ctx)
	} else {
		r.sched.Stop()
	}
}

// publish replaces the latest snapshot, dropping the stale one if the
// consumer has not caught up.
func (r *Runner) publish() {
	snap := r.machine.Snapshot(r.id, r.paused)
	for {
		select {
		case r.updates <- snap:
			return
		default:
			select {
			case <-r.updates:
			default:
			}
		}
	}
}
