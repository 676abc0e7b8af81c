// Package sim defines the stepping contract shared by all engines and
// a cooperative fixed-step driver for callers that render at a display
// rate decoupled from the simulation rate.
//
// Engines are single-threaded: a Step call is a bounded synchronous
// computation, frame N completes fully before frame N+1, and input
// mutators must be called from the same context between steps. Engines
// hold no timers or OS handles; disposal is dropping the reference.
package sim

import "time"

// Stepper advances a simulation by exactly one frame.
type Stepper interface {
	Step()
}

// StepFunc adapts a plain function to the Stepper interface. Useful
// for engines whose per-frame entry point takes inputs (the flock's
// Update) once the caller has bound them.
type StepFunc func()

// Step calls the wrapped function.
func (f StepFunc) Step() { f() }

// FixedStep runs simulation updates at a steady ticks-per-second rate
// using a wall-clock accumulator. Rendering may poll ShouldStep once
// per display frame and step as many times as the clock owes.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given
// TPS. Non-positive rates fall back to 60.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Runner drives one engine instance: it owns the tick counter and the
// clock. One Runner per visible widget; runners share nothing.
type Runner struct {
	stepper Stepper
	clock   *FixedStep
	tick    int64
}

// NewRunner wraps a stepper with a fixed-step clock at the given TPS.
func NewRunner(s Stepper, tps int) *Runner {
	return &Runner{stepper: s, clock: NewFixedStep(tps)}
}

// Tick returns the number of completed steps.
func (r *Runner) Tick() int64 { return r.tick }

// Advance forces exactly one step, ignoring the clock. Headless
// drivers use this to run as fast as possible.
func (r *Runner) Advance() {
	r.stepper.Step()
	r.tick++
}

// Update steps the simulation as many times as the clock owes since
// the last call, and returns the number of steps taken. Callers invoke
// it once per rendered frame.
func (r *Runner) Update() int {
	steps := 0
	for r.clock.ShouldStep() {
		r.stepper.Step()
		r.tick++
		steps++
	}
	return steps
}
