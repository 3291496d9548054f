package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/clock"
	"github.com/vovakirdan/tui-invaders/internal/sched"
)

// Driver runs the per-frame cycle for the controller's current simulation.
// Every callback it schedules carries the epoch it was armed under and
// exits without side effects once that epoch is stale.
type Driver struct {
	c     *Controller
	gate  *clock.Gate
	speed float64
	ticks uint64
}

func newDriver(c *Controller, tickRate, speed float64) *Driver {
	return &Driver{
		c:     c,
		gate:  clock.NewGate(tickRate),
		speed: speed,
	}
}

// TickInterval returns the minimum spacing of simulation ticks.
func (d *Driver) TickInterval() time.Duration {
	return d.gate.Interval()
}

func (d *Driver) reset(now time.Time) {
	d.gate.Reset(now)
	d.ticks = 0
}

// arm schedules the next link of the frame chain.
func (d *Driver) arm(epoch uint64) {
	d.c.sched.NextFrame(func(now time.Time) error {
		return d.frame(epoch, now)
	})
}

func (d *Driver) frame(epoch uint64, now time.Time) error {
	c := d.c
	if epoch != c.epoch {
		return nil
	}
	if c.phase == PhaseRunning && d.gate.ShouldTick(now) {
		if err := guard(d.tick); err != nil {
			return c.fail(err)
		}
	}
	// The tick may have ended the session.
	if epoch == c.epoch {
		d.arm(epoch)
	}
	return nil
}

// tick renders the current state, then applies intent and advances the
// simulation. Drawing first means each frame shows the state that the
// previous tick produced.
func (d *Driver) tick() error {
	c := d.c
	sim := c.sim
	d.render(sim)

	intent := c.input.CurrentIntent()
	def := sim.Defender()
	if intent.MoveLeft {
		def.Power(-d.speed, 0)
	} else if intent.MoveRight {
		def.Power(d.speed, 0)
	}
	if intent.Fire {
		def.FireBullet()
	}
	c.input.ConsumeFire()

	sim.MoveInvaders()
	sim.AddUFO()
	if err := sim.Step(); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	d.ticks++

	if sim.IsGameOver() {
		c.gameOver()
	}
	return nil
}

func (d *Driver) render(sim Simulation) {
	sim.Draw(d.c.surface)
	drawHUD(d.c.surface, sim, d.c.muted)
}

// armToggle starts the sprite animation timer. It runs on its own cadence,
// independent of ticks, and does nothing while paused.
func (d *Driver) armToggle(epoch uint64, period time.Duration) sched.Handle {
	c := d.c
	return c.sched.Every(period, func(time.Time) error {
		if epoch != c.epoch || c.phase != PhaseRunning {
			return nil
		}
		if err := guard(func() error {
			c.sim.ToggleInvaders()
			return nil
		}); err != nil {
			return c.fail(err)
		}
		return nil
	})
}

// guard converts a panic inside a simulation call into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSimulationPanic, r)
		}
	}()
	return fn()
}
