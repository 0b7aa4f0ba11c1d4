package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/dsl"
)

// deviceStats is the demo machine's application payload.
type deviceStats struct {
	PowerCycles int
	JobsDone    int
}

// buildDemoChart assembles the bundled demo: a power-managed device.
//
//	device
//	├── off            (initial)
//	└── on
//	    ├── idle       (initial)
//	    └── active
//
// Events (plain strings): power, work, done, battery-low, shutdown.
// battery-low is handled by the composite "on" state for both children.
func buildDemoChart(w io.Writer) (*espalier.Chart, error) {
	out := termenv.NewOutput(w)
	trace := func(color, msg string) {
		fmt.Fprintln(w, out.String(msg).Foreground(out.Color(color)).String())
	}

	b := dsl.New()
	device := b.State("device").
		OnEntry(func(m espalier.Instance) { trace("12", "[device] initializing") }).
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			if ev == "shutdown" {
				m.Terminate(0)
				return espalier.Handled
			}
			trace("8", fmt.Sprintf("[device] ignoring %v", ev))
			return espalier.Handled
		})

	device.State("off").Initial().
		OnEntry(func(m espalier.Instance) { trace("9", "[off] powered off") }).
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			if ev == "power" {
				m.Payload().(*deviceStats).PowerCycles++
				_ = m.Transition("on")
				return espalier.Handled
			}
			return espalier.Propagate
		})

	on := device.State("on").
		OnEntry(func(m espalier.Instance) { trace("10", "[on] power up sequence") }).
		OnExit(func(m espalier.Instance) { trace("10", "[on] shutting down power") }).
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			switch ev {
			case "battery-low":
				trace("11", "[on] battery low, emergency shutdown")
				_ = m.Transition("off")
				return espalier.Handled
			case "power":
				_ = m.Transition("off")
				return espalier.Handled
			}
			return espalier.Propagate
		})

	on.State("idle").Initial().
		OnEntry(func(m espalier.Instance) { trace("14", "[idle] awaiting commands") }).
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			if ev == "work" {
				_ = m.Transition("active")
				return espalier.Handled
			}
			return espalier.Propagate
		})

	on.State("active").
		OnEntry(func(m espalier.Instance) { trace("13", "[active] working") }).
		OnExit(func(m espalier.Instance) { trace("13", "[active] job finished") }).
		Run(func(m espalier.Instance, ev espalier.Event) espalier.Result {
			if ev == "done" {
				m.Payload().(*deviceStats).JobsDone++
				_ = m.Transition("idle")
				return espalier.Handled
			}
			return espalier.Propagate
		})

	return b.Build()
}
