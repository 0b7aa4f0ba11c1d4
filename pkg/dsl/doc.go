/*
Package dsl provides a fluent builder for assembling espalier charts at
configuration time.

States are declared top-down; a child builder is obtained from its parent, so
parent links are correct by construction. Hooks attach either as closures
(OnEntry/OnExit/Run) or as a concrete domain.Handler, interchangeably. The
first declared child of a state is its default child unless another child is
marked with Initial.

	b := dsl.New()
	device := b.State("device")
	off := device.State("off").Initial()
	on := device.State("on")
	on.State("idle").Initial()
	on.State("active")

	chart, err := b.Build()
*/
package dsl
