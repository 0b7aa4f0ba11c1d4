/*
Package domain contains the core value types of the espalier engine: state
identities, the immutable chart (the arena of state records forming the
hierarchy), the handler capability set invoked by the engine, and the
lifecycle events surfaced to observers.

Everything here is configuration-time data or plain values; the running
machine lives in internal/runtime and is surfaced through the root package.
*/
package domain
