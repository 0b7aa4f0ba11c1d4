/*
Package observability provides ready-made lifecycle hook sets for monitoring
a running espalier machine: Prometheus metrics, structured audit logging, and
a combinator to fan a machine's lifecycle out to several consumers.

All hooks run synchronously on the dispatch path, so everything here is
allocation-light and must never call back into the machine.
*/
package observability
