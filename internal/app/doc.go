// Package app wires configuration, logging, storage and HTTP routing into a
// running service. Each cmd/ binary describes itself with a Service and hands
// it to Run.
package app
