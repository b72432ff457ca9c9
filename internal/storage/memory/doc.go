// Package memory provides the in-memory session store for console-gate.
//
// The store is the only state shared across concurrently executing
// requests; every operation runs under a single mutex so concurrent
// create/lookup/touch/terminate calls never corrupt the mapping or
// lose updates.
package memory
