// Package shell contains the infrastructure around the functional core:
// conversion between domain events and storable events, event metadata,
// retry with exponential backoff for concurrency conflicts, the in-process
// event bus that feeds the reactive coordinators, logging setup and metrics.
package shell
