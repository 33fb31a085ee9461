// Package services provides domain services that work across the job, quote and
// contractor aggregates.
//
// The package includes:
//   - GeoMatcher with two interchangeable strategies, ScanGeoMatcher and
//     IndexedGeoMatcher, that rank contractors and jobs by great-circle distance
//   - LifecycleStateMachine, which plans job status changes as conditional writes
//
// Services are stateless and safe for concurrent use.
package services
