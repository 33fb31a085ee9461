// Package job contains the Job aggregate, its lifecycle statuses and the transition
// table that decides which status changes are legal for which actor.
//
// The package provides:
//   - Job: the aggregate root, created by NewJob and reloaded by RestoreJob
//   - Status and ValidateTransition: the lifecycle state machine rules
//   - Condition, Change and Transition: a status change expressed as a conditional write
//   - Assignment: the workers performing a claimed job
//
// Jobs are never deleted. They end in COMPLETED, CANCELLED or EXPIRED, and an
// administrator may move any of those into DISPUTED.
package job
