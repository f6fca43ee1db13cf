// Package common defines shared constants and sentinel errors used across
// the fieldsync components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Connectivity: the operation requires network and the device is offline.
	ErrOffline = errors.New("device is offline")

	// Price resolution.
	ErrPriceUnavailable = errors.New("price unavailable")
	ErrNotCached        = errors.New("price not cached")

	// Bulk prefetch exceeded its failure budget and stopped.
	ErrPrefetchAborted = errors.New("price prefetch aborted: too many failures")

	// A drain is already running; concurrent drains would duplicate
	// remote submissions.
	ErrDrainInProgress = errors.New("synchronization already in progress")
)
