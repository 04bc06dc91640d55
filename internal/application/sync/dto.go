package sync

import (
	"github.com/partsync/partsync/internal/domain/supplier"
)

// ---------------------------------------------------------------------------
// AddPart DTOs
// ---------------------------------------------------------------------------

// AddResult describes the part record chain after a successful sync
type AddResult struct {
	SupplierCode     supplier.Code
	SupplierName     string
	ManufacturerName string
	MPN              string
	SKU              string
	Description      string
	PartID           int
	SupplierPartID   int
	Created          bool
}

// ---------------------------------------------------------------------------
// Resync DTOs
// ---------------------------------------------------------------------------

// ResyncStatus classifies the outcome of re-validating one stored supplier part
type ResyncStatus string

const (
	// StatusUpToDate means the stored record matches the live catalog
	StatusUpToDate ResyncStatus = "up_to_date"
	// StatusUpdated means drift was detected and written back
	StatusUpdated ResyncStatus = "updated"
	// StatusNotFound means the supplier no longer lists the part
	StatusNotFound ResyncStatus = "not_found"
	// StatusUpdateFailed means drift was detected but writing it back failed
	StatusUpdateFailed ResyncStatus = "update_failed"
	// StatusError means the live catalog could not be queried
	StatusError ResyncStatus = "error"
)

// String returns the string representation of ResyncStatus
func (s ResyncStatus) String() string {
	return string(s)
}

// Change records one field drifting between stored and live supplier data
type Change struct {
	Old string
	New string
}

// ResyncResult is the outcome for a single stored supplier part
type ResyncResult struct {
	Status       ResyncStatus
	SupplierCode supplier.Code
	SKU          string
	Message      string
	Changes      map[string]Change
}

// ResyncSummary aggregates the results of a resync run
type ResyncSummary struct {
	Total    int
	UpToDate int
	Updated  int
	NotFound int
	Errors   int
}

// add counts a result into the summary. Errors covers both catalog query
// failures and failed write-backs.
func (s *ResyncSummary) add(status ResyncStatus) {
	s.Total++
	switch status {
	case StatusUpToDate:
		s.UpToDate++
	case StatusUpdated:
		s.Updated++
	case StatusNotFound:
		s.NotFound++
	case StatusError, StatusUpdateFailed:
		s.Errors++
	}
}
