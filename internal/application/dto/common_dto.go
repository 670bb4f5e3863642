package dto

import (
	"github.com/google/uuid"
)

// ListQuery carries the ambient selection plus the in-memory search and sort
// parameters shared by every list endpoint.
type ListQuery struct {
	OrganizationID *uuid.UUID `form:"organization_id"`
	SiteID         *uuid.UUID `form:"site_id"`
	Search         string     `form:"search"`
	SortBy         string     `form:"sort_by"`
	SortDir        string     `form:"sort_dir"`
}

// BulkDeleteRequest names the rows selected for a bulk delete.
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// BulkDeleteResult reports the outcome of a concurrent bulk delete. Failures
// are aggregated as a count only; the failed ids are not enumerated.
type BulkDeleteResult struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
	Failed    int `json:"failed"`
}

// DashboardSummary is the per-entity count snapshot within the caller's scope.
type DashboardSummary struct {
	Organizations int64 `json:"organizations"`
	Sites         int64 `json:"sites"`
	Users         int64 `json:"users"`
	Assets        int64 `json:"assets"`
	Threats       int64 `json:"threats"`
	Scenarios     int64 `json:"scenarios"`
}
