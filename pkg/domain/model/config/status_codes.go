package config

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
)

// ReportCodes maps report statuses to their numeric code ids
type ReportCodes struct {
	Pending    int64
	InProgress int64
	Resolved   int64
	Rejected   int64
}

// AssignmentCodes maps assignment statuses to their numeric code ids
type AssignmentCodes struct {
	Pending    int64
	Accepted   int64
	Refused    int64
	InProgress int64
	Completed  int64
}

// StatusCodes holds the status code ids the status engine relies on.
type StatusCodes struct {
	Report            ReportCodes
	Assignment        AssignmentCodes
	ManagerUserTypeID int64
}

// DefaultStatusCodes returns the ids seeded by the migrate command.
func DefaultStatusCodes() *StatusCodes {
	return &StatusCodes{
		Report: ReportCodes{
			Pending:    1,
			InProgress: 2,
			Resolved:   3,
			Rejected:   4,
		},
		Assignment: AssignmentCodes{
			Pending:    1,
			Accepted:   2,
			Refused:    3,
			InProgress: 4,
			Completed:  5,
		},
		ManagerUserTypeID: 2,
	}
}

// ReportID returns the code id of a report status, 0 if unknown
func (c *StatusCodes) ReportID(s types.ReportStatus) int64 {
	switch s {
	case types.ReportStatusPending:
		return c.Report.Pending
	case types.ReportStatusInProgress:
		return c.Report.InProgress
	case types.ReportStatusResolved:
		return c.Report.Resolved
	case types.ReportStatusRejected:
		return c.Report.Rejected
	}
	return 0
}

// ReportStatusOf returns the semantic status of a report code id
func (c *StatusCodes) ReportStatusOf(id int64) types.ReportStatus {
	for _, s := range types.AllReportStatuses() {
		if c.ReportID(s) == id {
			return s
		}
	}
	return types.ReportStatusUnknown
}

// AssignmentID returns the code id of an assignment status, 0 if unknown
func (c *StatusCodes) AssignmentID(s types.AssignmentStatus) int64 {
	switch s {
	case types.AssignmentStatusPending:
		return c.Assignment.Pending
	case types.AssignmentStatusAccepted:
		return c.Assignment.Accepted
	case types.AssignmentStatusRefused:
		return c.Assignment.Refused
	case types.AssignmentStatusInProgress:
		return c.Assignment.InProgress
	case types.AssignmentStatusCompleted:
		return c.Assignment.Completed
	}
	return 0
}

// AssignmentStatusOf returns the semantic status of an assignment code id
func (c *StatusCodes) AssignmentStatusOf(id int64) types.AssignmentStatus {
	for _, s := range types.AllAssignmentStatuses() {
		if c.AssignmentID(s) == id {
			return s
		}
	}
	return types.AssignmentStatusUnknown
}

// Validate checks that every status has a positive id and ids are unique per kind
func (c *StatusCodes) Validate() error {
	seen := map[int64]types.ReportStatus{}
	for _, s := range types.AllReportStatuses() {
		id := c.ReportID(s)
		if id <= 0 {
			return goerr.New("report status code id must be positive", goerr.V("status", s), goerr.V("id", id))
		}
		if prev, ok := seen[id]; ok {
			return goerr.New("duplicate report status code id", goerr.V("id", id), goerr.V("status", s), goerr.V("previous", prev))
		}
		seen[id] = s
	}

	seenAssignment := map[int64]types.AssignmentStatus{}
	for _, s := range types.AllAssignmentStatuses() {
		id := c.AssignmentID(s)
		if id <= 0 {
			return goerr.New("assignment status code id must be positive", goerr.V("status", s), goerr.V("id", id))
		}
		if prev, ok := seenAssignment[id]; ok {
			return goerr.New("duplicate assignment status code id", goerr.V("id", id), goerr.V("status", s), goerr.V("previous", prev))
		}
		seenAssignment[id] = s
	}

	if c.ManagerUserTypeID <= 0 {
		return goerr.New("manager user type id must be positive", goerr.V("id", c.ManagerUserTypeID))
	}
	return nil
}
