// Package policy holds the pure authorization decisions. Every function is
// a predicate over the caller's identity and the target entity; nothing here
// touches storage or the request. Deny by default.
package policy

import (
	"task_portal/internal/common"
	"task_portal/internal/domain/model"
)

func IsAdmin(role string) bool {
	return role == model.RoleAdmin
}

// CanListUsers: the unfiltered user directory is admin-only.
func CanListUsers(role string) bool {
	return IsAdmin(role)
}

// CanViewUser: a caller may always fetch their own record; admins may fetch
// anyone's.
func CanViewUser(role, callerID, targetID string) bool {
	return IsAdmin(role) || callerID == targetID
}

// CanUpdateUser: profile updates are owner-only. Identity fields (username,
// role, candidate id) are immutable through this path regardless.
func CanUpdateUser(callerID, targetID string) bool {
	return callerID == targetID
}

func CanManageTasks(role string) bool {
	return IsAdmin(role)
}

// TaskVisible: admins see every task; a candidate sees a task when it is
// assigned to everyone (nil assignee) or to them specifically.
func TaskVisible(task *model.Task, role, callerID string) bool {
	if IsAdmin(role) {
		return true
	}
	return task.AssignedToID == nil || *task.AssignedToID == callerID
}

// CanCreateSubmission: submitting work is a candidate action.
func CanCreateSubmission(role string) bool {
	return role == model.RoleCandidate
}

func CanReviewSubmission(role string) bool {
	return IsAdmin(role)
}

// ScopeSubmissionQuery resolves the candidate filter a caller is allowed to
// use. Admins may pass any filter (or none); candidates are pinned to their
// own id, and asking for someone else's fails with Forbidden.
func ScopeSubmissionQuery(role, callerID, requestedCandidateID string) (string, error) {
	if IsAdmin(role) {
		return requestedCandidateID, nil
	}
	if requestedCandidateID != "" && requestedCandidateID != callerID {
		return "", common.ErrForbidden
	}
	return callerID, nil
}

// CanQueryAttendance: the attendance ledger is admin-only to read. Anyone
// authenticated may append their own record.
func CanQueryAttendance(role string) bool {
	return IsAdmin(role)
}
