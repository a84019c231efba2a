// Package service provides business logic for the application.
package service

import "errors"

// ErrNotOwner indicates the authenticated caller does not own the
// addressed resource. It never leaves the service layer: callers
// collapse it into the resource's not-found error, so the response
// does not reveal that the row exists.
var ErrNotOwner = errors.New("resource not owned by caller")

// CheckOwnership compares a resource's owner with the authenticated
// caller. Every read, update, or delete of an owned row goes through
// this predicate before data is returned or a mutation applied.
func CheckOwnership(ownerID, callerID int64) error {
	if callerID == 0 || ownerID != callerID {
		return ErrNotOwner
	}
	return nil
}
