package crm

import (
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Authorize decides whether the acting principal may read or mutate a
// record with the given owner. Administrators are unrestricted; a regular
// user may act on records they own and on unowned records (a nil owner
// means nobody currently owns them). Everything else is
// forbidden, with no side effect.
//
// Records reachable only through a parent prospect (interactions,
// reminders, worker links, attachments, projects and their children) are
// authorized against the parent prospect's owner.
func Authorize(principal identity.Principal, ownerID *uuid.UUID) error {
	if principal.Admin {
		return nil
	}
	if ownerID == nil {
		return nil
	}
	if *ownerID == principal.UserID {
		return nil
	}
	return shared.ErrForbidden
}

// CanAccess reports the Authorize decision as a bool, for pre-filtering
func CanAccess(principal identity.Principal, ownerID *uuid.UUID) bool {
	return Authorize(principal, ownerID) == nil
}
