// Package owner models the actor behind a request: either an identified
// user or an anonymous caller. Both tasks and sessions are scoped through
// the single visibility rule defined here.
package owner

import (
	"gorm.io/gorm"
)

// Owner is either an identified user or the anonymous caller. The zero
// value is anonymous.
type Owner struct {
	id    uint
	known bool
}

// Identified returns the owner for a logged-in user.
func Identified(id uint) Owner {
	return Owner{id: id, known: true}
}

// Anonymous returns the owner for a request without identity.
func Anonymous() Owner {
	return Owner{}
}

// ID returns the user id and whether one is present.
func (o Owner) ID() (uint, bool) {
	return o.id, o.known
}

// IsAnonymous reports whether the owner carries no identity.
func (o Owner) IsAnonymous() bool {
	return !o.known
}

// UserID returns the nullable column value to store on entities created by
// this owner.
func (o Owner) UserID() *uint {
	if !o.known {
		return nil
	}
	id := o.id
	return &id
}

// CanAccess reports whether this owner may act on an entity whose owner
// column holds entityOwner (nil means the entity has no owner). Unowned
// entities are open to everyone; owned entities only to their owner.
// Anonymous callers therefore reach unowned entities only.
func (o Owner) CanAccess(entityOwner *uint) bool {
	if entityOwner == nil {
		return true
	}
	return o.known && o.id == *entityOwner
}

// Scope restricts a query to rows this owner may act on. It is the SQL
// counterpart of CanAccess and must be the only owner filter used on
// read, update and delete paths.
func (o Owner) Scope(db *gorm.DB) *gorm.DB {
	if !o.known {
		return db.Where("user_id IS NULL")
	}
	return db.Where("user_id = ? OR user_id IS NULL", o.id)
}
