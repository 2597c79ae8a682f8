// Package guard provides the constructor guard used by domain objects, commands and
// queries to tell a value built through its constructor apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded value is a zero
// value and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into structs whose zero value is not a valid instance.
//
// Example:
//
//	var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    number int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewTicket(number int) Ticket {
//	    return Ticket{number: number, guard: guard.NewConstructorGuard()}
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) if the
// owner was not created through its constructor, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
