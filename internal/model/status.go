package model

// transitionRule lists who may move an appointment between two states.
type transitionRule struct {
	owner bool
	admin bool
}

var transitions = map[Status]map[Status]transitionRule{
	StatusPending: {
		StatusConfirmed: {admin: true},
		StatusCancelled: {owner: true, admin: true},
	},
	StatusConfirmed: {
		StatusCancelled: {owner: true, admin: true},
		StatusCompleted: {admin: true},
	},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	_, ok := transitions[from][to]
	return ok
}

// MayTransition reports whether a requester may apply the from -> to edge.
// isOwner is true when the requester is the appointment's customer.
func MayTransition(from, to Status, requester Requester, isOwner bool) bool {
	rule, ok := transitions[from][to]
	if !ok {
		return false
	}
	if rule.admin && requester.IsAdmin() {
		return true
	}
	return rule.owner && isOwner
}
