package statemachine

import (
	"errors"
	"fmt"

	"food-marketplace-api/models"
)

var (
	// ErrIllegalTransition means the requested edge does not exist in the
	// state machine at all, including any move out of a terminal state.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrActorNotAllowed means the edge exists but the acting role is not
	// authorized to trigger it.
	ErrActorNotAllowed = errors.New("actor not allowed for this transition")
)

// Transition defines a valid state change and the roles that may perform it
type Transition struct {
	From   models.OrderStatus
	To     models.OrderStatus
	Actors []models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant accepts the order and starts preparing
	{From: models.StatusPending, To: models.StatusPreparing, Actors: []models.UserRole{models.RoleRestaurant}},
	// Restaurant hands the order off; a driver picking up claims the order
	{From: models.StatusPreparing, To: models.StatusOnTheWay, Actors: []models.UserRole{models.RoleRestaurant, models.RoleDriver}},
	// Driver completes the delivery
	{From: models.StatusOnTheWay, To: models.StatusDelivered, Actors: []models.UserRole{models.RoleDriver}},
	// Customer or admin may cancel before the order leaves the restaurant
	{From: models.StatusPending, To: models.StatusCancelled, Actors: []models.UserRole{models.RoleCustomer, models.RoleAdmin}},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actors: []models.UserRole{models.RoleCustomer, models.RoleAdmin}},
}

type edge struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// Lookup map for O(1) validation
var transitionActors = func() map[edge][]models.UserRole {
	m := make(map[edge][]models.UserRole)
	for _, t := range validTransitions {
		m[edge{t.From, t.To}] = t.Actors
	}
	return m
}()

// CanTransition checks whether the given role may move an order from one
// status to another. The from == to case is not a transition and must be
// rejected by the caller before consulting the table.
func CanTransition(from, to models.OrderStatus, role models.UserRole) error {
	actors, ok := transitionActors[edge{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s (valid next states: %s)",
			ErrIllegalTransition, from, to, describeValidFrom(from))
	}
	for _, a := range actors {
		if a == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s requires one of %v", ErrActorNotAllowed, from, to, actors)
}

// ValidTransitionsFrom returns all reachable next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// IsTerminal reports whether no further transitions are permitted.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// OrderStatusFor maps the driver-facing delivery vocabulary onto order-level
// statuses. Assigned corresponds to the order still being prepared; both
// PickedUp and OnTheWay mean the order is out for delivery.
func OrderStatusFor(ds models.DeliveryStatus) (models.OrderStatus, bool) {
	switch ds {
	case models.DeliveryAssigned:
		return models.StatusPreparing, true
	case models.DeliveryPickedUp, models.DeliveryOnTheWay:
		return models.StatusOnTheWay, true
	case models.DeliveryDelivered:
		return models.StatusDelivered, true
	}
	return "", false
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
