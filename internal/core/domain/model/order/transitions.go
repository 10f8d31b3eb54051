package order

import "slices"

// StatusDescriptor carries the display metadata and the declared successor
// set for one status. The order of Next is significant: it is the order in
// which follow-up actions are presented to back-office users.
type StatusDescriptor struct {
	Status      Status
	Label       string
	Description string
	Color       string
	Icon        string
	Next        []Status
}

// statusConfig is the transition table: process-wide static configuration,
// built once at package initialization and never mutated afterwards.
// Every enumerated status has exactly one entry. Access goes through
// Lookup/AllStatuses, which hand out copies.
var statusConfig = buildStatusConfig()

// statusOrder preserves the declaration order of the table for iteration.
var statusOrder = []Status{
	OrderPlaced,
	Confirmed,
	PickupAssigned,
	PickupInProgress,
	PickupCompleted,
	PickupFailed,
	ReceivedAtFacility,
	ProcessingStarted,
	ProcessingCompleted,
	QualityCheck,
	ReadyForDelivery,
	DeliveryAssigned,
	DeliveryInProgress,
	Delivered,
	DeliveryFailed,
	Cancelled,
	Refunded,
}

func buildStatusConfig() map[Status]StatusDescriptor {
	return map[Status]StatusDescriptor{
		OrderPlaced: {
			Status:      OrderPlaced,
			Label:       "Order Placed",
			Description: "The order has been placed and is awaiting confirmation.",
			Color:       "#6B7280",
			Icon:        "receipt",
			Next:        []Status{Confirmed, Cancelled},
		},
		Confirmed: {
			Status:      Confirmed,
			Label:       "Confirmed",
			Description: "The order has been confirmed and is ready for pickup scheduling.",
			Color:       "#3B82F6",
			Icon:        "check-circle",
			Next:        []Status{PickupAssigned, Cancelled},
		},
		PickupAssigned: {
			Status:      PickupAssigned,
			Label:       "Pickup Assigned",
			Description: "A driver has been assigned to collect the laundry.",
			Color:       "#8B5CF6",
			Icon:        "user-check",
			Next:        []Status{PickupInProgress, PickupFailed, Cancelled},
		},
		PickupInProgress: {
			Status:      PickupInProgress,
			Label:       "Pickup In Progress",
			Description: "The driver is on the way to collect the laundry.",
			Color:       "#8B5CF6",
			Icon:        "truck",
			Next:        []Status{PickupCompleted, PickupFailed},
		},
		PickupCompleted: {
			Status:      PickupCompleted,
			Label:       "Pickup Completed",
			Description: "The laundry has been collected from the customer.",
			Color:       "#10B981",
			Icon:        "package-check",
			Next:        []Status{ReceivedAtFacility},
		},
		PickupFailed: {
			Status:      PickupFailed,
			Label:       "Pickup Failed",
			Description: "The driver could not collect the laundry; the pickup needs rescheduling.",
			Color:       "#EF4444",
			Icon:        "alert-triangle",
			Next:        []Status{PickupAssigned, Cancelled},
		},
		ReceivedAtFacility: {
			Status:      ReceivedAtFacility,
			Label:       "Received at Facility",
			Description: "The laundry has arrived at the processing facility.",
			Color:       "#3B82F6",
			Icon:        "building",
			Next:        []Status{ProcessingStarted},
		},
		ProcessingStarted: {
			Status:      ProcessingStarted,
			Label:       "Processing Started",
			Description: "Washing and cleaning is underway.",
			Color:       "#F59E0B",
			Icon:        "loader",
			Next:        []Status{ProcessingCompleted},
		},
		ProcessingCompleted: {
			Status:      ProcessingCompleted,
			Label:       "Processing Completed",
			Description: "Washing and cleaning has finished.",
			Color:       "#10B981",
			Icon:        "check",
			Next:        []Status{QualityCheck},
		},
		QualityCheck: {
			Status:      QualityCheck,
			Label:       "Quality Check",
			Description: "The processed laundry is being inspected; failed items go back to processing.",
			Color:       "#F59E0B",
			Icon:        "search",
			Next:        []Status{ReadyForDelivery, ProcessingStarted},
		},
		ReadyForDelivery: {
			Status:      ReadyForDelivery,
			Label:       "Ready for Delivery",
			Description: "The order is packed and waiting for a delivery driver.",
			Color:       "#3B82F6",
			Icon:        "package",
			Next:        []Status{DeliveryAssigned},
		},
		DeliveryAssigned: {
			Status:      DeliveryAssigned,
			Label:       "Delivery Assigned",
			Description: "A driver has been assigned to return the laundry.",
			Color:       "#8B5CF6",
			Icon:        "user-check",
			Next:        []Status{DeliveryInProgress, DeliveryFailed},
		},
		DeliveryInProgress: {
			Status:      DeliveryInProgress,
			Label:       "Delivery In Progress",
			Description: "The driver is on the way to the customer.",
			Color:       "#8B5CF6",
			Icon:        "truck",
			Next:        []Status{Delivered, DeliveryFailed},
		},
		Delivered: {
			Status:      Delivered,
			Label:       "Delivered",
			Description: "The laundry has been returned to the customer.",
			Color:       "#10B981",
			Icon:        "home-check",
			Next:        []Status{},
		},
		DeliveryFailed: {
			Status:      DeliveryFailed,
			Label:       "Delivery Failed",
			Description: "The driver could not deliver the laundry; the delivery needs rescheduling.",
			Color:       "#EF4444",
			Icon:        "alert-triangle",
			Next:        []Status{DeliveryAssigned, Refunded},
		},
		Cancelled: {
			Status:      Cancelled,
			Label:       "Cancelled",
			Description: "The order was cancelled before completion.",
			Color:       "#6B7280",
			Icon:        "x-circle",
			Next:        []Status{},
		},
		Refunded: {
			Status:      Refunded,
			Label:       "Refunded",
			Description: "The order was refunded to the customer.",
			Color:       "#6B7280",
			Icon:        "rotate-ccw",
			Next:        []Status{},
		},
	}
}

// AllStatuses returns every enumerated status in declaration order.
// The returned slice is a copy; mutating it does not affect the table.
func AllStatuses() []Status {
	return slices.Clone(statusOrder)
}

// Lookup resolves a status to its descriptor.
//
// Returns:
//   - the descriptor (with a cloned successor slice) for a valid status
//   - a ValueIsInvalid error for any value outside the enumerated set;
//     this is a caller error and must not be silently ignored
func Lookup(s Status) (StatusDescriptor, error) {
	descriptor, ok := statusConfig[s]
	if !ok {
		return StatusDescriptor{}, s.Validate()
	}

	descriptor.Next = slices.Clone(descriptor.Next)
	return descriptor, nil
}

// CanTransition reports whether moving from current to target is declared in
// the transition table. Both statuses must resolve; an unresolvable status on
// either side yields a ValueIsInvalid error. A status never transitions to
// itself unless it explicitly lists itself as a successor.
//
// CanTransition has no side effects.
func CanTransition(current, target Status) (bool, error) {
	descriptor, ok := statusConfig[current]
	if !ok {
		return false, current.Validate()
	}
	if err := target.Validate(); err != nil {
		return false, err
	}

	return slices.Contains(descriptor.Next, target), nil
}

// AllowedTransitions returns the full descriptors of every status that may
// legally follow current, in the order declared in the transition table.
// Declaration order drives UI presentation and must be preserved.
//
// Fails with a ValueIsInvalid error when current does not resolve.
func AllowedTransitions(current Status) ([]StatusDescriptor, error) {
	descriptor, ok := statusConfig[current]
	if !ok {
		return nil, current.Validate()
	}

	allowed := make([]StatusDescriptor, 0, len(descriptor.Next))
	for _, next := range descriptor.Next {
		nextDescriptor, err := Lookup(next)
		if err != nil {
			return nil, err
		}
		allowed = append(allowed, nextDescriptor)
	}

	return allowed, nil
}
