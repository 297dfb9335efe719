package appointments

import "telehealth-service/internal/pkg/constvars"

// allowedTransitions is the doctor-driven status graph. Statuses without an
// entry are terminal.
var allowedTransitions = map[string][]string{
	constvars.AppointmentStatusPending: {
		constvars.AppointmentStatusApproved,
		constvars.AppointmentStatusRejected,
	},
	constvars.AppointmentStatusApproved: {
		constvars.AppointmentStatusCompleted,
		constvars.AppointmentStatusCanceled,
		constvars.AppointmentStatusPending,
	},
}

func CanTransition(current, next string) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return len(allowedTransitions[status]) == 0
}

func isCancelable(status string) bool {
	return status == constvars.AppointmentStatusPending || status == constvars.AppointmentStatusApproved
}
