package model

type InterfaceStatus string

const (
	InterfaceStatusConfigured InterfaceStatus = "configured"
	InterfaceStatusFailed     InterfaceStatus = "failed"
	InterfaceStatusSkipped    InterfaceStatus = "skipped"
)

// InterfaceOutcome records what happened to one interface of a profile.
type InterfaceOutcome struct {
	Name   string          `json:"name"`
	Status InterfaceStatus `json:"status"`
	Queues string          `json:"queues,omitempty"`
	IRQs   int             `json:"irqs"`
	Err    error           `json:"-"`
}

func (o InterfaceOutcome) Error() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
