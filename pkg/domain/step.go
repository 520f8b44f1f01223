package domain

// StepSnapshot is a read-only view of one step's lifecycle state.
type StepSnapshot struct {
	Index     int       `json:"index"`
	Height    float64   `json:"height"`
	State     StepState `json:"state"`
	Direction Direction `json:"direction"`
	Progress  float64   `json:"progress"`
	Offset    *Offset   `json:"offset,omitempty"`
}
