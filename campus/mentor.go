package campus

import (
	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
)

// Mentor approves or denies resource requests.
type Mentor struct {
	*Person

	approvals int
	denials   int
}

// NewMentor creates a mentor with no decisions yet.
func NewMentor(
	census *Census,
	id string,
	name string,
	email string,
	initialBalance core.Amount,
	opts ...Option,
) (*Mentor, error) {

	person, err := NewPerson(census, id, name, email, initialBalance, RoleMentor, opts...)
	if err != nil {
		return nil, err
	}

	return &Mentor{Person: person}, nil
}

// Approve counts and records one approval.
func (m *Mentor) Approve() {
	m.approvals++
	m.record(actionlog.KindApproval, "Approved a resource request")
}

// Deny counts and records one denial.
func (m *Mentor) Deny() {
	m.denials++
	m.record(actionlog.KindDenial, "Denied a resource request")
}

func (m *Mentor) Approvals() int {
	return m.approvals
}

func (m *Mentor) Denials() int {
	return m.denials
}
