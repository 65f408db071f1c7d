package campus

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/ledger"
)

// Role names what a person does on campus.
type Role string

const (
	RoleStudent        Role = "Student"
	RolePremiumStudent Role = "PremiumStudent"
	RoleMentor         Role = "Mentor"
)

var (
	// ErrInvalidField is returned when a required person or course field is empty.
	ErrInvalidField = errors.New("required field must be a non-empty string")

	// ErrNilCensus is returned when a person is created without a census.
	ErrNilCensus = errors.New("census must not be nil")
)

// Option configures a person at construction.
type Option func(*options)

type options struct {
	clock core.Clock
}

// WithClock sets the clock used by the person's action log.
func WithClock(clock core.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// Person is anyone with an identity, a ledger account and an action log.
type Person struct {
	id      string
	name    string
	email   string
	role    Role
	account *ledger.Account
	log     *actionlog.Log
}

// NewPerson validates the identity fields, opens an account with initialBalance and registers the person in census.
// Nothing is registered when validation fails.
func NewPerson(
	census *Census,
	id string,
	name string,
	email string,
	initialBalance core.Amount,
	role Role,
	opts ...Option,
) (*Person, error) {

	if census == nil {
		return nil, core.ValidationError(ErrNilCensus)
	}

	if err := requireFields("id", id, "name", name, "email", email, "role", string(role)); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	log := actionlog.New(actionlog.WithClock(o.clock))

	account, err := ledger.NewAccount(id, initialBalance, ledger.WithActionLog(log))
	if err != nil {
		return nil, err
	}

	census.register()

	return &Person{
		id:      id,
		name:    name,
		email:   email,
		role:    role,
		account: account,
		log:     log,
	}, nil
}

func (p *Person) ID() string {
	return p.id
}

func (p *Person) Name() string {
	return p.name
}

func (p *Person) Email() string {
	return p.email
}

func (p *Person) Role() Role {
	return p.role
}

// Account returns the person's ledger account.
func (p *Person) Account() *ledger.Account {
	return p.account
}

// ActionLog returns the log shared by the person and its account.
func (p *Person) ActionLog() *actionlog.Log {
	return p.log
}

// Equals compares people by identifier only.
func (p *Person) Equals(other *Person) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.id == other.id
}

// String renders e.g. "Student(id=S001, name=Zahra)".
func (p *Person) String() string {
	return fmt.Sprintf("%s(id=%s, name=%s)", p.role, p.id, p.name)
}

func (p *Person) record(kind actionlog.Kind, detail string) {
	_, _ = p.log.Record(kind, detail) // kinds are non-empty constants
}

// requireFields takes alternating field names and values.
func requireFields(namesAndValues ...string) error {
	for i := 0; i+1 < len(namesAndValues); i += 2 {
		if core.IsBlank(namesAndValues[i+1]) {
			return core.ValidationError(errors.Join(ErrInvalidField, fmt.Errorf("field %q is empty", namesAndValues[i])))
		}
	}

	return nil
}
