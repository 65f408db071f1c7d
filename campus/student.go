package campus

import (
	"errors"
	"fmt"
	"slices"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
)

const (
	MinProgress = 0.0
	MaxProgress = 100.0

	// MaxHeldResources is how many resources a student may hold at the same time.
	MaxHeldResources = 1
)

// ErrProgressOutOfRange is returned when progress is set outside [MinProgress, MaxProgress].
var ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")

// Student is a person who enrolls in courses and borrows resources.
type Student struct {
	*Person

	progress      float64
	enrolled      []core.CourseID
	held          []core.ResourceID
	wantsResource bool
}

// NewStudent creates a student that wants a resource from the start.
func NewStudent(
	census *Census,
	id string,
	name string,
	email string,
	initialBalance core.Amount,
	opts ...Option,
) (*Student, error) {

	return newStudent(census, id, name, email, initialBalance, RoleStudent, opts...)
}

func newStudent(
	census *Census,
	id string,
	name string,
	email string,
	initialBalance core.Amount,
	role Role,
	opts ...Option,
) (*Student, error) {

	person, err := NewPerson(census, id, name, email, initialBalance, role, opts...)
	if err != nil {
		return nil, err
	}

	return &Student{
		Person:        person,
		enrolled:      make([]core.CourseID, 0),
		held:          make([]core.ResourceID, 0),
		wantsResource: true,
	}, nil
}

// ConsumerID returns the student's identifier.
func (s *Student) ConsumerID() core.ConsumerID {
	return s.id
}

// NeedsAllocation reports whether the student wants a resource and has room to hold one more.
func (s *Student) NeedsAllocation() bool {
	return s.wantsResource && len(s.held) < MaxHeldResources
}

// RequestResource marks the student as wanting a resource.
func (s *Student) RequestResource() {
	s.wantsResource = true
}

// WithdrawRequest marks the student as not wanting a resource.
func (s *Student) WithdrawRequest() {
	s.wantsResource = false
}

// Held returns a copy of the identifiers of the resources the student holds.
func (s *Student) Held() []core.ResourceID {
	return slices.Clone(s.held)
}

func (s *Student) Progress() float64 {
	return s.progress
}

// SetProgress sets the progress percentage. Values outside the range are rejected and nothing changes.
func (s *Student) SetProgress(value float64) error {
	if value < MinProgress || value > MaxProgress {
		return core.ValidationError(errors.Join(ErrProgressOutOfRange, fmt.Errorf("got %v", value)))
	}

	s.progress = value

	return nil
}

// Enroll adds courseID to the student's courses and reports whether it was new.
func (s *Student) Enroll(courseID core.CourseID) bool {
	if core.IsBlank(courseID) || slices.Contains(s.enrolled, courseID) {
		return false
	}

	s.enrolled = append(s.enrolled, courseID)
	s.record(actionlog.KindEnrollment, fmt.Sprintf("Enrolled in course %s", courseID))

	return true
}

// EnrolledCourses returns a copy of the course identifiers in enrollment order.
func (s *Student) EnrolledCourses() []core.CourseID {
	return slices.Clone(s.enrolled)
}

func (s *Student) hold(id core.ResourceID) {
	s.held = append(s.held, id)
}

func (s *Student) holds(id core.ResourceID) bool {
	return slices.Contains(s.held, id)
}

func (s *Student) drop(id core.ResourceID) bool {
	idx := slices.Index(s.held, id)
	if idx < 0 {
		return false
	}

	s.held = slices.Delete(s.held, idx, idx+1)

	return true
}

// PremiumStudent is a student with an assigned mentor.
type PremiumStudent struct {
	*Student

	mentorID string
}

// ErrEmptyMentorID is returned when a mentor is assigned without an identifier.
var ErrEmptyMentorID = errors.New("mentor id must not be empty")

// NewPremiumStudent creates a premium student without a mentor.
func NewPremiumStudent(
	census *Census,
	id string,
	name string,
	email string,
	initialBalance core.Amount,
	opts ...Option,
) (*PremiumStudent, error) {

	student, err := newStudent(census, id, name, email, initialBalance, RolePremiumStudent, opts...)
	if err != nil {
		return nil, err
	}

	return &PremiumStudent{Student: student}, nil
}

// AssignMentor assigns the mentor with the given identifier, replacing any previous one.
func (p *PremiumStudent) AssignMentor(mentorID string) error {
	if core.IsBlank(mentorID) {
		return core.ValidationError(ErrEmptyMentorID)
	}

	p.mentorID = mentorID

	return nil
}

// Mentor returns the assigned mentor identifier, if any.
func (p *PremiumStudent) Mentor() (string, bool) {
	return p.mentorID, p.mentorID != ""
}
