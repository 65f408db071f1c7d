package campus

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

// DefaultCourseCapacity applies when a course is created without an explicit capacity.
const DefaultCourseCapacity = 30

// Course has a fixed capacity of distinct students.
type Course struct {
	id       core.CourseID
	name     string
	mentorID string
	capacity int
	students []string
}

// CourseOption configures a Course at construction.
type CourseOption func(*Course)

// WithCapacity overrides DefaultCourseCapacity. Non-positive values keep the default.
func WithCapacity(capacity int) CourseOption {
	return func(c *Course) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// NewCourse creates an empty course taught by mentorID.
func NewCourse(id core.CourseID, name string, mentorID string, opts ...CourseOption) (*Course, error) {
	if err := requireFields("course id", id, "course name", name, "mentor id", mentorID); err != nil {
		return nil, err
	}

	c := &Course{
		id:       id,
		name:     name,
		mentorID: mentorID,
		capacity: DefaultCourseCapacity,
		students: make([]string, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Course) ID() core.CourseID {
	return c.id
}

func (c *Course) Name() string {
	return c.name
}

func (c *Course) MentorID() string {
	return c.mentorID
}

func (c *Course) Capacity() int {
	return c.capacity
}

// AddStudent adds studentID and reports whether it was added.
// It refuses blank identifiers, students already enrolled, and full courses.
func (c *Course) AddStudent(studentID string) bool {
	if core.IsBlank(studentID) || slices.Contains(c.students, studentID) || c.IsFull() {
		return false
	}

	c.students = append(c.students, studentID)

	return true
}

func (c *Course) IsFull() bool {
	return len(c.students) >= c.capacity
}

func (c *Course) EnrollmentCount() int {
	return len(c.students)
}

// Students returns a copy of the enrolled student identifiers.
func (c *Course) Students() []string {
	return slices.Clone(c.students)
}

// String renders e.g. "Async Python (instructor: Mentor M001, 1/5 students)".
func (c *Course) String() string {
	return fmt.Sprintf("%s (instructor: Mentor %s, %d/%d students)", c.name, c.mentorID, len(c.students), c.capacity)
}
