package campus

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/catalog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
)

var (
	// ErrNilCatalog is returned by Borrow and Return without a catalog.
	ErrNilCatalog = errors.New("catalog must not be nil")

	// ErrNilMentor is returned by Borrow without an approving mentor.
	ErrNilMentor = errors.New("mentor must not be nil")
)

// Borrow allocates the first available resource for student and has mentor approve it.
//
// When the student does not need a resource or nothing is available, the allocation outcome says so,
// the mentor is not asked and nothing is recorded.
func Borrow(c *catalog.Catalog, student *Student, mentor *Mentor) (catalog.Allocation, error) {
	if c == nil {
		return catalog.Allocation{}, core.ValidationError(ErrNilCatalog)
	}

	if mentor == nil {
		return catalog.Allocation{}, core.ValidationError(ErrNilMentor)
	}

	allocation, err := c.Allocate(student)
	if err != nil {
		return catalog.Allocation{}, err
	}

	if !allocation.Succeeded() {
		return allocation, nil
	}

	mentor.Approve()
	student.hold(allocation.Resource.ID())
	student.record(actionlog.KindBorrow, fmt.Sprintf("Borrowed %s", allocation.Resource.Name()))

	return allocation, nil
}

// Return gives a resource back to the catalog and reports whether it was returned.
//
// The catalog must still list the resource with student as its holder. The catalog releases it first,
// and only then does the student stop holding it, so a refused return changes neither side.
func Return(c *catalog.Catalog, student *Student, resourceID core.ResourceID) (bool, error) {
	if c == nil {
		return false, core.ValidationError(ErrNilCatalog)
	}

	if student == nil || !student.holds(resourceID) {
		return false, nil
	}

	if !c.ReleaseFor(resourceID, student.ConsumerID()) {
		return false, nil
	}

	student.drop(resourceID)

	return true, nil
}
