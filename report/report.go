// Package report aggregates read-only campus figures into printable summaries.
package report

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/campus-resource-hub/campus"
	"github.com/AntonStoeckl/campus-resource-hub/catalog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/resource"
)

const emptyListRendering = "None"

// Report is a value type, reports are combined by adding their fields.
type Report struct {
	Students        int
	PremiumStudents int
	MentorApprovals int
	CatalogSize     int
}

// FromStudents counts students and the premium students among them.
func FromStudents(students []*campus.Student, mentorApprovals int, catalogSize int) Report {
	premium := 0
	for _, s := range students {
		if s != nil && s.Role() == campus.RolePremiumStudent {
			premium++
		}
	}

	return Report{
		Students:        len(students),
		PremiumStudents: premium,
		MentorApprovals: mentorApprovals,
		CatalogSize:     catalogSize,
	}
}

// Combine returns the field-wise sum of r and other.
func (r Report) Combine(other Report) Report {
	return Report{
		Students:        r.Students + other.Students,
		PremiumStudents: r.PremiumStudents + other.PremiumStudents,
		MentorApprovals: r.MentorApprovals + other.MentorApprovals,
		CatalogSize:     r.CatalogSize + other.CatalogSize,
	}
}

func (r Report) Equals(other Report) bool {
	return r == other
}

func (r Report) String() string {
	return fmt.Sprintf(
		"REPORT: students=%d | premium=%d | mentor_approvals=%d | catalog_size=%d",
		r.Students,
		r.PremiumStudents,
		r.MentorApprovals,
		r.CatalogSize,
	)
}

// FormatCurrency renders an amount with two decimal places.
func FormatCurrency(amount core.Amount) string {
	return core.FormatAmount(amount)
}

// FormatList joins items with ", " or returns "None" for an empty list.
func FormatList(items []string) string {
	if len(items) == 0 {
		return emptyListRendering
	}

	return strings.Join(items, ", ")
}

// StatusSummary renders the number of resources per status in declaration order,
// e.g. "available=2, borrowed=1, maintenance=0".
func StatusSummary(c *catalog.Catalog) string {
	counts := c.CountByStatus()

	parts := make([]string, 0, len(counts))
	for _, status := range resource.Statuses() {
		parts = append(parts, fmt.Sprintf("%s=%d", status, counts[status]))
	}

	return strings.Join(parts, ", ")
}
