package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/campus"
	"github.com/AntonStoeckl/campus-resource-hub/catalog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/report"
	"github.com/AntonStoeckl/campus-resource-hub/resource"
)

func Test_FromStudents_CountsPremiumStudents(t *testing.T) {
	// arrange
	census := campus.NewCensus()
	zahra, err := campus.NewStudent(census, "S001", "Zahra", "zahra@bootcamp.edu", core.MustAmount("500"))
	require.NoError(t, err)
	malik, err := campus.NewStudent(census, "S002", "Malik", "malik@bootcamp.edu", core.MustAmount("300"))
	require.NoError(t, err)
	ali, err := campus.NewPremiumStudent(census, "S003", "Ali", "ali@bootcamp.edu", core.MustAmount("600"))
	require.NoError(t, err)

	// act
	r := report.FromStudents([]*campus.Student{zahra, malik, ali.Student}, 2, 3)

	// assert
	assert.Equal(t, report.Report{Students: 3, PremiumStudents: 1, MentorApprovals: 2, CatalogSize: 3}, r)
	assert.Equal(t, "REPORT: students=3 | premium=1 | mentor_approvals=2 | catalog_size=3", r.String())
}

func Test_Combine_SumsFieldWise(t *testing.T) {
	// arrange
	first := report.Report{Students: 3, PremiumStudents: 1, MentorApprovals: 2, CatalogSize: 3}
	second := report.Report{Students: 1, MentorApprovals: 1, CatalogSize: 2}

	// act
	combined := first.Combine(second)

	// assert
	assert.True(t, combined.Equals(report.Report{Students: 4, PremiumStudents: 1, MentorApprovals: 3, CatalogSize: 5}))
	assert.Equal(t, report.Report{Students: 3, PremiumStudents: 1, MentorApprovals: 2, CatalogSize: 3}, first)
}

func Test_Equals(t *testing.T) {
	r := report.Report{Students: 1}

	assert.True(t, r.Equals(report.Report{Students: 1}))
	assert.False(t, r.Equals(report.Report{Students: 1, CatalogSize: 1}))
}

func Test_FormatCurrency(t *testing.T) {
	assert.Equal(t, "350.00", report.FormatCurrency(core.MustAmount("350")))
	assert.Equal(t, "0.10", report.FormatCurrency(core.MustAmount("0.1")))
}

func Test_FormatList(t *testing.T) {
	assert.Equal(t, "None", report.FormatList(nil))
	assert.Equal(t, "a", report.FormatList([]string{"a"}))
	assert.Equal(t, "a, b", report.FormatList([]string{"a", "b"}))
}

func Test_StatusSummary(t *testing.T) {
	// arrange
	c := catalog.New()
	for _, id := range []string{"R1", "R2", "R3"} {
		r, err := resource.New(id, "Item "+id, "Lab")
		require.NoError(t, err)
		c.Add(r)
	}
	r1, _ := c.Lookup("R1")
	require.True(t, r1.Claim("S001"))

	// act
	summary := report.StatusSummary(c)

	// assert
	assert.Equal(t, "available=2, borrowed=1, maintenance=0", summary)
}
