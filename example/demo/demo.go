package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/campus"
	"github.com/AntonStoeckl/campus-resource-hub/catalog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/report"
	"github.com/AntonStoeckl/campus-resource-hub/resource"
	"github.com/AntonStoeckl/campus-resource-hub/shell"
)

const (
	catalogOwner = "catalog"
	rule         = "======================================================================"
)

// Options are the collaborators of Run.
type Options struct {
	Out     io.Writer
	Archive shell.Archive
	Logger  eventstore.Logger
	Metrics eventstore.MetricsCollector
	Tracing eventstore.TracingCollector
	Clock   core.Clock
}

type hub struct {
	out      io.Writer
	clock    core.Clock
	zahra    *campus.Student
	malik    *campus.Student
	ali      *campus.PremiumStudent
	omar     *campus.Mentor
	courses  []*campus.Course
	catalog  *catalog.Catalog
	students []*campus.Student
	logs     map[core.OwnerID]*actionlog.Log
}

// Run executes the walkthrough and writes a human-readable transcript to opts.Out.
func Run(ctx context.Context, opts Options) error {
	if opts.Out == nil || opts.Archive == nil {
		return errors.New("demo needs an output writer and an archive")
	}

	if opts.Clock == nil {
		opts.Clock = core.SystemClock()
	}

	h := &hub{out: opts.Out, clock: opts.Clock, logs: make(map[core.OwnerID]*actionlog.Log)}

	h.printf("%s\nCAMPUS RESOURCE HUB - DEMO\n%s\n\n", rule, rule)

	steps := []func() error{
		h.seed,
		h.enroll,
		h.transfer,
		h.showCatalog,
		h.borrow,
		h.report,
		h.auditLogs,
		h.extras,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if err := h.archive(ctx, opts); err != nil {
		return err
	}

	h.printf("%s\nDEMO COMPLETE\n%s\n", rule, rule)

	return nil
}

func (h *hub) seed() error {
	h.printf("--- SEEDING DATA ---\n")

	census := campus.NewCensus()
	withClock := campus.WithClock(h.clock)

	var err error

	if h.zahra, err = campus.NewStudent(census, "S001", "Zahra", "zahra@bootcamp.edu", core.MustAmount("500"), withClock); err != nil {
		return err
	}

	if h.malik, err = campus.NewStudent(census, "S002", "Malik", "malik@bootcamp.edu", core.MustAmount("300"), withClock); err != nil {
		return err
	}

	if h.ali, err = campus.NewPremiumStudent(census, "S003", "Ali", "ali@bootcamp.edu", core.MustAmount("600"), withClock); err != nil {
		return err
	}

	if h.omar, err = campus.NewMentor(census, "M001", "Omar", "omar@mentor.edu", core.MustAmount("1000"), withClock); err != nil {
		return err
	}

	if err = h.ali.AssignMentor(h.omar.ID()); err != nil {
		return err
	}

	mentorID, _ := h.ali.Mentor()
	h.printf("Created Premium Student: %s (Mentor: %s)\n", h.ali.Name(), mentorID)

	for _, c := range []struct{ id, name string }{
		{"C001", "Async Python"},
		{"C002", "Web Frameworks"},
		{"C003", "Database Design"},
	} {
		course, courseErr := campus.NewCourse(c.id, c.name, h.omar.ID(), campus.WithCapacity(5))
		if courseErr != nil {
			return courseErr
		}

		h.courses = append(h.courses, course)
	}

	catalogLog := actionlog.New(actionlog.WithClock(h.clock))
	h.catalog = catalog.New(catalog.WithActionLog(catalogLog))

	for _, r := range []struct{ id, name, rtype string }{
		{"R001", "3D Printer", "Lab"},
		{"R002", "Laptop", "Equipment"},
		{"R003", "Smart Whiteboard", "Lab"},
	} {
		res, resErr := resource.New(r.id, r.name, r.rtype)
		if resErr != nil {
			return resErr
		}

		h.catalog.Add(res)
	}

	h.students = []*campus.Student{h.zahra, h.malik, h.ali.Student}
	h.logs[h.zahra.ID()] = h.zahra.ActionLog()
	h.logs[h.malik.ID()] = h.malik.ActionLog()
	h.logs[h.ali.ID()] = h.ali.ActionLog()
	h.logs[h.omar.ID()] = h.omar.ActionLog()
	h.logs[catalogOwner] = catalogLog

	h.printf("Created %d students (including 1 premium)\n", len(h.students))
	h.printf("Created %d courses\n", len(h.courses))
	h.printf("Created %d resources\n", h.catalog.Len())
	h.printf("People on campus: %d\n\n", census.Count())

	return nil
}

func (h *hub) enroll() error {
	h.printf("--- ENROLLMENTS ---\n")

	for i, student := range h.students {
		course := h.courses[i]
		if student.Enroll(course.ID()) && course.AddStudent(student.ID()) {
			h.printf("Enrolled: %s -> %s\n", student.Name(), course)
		}
	}

	h.printf("\n")

	return nil
}

func (h *hub) transfer() error {
	h.printf("--- WALLET OPERATIONS ---\n")
	h.printf("Initial Balance - %s: %s credits\n", h.zahra.Name(), report.FormatCurrency(h.zahra.Account().Balance()))
	h.printf("Initial Balance - %s: %s credits\n", h.malik.Name(), report.FormatCurrency(h.malik.Account().Balance()))

	amount := core.MustAmount("150")
	if err := h.zahra.Account().Transfer(h.malik.Account(), amount); err != nil {
		return err
	}

	h.printf("Wallet Transfer: %s -> %s | -%s credits\n", h.zahra.Name(), h.malik.Name(), report.FormatCurrency(amount))
	h.printf("  After transfer - %s\n", h.zahra.Account())
	h.printf("  After transfer - %s\n\n", h.malik.Account())

	return nil
}

func (h *hub) showCatalog() error {
	h.printf("--- RESOURCE CATALOG ---\n")
	h.printf("Catalog Size: %d items\n", h.catalog.Len())

	idx := 1
	for r := range h.catalog.All() {
		h.printf("  %d. %s\n", idx, r)
		idx++
	}

	h.printf("\n")

	return nil
}

func (h *hub) borrow() error {
	h.printf("--- RESOURCE BORROWING & MENTOR APPROVAL ---\n")

	for _, student := range []*campus.Student{h.zahra, h.malik} {
		allocation, err := campus.Borrow(h.catalog, student, h.omar)
		if err != nil {
			return err
		}

		if allocation.Succeeded() {
			h.printf("Resource Approved: %s for %s by Mentor %s\n", allocation.Resource.Name(), student.Name(), h.omar.Name())
			continue
		}

		h.printf("No resource for %s (%s)\n", student.Name(), allocation.Outcome)
	}

	h.printf("Status: %s\n\n", report.StatusSummary(h.catalog))

	return nil
}

func (h *hub) report() error {
	h.printf("--- REPORT GENERATION ---\n")
	h.printf("%s\n\n", h.currentReport())

	return nil
}

func (h *hub) currentReport() report.Report {
	return report.FromStudents(h.students, h.omar.Approvals(), h.catalog.Len())
}

func (h *hub) auditLogs() error {
	h.printf("--- AUDIT LOGS ---\n")
	h.printf("Audit Log for %s:\n%s\n", h.zahra.Name(), h.zahra.ActionLog().Render())
	h.printf("Audit Log for %s:\n%s\n\n", h.omar.Name(), h.omar.ActionLog().Render())

	return nil
}

func (h *hub) extras() error {
	h.printf("--- ADDITIONAL FEATURES ---\n")

	other, err := campus.NewPerson(campus.NewCensus(), "S001", "Zahra", "zahra2@bootcamp.edu", core.MustAmount("100"), campus.RoleStudent)
	if err != nil {
		return err
	}

	h.printf("Person equality (by ID): %t\n", h.zahra.Equals(other))

	first := h.currentReport()
	second := report.Report{Students: 1, MentorApprovals: 1, CatalogSize: 2}
	h.printf("Original Report: %s\n", first)
	h.printf("Report 2:        %s\n", second)
	h.printf("Combined Report: %s\n", first.Combine(second))

	h.printf("Default course capacity: %d\n", campus.DefaultCourseCapacity)
	h.printf("%s capacity: %d, students: %s\n", h.courses[0].Name(), h.courses[0].Capacity(), report.FormatList(h.courses[0].Students()))

	if err := h.zahra.SetProgress(75.5); err != nil {
		return err
	}

	h.printf("Student progress: %v%%\n\n", h.zahra.Progress())

	return nil
}

func (h *hub) archive(ctx context.Context, opts Options) error {
	h.printf("--- ARCHIVE ---\n")

	owners := []core.OwnerID{h.zahra.ID(), h.malik.ID(), h.ali.ID(), h.omar.ID(), catalogOwner}
	total := 0

	for _, owner := range owners {
		options := make([]shell.ArchiverOption, 0, 3)
		if opts.Logger != nil {
			options = append(options, shell.WithArchiverLogger(opts.Logger))
		}

		if opts.Metrics != nil {
			options = append(options, shell.WithArchiverMetrics(opts.Metrics))
		}

		if opts.Tracing != nil {
			options = append(options, shell.WithArchiverTracing(opts.Tracing))
		}

		archiver, err := shell.NewArchiver(opts.Archive, owner, h.logs[owner], options...)
		if err != nil {
			return err
		}

		n, err := archiver.FlushWithRetry(ctx)
		if err != nil {
			return fmt.Errorf("archive %s: %w", owner, err)
		}

		total += n
	}

	kinds := make([]string, 0)
	entries, _, err := opts.Archive.Query(ctx, eventstore.BuildEntryFilter().MatchingAnyEntry())
	if err != nil {
		return err
	}

	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}

	h.printf("Archived %d entries from %d logs\n", total, len(owners))
	h.printf("Archived kinds: %s\n\n", strings.Join(uniqueInOrder(kinds), ", "))

	return nil
}

func (h *hub) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(h.out, format, args...)
}

func uniqueInOrder(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}

	return result
}
