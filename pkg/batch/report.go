package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkippedFile records one corrupt or unreadable input file that the run
// tolerated instead of aborting.
type SkippedFile struct {
	Path   string
	Reason string
}

// SkippedDocument records one undecodable document inside a file that was
// otherwise loaded. The file still counts as processed.
type SkippedDocument struct {
	Path   string
	Reason string
}

// RunReport accumulates the per-table row counts and skipped-file tally for
// one load run and renders the final verification summary.
type RunReport struct {
	RunID          string
	Domain         string
	StartedAt      time.Time
	FilesProcessed int
	Skipped        []SkippedFile
	SkippedDocs    []SkippedDocument
	rowCounts      map[string]int
}

func NewRunReport(domain string) *RunReport {
	return &RunReport{
		RunID:     uuid.New().String(),
		Domain:    domain,
		StartedAt: time.Now().UTC(),
		rowCounts: make(map[string]int),
	}
}

func (r *RunReport) AddRows(table string, count int) {
	r.rowCounts[table] += count
}

func (r *RunReport) FileProcessed() {
	r.FilesProcessed++
}

func (r *RunReport) FileSkipped(path, reason string) {
	r.Skipped = append(r.Skipped, SkippedFile{Path: path, Reason: reason})
}

func (r *RunReport) DocumentSkipped(path, reason string) {
	r.SkippedDocs = append(r.SkippedDocs, SkippedDocument{Path: path, Reason: reason})
}

func (r *RunReport) Rows(table string) int {
	return r.rowCounts[table]
}

// Summary renders the operator-facing end-of-run text: per-table row counts
// and every skipped file with its reason.
func (r *RunReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s) finished in %s\n", r.RunID, r.Domain, time.Since(r.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(&b, "files processed: %d, skipped: %d, documents skipped: %d\n", r.FilesProcessed, len(r.Skipped), len(r.SkippedDocs))

	tables := make([]string, 0, len(r.rowCounts))
	for table := range r.rowCounts {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		fmt.Fprintf(&b, "  %-20s %d rows written\n", table, r.rowCounts[table])
	}

	for _, skipped := range r.Skipped {
		fmt.Fprintf(&b, "  skipped %s: %s\n", skipped.Path, skipped.Reason)
	}
	for _, doc := range r.SkippedDocs {
		fmt.Fprintf(&b, "  skipped document in %s: %s\n", doc.Path, doc.Reason)
	}
	return b.String()
}
