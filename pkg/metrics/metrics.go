// Package metrics registers the process-wide Prometheus collectors. The
// loader exposes load progress; the API additionally exposes sandbox
// rejections alongside the default process and Go collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "football_rows_loaded_total",
		Help: "Rows written per destination table, including conflict-discarded duplicates.",
	}, []string{"table"})

	BatchFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "football_batch_flushes_total",
		Help: "Batch insert statements issued per destination table.",
	}, []string{"table"})

	FilesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "football_files_skipped_total",
		Help: "Corrupt or unreadable source files tolerated per domain.",
	}, []string{"domain"})

	DocumentsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "football_documents_skipped_total",
		Help: "Undecodable documents tolerated inside otherwise loaded files, per domain.",
	}, []string{"domain"})

	SandboxRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "football_sandbox_rejections_total",
		Help: "Ad-hoc queries rejected before execution, by violated rule.",
	}, []string{"rule"})
)
