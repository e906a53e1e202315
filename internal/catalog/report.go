package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/turbolytics/curator/internal"
)

/*
The report is a record of a single check run across every datasource in a
catalog. It is a primitive for verifying, inventorying and auditing
datasource configurations.
*/

type Result struct {
	Datasource string `json:"datasource"`
	Success    bool   `json:"success"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type Report struct {
	RunID          string    `json:"run_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	NumDatasources int       `json:"num_datasources"`
	NumFailures    int       `json:"num_failures"`
	Success        bool      `json:"success"`
	Results        []Result  `json:"results"`
}

// Run executes every checker sequentially and collects the outcome. A
// datasource whose type has no checker is recorded as skipped, not failed.
func Run(ctx context.Context, runID string, checkers []internal.Checker) *Report {
	report := &Report{
		RunID:     runID,
		StartTime: time.Now().UTC(),
	}

	for _, checker := range checkers {
		start := time.Now()
		err := checker.Check(ctx)

		result := Result{
			Datasource: checker.Name(),
			Success:    err == nil,
			DurationMS: time.Since(start).Milliseconds(),
		}
		if err != nil {
			result.Error = err.Error()
			if errors.Is(err, internal.ErrCheckUnsupported) {
				result.Skipped = true
				result.Success = true
			} else {
				report.NumFailures++
			}
		}

		report.Results = append(report.Results, result)
	}

	report.EndTime = time.Now().UTC()
	report.NumDatasources = len(checkers)
	report.Success = report.NumFailures == 0

	return report
}
