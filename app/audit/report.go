package audit

import (
	"fmt"
	"io"
	"time"
)

// Finding statuses, ordered from best to worst.
const (
	StatusGood             = "Good"
	StatusNeedsImprovement = "Needs Improvement"
	StatusWarning          = "Warning"
	StatusCritical         = "Critical"
)

var statusRank = map[string]int{
	StatusGood:             0,
	StatusNeedsImprovement: 1,
	StatusWarning:          2,
	StatusCritical:         3,
}

// Finding is one audit check result.
type Finding struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Report aggregates the findings of one audit run.
type Report struct {
	Name            string    `json:"name"`
	GeneratedAt     time.Time `json:"generated_at"`
	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`
}

func newReport(name string) *Report {
	return &Report{Name: name, GeneratedAt: time.Now()}
}

func (r *Report) add(name, status, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Name:   name,
		Status: status,
		Detail: fmt.Sprintf(format, args...),
	})
}

func (r *Report) recommend(format string, args ...any) {
	r.Recommendations = append(r.Recommendations, fmt.Sprintf(format, args...))
}

// OverallStatus is the worst status among the findings.
func (r *Report) OverallStatus() string {
	worst := StatusGood
	for _, f := range r.Findings {
		if statusRank[f.Status] > statusRank[worst] {
			worst = f.Status
		}
	}
	return worst
}

// Write renders the report as plain text.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "%s audit — %s\n", r.Name, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Overall: %s\n\n", r.OverallStatus())
	for _, f := range r.Findings {
		fmt.Fprintf(w, "[%-17s] %s: %s\n", f.Status, f.Name, f.Detail)
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}
