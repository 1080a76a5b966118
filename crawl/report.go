package crawl

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Report is the completion report for one crawl run. Counters are updated
// from the controller loop and from concurrent analysis goroutines, so all
// mutation goes through the add* helpers.
type Report struct {
	mu sync.Mutex

	// Discovered is the total number of unique addresses ever seen.
	Discovered int

	// Visited counts dequeued addresses, successful or failed.
	Visited int

	// CaptureFailures counts pages that could not be captured.
	CaptureFailures int

	// Analyzed counts pages whose analysis completed successfully.
	Analyzed int

	// AnalysisFailures counts pages whose inference exhausted its retry
	// budget or was canceled.
	AnalysisFailures int

	// RawFindings is the number of candidate findings before validation.
	RawFindings int

	// ValidFindings is the number of findings after validation.
	ValidFindings int

	// DroppedFindings counts candidates removed by the confidence filter.
	DroppedFindings int

	// StoreErrors counts entries lost to persistence failures.
	StoreErrors int
}

func (r *Report) add(fn func(*Report)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r)
}

// String renders the run completion report.
func (r *Report) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf(
		"discovered %d, visited %d (%d capture failures), analyzed %d (%d failures), findings %d/%d kept (%d dropped), store errors %d",
		r.Discovered, r.Visited, r.CaptureFailures,
		r.Analyzed, r.AnalysisFailures,
		r.ValidFindings, r.RawFindings, r.DroppedFindings,
		r.StoreErrors,
	)
}

// ComputeHash computes an xxhash of the content, used as the snapshot hash
// recorded in entry provenance.
func ComputeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
