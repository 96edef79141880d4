package pipeline

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// probePDF parses document-level metadata without rendering and returns
// the page count. A parse failure marks the file invalid; cleanup policy
// is owned by the orchestrator, so nothing is deleted here.
func probePDF(path string) (int, bool) {
	count, err := api.PageCountFile(path)
	if err != nil || count < 1 {
		return 0, false
	}
	return count, true
}
