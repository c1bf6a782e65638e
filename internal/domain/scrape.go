package domain

import (
	"errors"
	"io"
)

// ErrNothingToSave is reported by exporters handed an empty collection.
var ErrNothingToSave = errors.New("nothing to save")

// Skip records a review block that was dropped during extraction.
type Skip struct {
	Page     int    `json:"page"`
	Index    int    `json:"index"` // position of the block within its page
	ReviewID string `json:"review_id,omitempty"`
	Reason   string `json:"reason"`
}

// PageResult is what one listing page yields: the records that extracted
// cleanly, in document order, plus the blocks that did not.
type PageResult struct {
	Records []Review
	Skips   []Skip
}

type PageParser interface {
	ParsePage(r io.Reader) (PageResult, error)
}

type ReviewExporter interface {
	Export(path string, rs []Review) (int, error)
}
