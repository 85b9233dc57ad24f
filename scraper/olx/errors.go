package olx

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure matches every StructureError.
	ErrStructure = errors.New("page structure mismatch")
	// ErrExtraction matches every ExtractionError.
	ErrExtraction = errors.New("malformed ad item")
	// ErrPaginationCycle is wrapped by the StructureError raised when a
	// "next" link points to a page already visited in the same walk.
	ErrPaginationCycle = errors.New("pagination links back to a visited page")
)

// RenderError is a navigation or script failure reported by the renderer.
type RenderError struct {
	URL string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.URL, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// StructureError means a page rendered fine but lacks an element the
// layout requires.
type StructureError struct {
	URL     string
	Element string
	Err     error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("page %s: %s: %v", e.URL, e.Element, e.Err)
	}
	return fmt.Sprintf("page %s: %s not found", e.URL, e.Element)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// ExtractionError is a single malformed ad item.
type ExtractionError struct {
	URL    string
	Index  int
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("page %s: item %d: %s", e.URL, e.Index, e.Reason)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// URLError ties a failed walk to the input URL it started from.
type URLError struct {
	URL string
	Err error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("crawl %s: %v", e.URL, e.Err)
}

func (e *URLError) Unwrap() error {
	return e.Err
}
