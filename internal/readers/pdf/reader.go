package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Layout-analysis tolerances, in multiples of the chunk's font size.
// Two chunks whose horizontal distance is within charGap are contiguous
// and belong to the same text box; beyond it the next chunk starts a
// new box, and boxes join with a space. Within a box, a gap wider than
// wordGap marks a word break expressed by positioning rather than a
// space character, so one is inserted.
const (
	charGap = 0.1
	wordGap = 1.0
)

// lineTolerance is the vertical distance within which two chunks are
// considered part of the same line.
const lineTolerance = 2.0

// Ensure Reader implements the interface.
var _ driven.FormatReader = (*Reader)(nil)

// Reader handles PDF documents.
type Reader struct{}

// New creates a new PDF reader.
func New() *Reader {
	return &Reader{}
}

// Extensions returns the suffixes this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".pdf"}
}

// ReadFile runs page-by-page layout analysis, grouping text chunks into
// lines, joining the resulting boxes with spaces and stripping null
// bytes. Parser panics from malformed files are converted to errors so
// they stay local to the one file.
func (r *Reader) ReadFile(_ context.Context, path string) (payload *driven.Payload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			payload = nil
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var boxes []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text := groupText(page.Content().Text); text != "" {
			boxes = append(boxes, text)
		}
	}

	joined := strings.ReplaceAll(strings.Join(boxes, " "), "\x00", "")
	return &driven.Payload{Text: joined}, nil
}

// groupText merges positioned text chunks into text boxes. Chunks are
// ordered top-to-bottom, left-to-right; a vertical jump or a gap beyond
// the contiguity threshold ends the current box, and within a box a
// gap beyond the word threshold becomes a space.
func groupText(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}

	chunks := make([]pdf.Text, len(texts))
	copy(chunks, texts)
	sort.SliceStable(chunks, func(i, j int) bool {
		if diff := chunks[i].Y - chunks[j].Y; diff > lineTolerance || diff < -lineTolerance {
			return chunks[i].Y > chunks[j].Y // PDF origin is bottom-left
		}
		return chunks[i].X < chunks[j].X
	})

	var boxes []string
	var box strings.Builder
	flush := func() {
		boxes = append(boxes, box.String())
		box.Reset()
	}

	prev := chunks[0]
	box.WriteString(prev.S)

	for _, cur := range chunks[1:] {
		if abs(cur.Y-prev.Y) > lineTolerance {
			flush()
			box.WriteString(cur.S)
			prev = cur
			continue
		}

		gap := cur.X - (prev.X + prev.W)
		size := prev.FontSize
		if size <= 0 {
			size = 1
		}
		switch {
		case gap > charGap*size:
			flush()
		case gap > wordGap*size:
			box.WriteString(" ")
		}
		box.WriteString(cur.S)
		prev = cur
	}
	flush()

	return strings.TrimSpace(strings.Join(boxes, " "))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
