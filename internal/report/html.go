package report

import (
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/GooferByte/OfsaaValidator/internal/validator"
)

func init() {
	Register(NewHTMLRenderer())
}

// HTMLRenderer writes a self-contained HTML validation report.
type HTMLRenderer struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer returns a new HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Name returns the format name.
func (h *HTMLRenderer) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

// htmlData holds all template data for the HTML report.
type htmlData struct {
	Table        string
	File         string
	GeneratedAt  string
	Total        int
	Valid        int
	Rejected     int
	TotalErrors  int
	QualityScore float64
	Verdict      string
	VerdictClass string
	ByType       []typeCount
	Errors       []validator.Error
}

type typeCount struct {
	Type  string
	Count int
}

// Render writes the report as a single HTML page to w.
func (h *HTMLRenderer) Render(in Input, w io.Writer) error {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))
	})

	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}

	s := in.Result.Summary
	data := htmlData{
		Table:        s.Table,
		File:         in.Metadata.Path,
		GeneratedAt:  now.Format("2006-01-02 15:04:05"),
		Total:        s.TotalRecords,
		Valid:        s.ValidRecords,
		Rejected:     s.RejectedRecords,
		TotalErrors:  s.TotalErrors,
		QualityScore: s.QualityScore,
		Verdict:      verdictLabel(s.QualityScore),
		VerdictClass: verdictClass(s.QualityScore),
		ByType:       countByType(in.Result.Errors),
		Errors:       in.Result.Errors,
	}

	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// verdictLabel is the uncolored verdict text for HTML output.
func verdictLabel(score float64) string {
	switch {
	case score >= 95:
		return "EXCELLENT"
	case score >= 85:
		return "GOOD"
	case score >= 70:
		return "FAIR"
	default:
		return "POOR"
	}
}

func verdictClass(score float64) string {
	switch {
	case score >= 95:
		return "good"
	case score >= 70:
		return "warn"
	default:
		return "bad"
	}
}

// countByType tallies errors per error type, in first-seen order.
func countByType(errs []validator.Error) []typeCount {
	idx := make(map[validator.ErrorType]int)
	var out []typeCount
	for _, e := range errs {
		if i, ok := idx[e.Type]; ok {
			out[i].Count++
			continue
		}
		idx[e.Type] = len(out)
		out = append(out, typeCount{Type: string(e.Type), Count: 1})
	}
	return out
}
