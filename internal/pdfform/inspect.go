package pdfform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Report describes what an IRS form PDF contains: the form variant the text
// identifies and the line-item labels found on each page.
type Report struct {
	Form      string       `json:"form"`
	PageCount int          `json:"pageCount"`
	Pages     []PageFields `json:"pages"`
}

// PageFields lists the line-item labels found on one page, in label order.
type PageFields struct {
	Page   int      `json:"page"`
	Labels []string `json:"labels"`
}

// Line-item labels look like "1", "1a", "25b". The text layer of IRS PDFs
// renders them adjacent to a period or whitespace.
var lineLabelRe = regexp.MustCompile(`(?m)(?:^|\s)(\d{1,2}[a-z]?)[\s.]`)

// Known form headers, checked in order. Longer, more specific titles first so
// "Schedule C" does not match the 1040's schedule references.
var formSignatures = []struct {
	needle string
	form   string
}{
	{"Profit or Loss From Business", "Schedule C"},
	{"Self-Employment Tax", "Schedule SE"},
	{"Interest and Ordinary Dividends", "Schedule B"},
	{"Capital Gains and Losses", "Schedule D"},
	{"Itemized Deductions", "Schedule A"},
	{"Credits for Qualifying Children", "Schedule 8812"},
	{"Child and Dependent Care Expenses", "Form 2441"},
	{"Education Credits", "Form 8863"},
	{"Sales and Other Dispositions of Capital Assets", "Form 8949"},
	{"U.S. Individual Income Tax Return", "Form 1040"},
}

// InspectFile reads a PDF from disk and inspects it.
func InspectFile(ctx context.Context, path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	rep, err := Inspect(ctx, data)
	if err != nil {
		return Report{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	return rep, nil
}

// Inspect parses an in-memory PDF, identifies the form variant from its text
// layer, and collects per-page line-item labels.
func Inspect(ctx context.Context, data []byte) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if len(data) == 0 {
		return Report{}, fmt.Errorf("empty pdf data")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Report{}, fmt.Errorf("parse pdf: %w", err)
	}

	rep := Report{PageCount: pdfReader.NumPage()}
	var all strings.Builder
	for n := 1; n <= pdfReader.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		text, err := pageText(pdfReader.Page(n))
		if err != nil {
			// Scanned or image-only pages have no text layer. Keep
			// going; the remaining pages may still identify the form.
			continue
		}
		all.WriteString(text)
		all.WriteString("\n")
		if labels := lineLabels(text); len(labels) > 0 {
			rep.Pages = append(rep.Pages, PageFields{Page: n, Labels: labels})
		}
	}

	rep.Form = identifyForm(all.String())
	return rep, nil
}

func pageText(p pdf.Page) (string, error) {
	if p.V.IsNull() {
		return "", fmt.Errorf("null page")
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return text, nil
}

func identifyForm(text string) string {
	for _, sig := range formSignatures {
		if strings.Contains(text, sig.needle) {
			return sig.form
		}
	}
	return "unknown"
}

// lineLabels extracts the distinct line-item labels from one page of text,
// sorted by line number then letter suffix.
func lineLabels(text string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, m := range lineLabelRe.FindAllStringSubmatch(text, -1) {
		label := m[1]
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ni, si := splitLabel(labels[i])
		nj, sj := splitLabel(labels[j])
		if ni != nj {
			return ni < nj
		}
		return si < sj
	})
	return labels
}

func splitLabel(label string) (int, string) {
	digits := label
	suffix := ""
	if last := label[len(label)-1]; last >= 'a' && last <= 'z' {
		digits = label[:len(label)-1]
		suffix = label[len(label)-1:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, label
	}
	return n, suffix
}

// WriteText renders a report as indented plain text, one page per block.
func WriteText(w io.Writer, rep Report) error {
	if _, err := fmt.Fprintf(w, "form: %s\npages: %d\n", rep.Form, rep.PageCount); err != nil {
		return err
	}
	for _, page := range rep.Pages {
		if _, err := fmt.Fprintf(w, "page %d: %s\n", page.Page, strings.Join(page.Labels, " ")); err != nil {
			return err
		}
	}
	return nil
}
