package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	pdfMaxLines = 52
	pdfWrapAt   = 90
)

// reportLines lays out the header block followed by the flattened content.
func reportLines(r SystemReport) []string {
	generator := fmt.Sprintf("#%d", r.GeneratedBy)
	if r.Generator != nil && r.Generator.FullName != "" {
		generator = r.Generator.FullName
	}

	lines := []string{
		"OJT System Report",
		fmt.Sprintf("Report No: %d", r.ID),
		"Type: " + humanize(r.ReportType),
		"Generated by: " + generator,
		"Created at: " + r.CreatedAt.Format(time.RFC1123),
		"",
	}

	var content any
	if err := json.Unmarshal(r.Content, &content); err != nil || content == nil {
		return append(lines, "(no content)")
	}
	for _, l := range flatten("", content) {
		lines = append(lines, wrap(l, pdfWrapAt)...)
	}

	if len(lines) > pdfMaxLines {
		lines = append(lines[:pdfMaxLines-1], "... truncated")
	}
	return lines
}

// flatten renders nested JSON as "Key / Sub Key: value" lines in key order.
func flatten(prefix string, v any) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(join(prefix, humanize(k)), t[k])...)
		}
		return out
	case []any:
		var out []string
		for i, item := range t {
			out = append(out, flatten(join(prefix, fmt.Sprintf("%d", i+1)), item)...)
		}
		return out
	case nil:
		return []string{label(prefix) + "-"}
	case float64:
		return []string{label(prefix) + strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), ".")}
	default:
		return []string{label(prefix) + fmt.Sprint(t)}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + " / " + key
}

func label(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + ": "
}

// Casers are stateful; humanize builds one per call.
func humanize(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

const wrapIndent = "    "

// wrap breaks line at the last space that fits in width, indenting the
// continuation lines. A token with no space to break at is cut on a rune
// boundary. Every pass consumes at least one byte past the indent.
func wrap(line string, width int) []string {
	if width <= len(wrapIndent) {
		width = len(wrapIndent) + 1
	}
	var out []string
	head := 0
	for len(line) > width {
		cut := -1
		if i := strings.LastIndex(line[head:width], " "); i > 0 {
			cut = head + i
		}
		if cut < 0 {
			cut = width
			for cut > head && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == head {
				cut = width
				for cut < len(line) && !utf8.RuneStart(line[cut]) {
					cut++
				}
			}
		}
		out = append(out, strings.TrimRight(line[:cut], " "))
		line = wrapIndent + strings.TrimLeft(line[cut:], " ")
		head = len(wrapIndent)
	}
	return append(out, line)
}

// buildReportPDF writes a single-page PDF with one Helvetica text line per
// entry.
func buildReportPDF(lines []string) []byte {
	if len(lines) == 0 {
		lines = []string{"Report"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(&content, "(%s) Tj\n", pdfEscape(line))
			continue
		}
		fmt.Fprintf(&content, "T* (%s) Tj\n", pdfEscape(line))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xrefStart)

	return out.Bytes()
}

// pdfEscape escapes string delimiters and drops bytes Helvetica cannot show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
