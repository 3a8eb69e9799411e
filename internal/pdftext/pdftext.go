// Package pdftext extracts plain text and page counts from PDF bytes.
package pdftext

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/philipeduarte001/licitacao/internal/port"
)

// Extractor reads PDF documents through pdfcpu. The library works on
// files, so every call stages the payload in a private temp directory
// that is removed before returning.
type Extractor struct {
	conf *model.Configuration
}

// New creates a PDF text extractor with relaxed validation, which accepts
// the slightly malformed files procurement portals tend to serve.
func New() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

var _ port.TextExtractor = (*Extractor)(nil)

// ExtractText returns the concatenated page text and the page count of
// the given PDF payload.
func (e *Extractor) ExtractText(ctx context.Context, fileBytes []byte) (*port.DocumentText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "licitacao-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: creating temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.Printf("pdftext.Extractor: removing temp dir %s: %v", tempDir, err)
		}
	}()

	srcPath := filepath.Join(tempDir, "source.pdf")
	if err := os.WriteFile(srcPath, fileBytes, 0o600); err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: staging pdf: %w", err)
	}

	pageCount, err := api.PageCountFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: counting pages: %w", err)
	}

	contentDir := filepath.Join(tempDir, "content")
	if err := os.MkdirAll(contentDir, 0o700); err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: creating content dir: %w", err)
	}
	if err := api.ExtractContentFile(srcPath, contentDir, nil, e.conf); err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: extracting content: %w", err)
	}

	text, err := collectText(contentDir)
	if err != nil {
		return nil, fmt.Errorf("pdftext.Extractor: reading content streams: %w", err)
	}

	return &port.DocumentText{Text: text, PageCount: pageCount}, nil
}

// collectText reads every extracted content stream under dir, in page
// order, and decodes the text-showing operators into plain text.
func collectText(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	// Extracted files carry the page number in the name; lexicographic
	// order is wrong past page 9, so sort numerically on the trailing
	// digits.
	sort.Slice(names, func(i, j int) bool {
		ni, nj := trailingNumber(names[i]), trailingNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		sb.WriteString(decodeContentText(string(raw)))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func trailingNumber(name string) int {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	end := len(base)
	start := end
	for start > 0 && base[start-1] >= '0' && base[start-1] <= '9' {
		start--
	}
	n := 0
	for _, r := range base[start:end] {
		n = n*10 + int(r-'0')
	}
	return n
}

// decodeContentText pulls the arguments of Tj and TJ operators out of a
// raw page content stream. String literals use PDF escaping; only the
// escapes that occur in practice are handled.
func decodeContentText(content string) string {
	var sb strings.Builder
	i := 0
	for i < len(content) {
		switch content[i] {
		case '(':
			literal, next := readStringLiteral(content, i)
			sb.WriteString(literal)
			i = next
		case 'T':
			// TD/Td/T* move the text cursor to a new line.
			if i+1 < len(content) {
				switch content[i+1] {
				case 'd', 'D', '*':
					sb.WriteString("\n")
				}
			}
			i++
		default:
			i++
		}
	}
	return sb.String()
}

// readStringLiteral consumes a parenthesized PDF string starting at
// content[start] == '(' and returns the decoded text plus the index just
// past the closing parenthesis.
func readStringLiteral(content string, start int) (string, int) {
	var sb strings.Builder
	depth := 1
	i := start + 1
	for i < len(content) && depth > 0 {
		c := content[i]
		switch c {
		case '\\':
			if i+1 < len(content) {
				switch content[i+1] {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				case 'r':
					sb.WriteByte('\r')
				case '(', ')', '\\':
					sb.WriteByte(content[i+1])
				}
				i += 2
				continue
			}
			i++
		case '(':
			depth++
			sb.WriteByte(c)
			i++
		case ')':
			depth--
			if depth > 0 {
				sb.WriteByte(c)
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}
