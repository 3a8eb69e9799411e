package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/philipeduarte001/licitacao/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row: notice metadata repeated per line
// item so the export stays flat.
var columns = []string{
	"Process",
	"Session",
	"Organ",
	"Notice ID",
	"Client",
	"Object",
	"Modality",
	"Item Number",
	"Category",
	"Description",
	"Quantity",
	"Unit Cost",
	"Freight",
	"Origin",
}

// Writer wraps csv.Writer for exporting notices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteNotice writes one row per line item of the notice. A notice with
// no items still produces a single metadata-only row.
func (w *Writer) WriteNotice(n *domain.Notice) error {
	if len(n.Items) == 0 {
		return w.csv.Write(noticeToRow(n, nil))
	}
	for i := range n.Items {
		if err := w.csv.Write(noticeToRow(n, &n.Items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func noticeToRow(n *domain.Notice, item *domain.LineItem) []string {
	row := make([]string, len(columns))
	row[0] = n.Process
	row[1] = formatSession(n.Timestamp)
	row[2] = n.Organ
	row[3] = n.NoticeID
	row[4] = n.Client
	row[5] = n.Object
	row[6] = n.Modality
	if item == nil {
		return row
	}
	row[7] = strconv.Itoa(item.Number)
	row[8] = item.Category
	row[9] = item.Description
	row[10] = strconv.Itoa(item.Quantity)
	row[11] = formatMoney(item.UnitCost)
	row[12] = formatMoney(item.Freight)
	row[13] = string(item.Origin)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatSession(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a process identifier for use in
// Content-Disposition. Replaces non-alphanumeric chars (except - _) with
// _, collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_process}_{YYYY-MM-DD}.csv
func BuildFilename(process string) string {
	sanitized := SanitizeFilename(process)
	if sanitized == "" {
		sanitized = "notice"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
