// Package local extracts notice fields from raw document text using a
// declarative table of per-field regex rules. It is the fallback strategy
// when the cloud extraction service is disabled or returns nothing useful.
package local

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// fieldRule associates one logical notice field with its label pattern.
// Rules run in declaration order; the first match per field wins.
type fieldRule struct {
	name   string
	re     *regexp.Regexp
	assign func(n *domain.Notice, value string)
}

var fieldRules = []fieldRule{
	{"process", regexp.MustCompile(`(?i)processo[\s:\-]*([\w\-/.]+)`),
		func(n *domain.Notice, v string) { n.Process = v }},
	{"organ", regexp.MustCompile(`(?i)(?:órgão|orgao)[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Organ = v }},
	{"title", regexp.MustCompile(`(?i)(?:título|titulo)[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Title = v }},
	{"portal", regexp.MustCompile(`(?i)portal[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Portal = v }},
	{"notice_id", regexp.MustCompile(`(?i)edital[\s:\-]*([\w\-/.]+)`),
		func(n *domain.Notice, v string) { n.NoticeID = v }},
	{"client", regexp.MustCompile(`(?i)cliente[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Client = v }},
	{"object", regexp.MustCompile(`(?i)objeto[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Object = v }},
	{"modality", regexp.MustCompile(`(?i)modalidade[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Modality = v }},
	{"sample", regexp.MustCompile(`(?i)amostra[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Sample = v }},
	{"delivery", regexp.MustCompile(`(?i)(?:entrega|prazo)[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Delivery = v }},
	{"cost_center", regexp.MustCompile(`(?i)\b(?:centro de responsabilidade|cr)\b[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.CostCenter = v }},
	{"challenge", regexp.MustCompile(`(?i)(?:impugnação|impugnacao)[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Challenge = v }},
	{"notes", regexp.MustCompile(`(?i)(?:observações|observacoes|obs)[\s:\-]*([^\n\r]+)`),
		func(n *domain.Notice, v string) { n.Notes = v }},
}

var (
	attestationRe = regexp.MustCompile(`(?i)atestado[\s:\-]*(sim|não|yes|no|s|n)\b`)
	dateRe        = regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)
	timeRe        = regexp.MustCompile(`(\d{1,2}:\d{2})`)
)

// dateLayouts are tried in order when combining the separately extracted
// date and time fragments.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
}

// Extractor is the regex-based local extraction strategy. Deterministic
// apart from the clock used when no date can be parsed.
type Extractor struct {
	now func() time.Time
}

// New creates a local Extractor.
func New() *Extractor {
	return &Extractor{now: time.Now}
}

// NewWithClock creates a local Extractor with an injected clock (tests).
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

func (e *Extractor) Name() string { return "local-regex" }

func (e *Extractor) Available() bool { return true }

// Extract runs every field rule against the raw text. Unmatched fields
// stay empty strings; the timestamp falls back to the current time.
func (e *Extractor) Extract(_ context.Context, input port.ExtractInput) (*domain.Notice, error) {
	n := &domain.Notice{Items: []domain.LineItem{}}
	for _, rule := range fieldRules {
		if m := rule.re.FindStringSubmatch(input.Text); m != nil {
			rule.assign(n, normalize(m[1]))
		}
	}
	n.Attestation = extractAttestation(input.Text)
	n.Timestamp = e.extractTimestamp(input.Text)
	return n, nil
}

// normalize trims the matched value and collapses internal line breaks to
// single spaces.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	return strings.Join(strings.Fields(v), " ")
}

func extractAttestation(text string) bool {
	m := attestationRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(m[1])) {
	case "sim", "yes", "s":
		return true
	}
	return false
}

// extractTimestamp runs two passes, one for the date fragment and one for
// the time fragment, then combines them over the known layouts. Any
// failure falls back to now.
func (e *Extractor) extractTimestamp(text string) time.Time {
	dm := dateRe.FindStringSubmatch(text)
	if dm == nil {
		return e.now()
	}
	date := strings.NewReplacer("-", "/").Replace(dm[1])

	clock := "00:00"
	if tm := timeRe.FindStringSubmatch(text); tm != nil {
		clock = tm[1]
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout+" 15:04", date+" "+clock); err == nil {
			return ts
		}
	}
	return e.now()
}
