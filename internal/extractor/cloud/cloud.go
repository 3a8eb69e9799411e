// Package cloud adapts the external structured-extraction service. The
// service receives an object-storage reference and returns the extracted
// clauses as JSON; every parsing step here is tolerant, so a bad response
// degrades to an empty record instead of an error.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

const (
	defaultContainer  = "editals"
	defaultPageLen    = "all"
	defaultPromptPath = "./prompts"
)

var defaultPrompts = []string{"edital"}

// timestampLayouts are tried in order against the dataHora field. Day
// first, then ISO variants, then month first.
var timestampLayouts = []string{
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04",
	"01/02/2006 15:04",
}

// request is the outbound payload for the extraction endpoint.
type request struct {
	FileName      string   `json:"file_name"`
	ContainerName string   `json:"container_name"`
	PageLen       string   `json:"page_len"`
	PromptPath    string   `json:"prompt_path"`
	PromptList    []string `json:"prompt_list"`
}

// CallOptions overrides the request defaults for a single call.
type CallOptions struct {
	Container string
	PageLen   string
	Prompts   []string
}

// Client calls the cloud extraction service and maps its response into the
// canonical notice shape. It implements port.ExtractStrategy.
type Client struct {
	baseURL    string
	enabled    bool
	container  string
	promptPath string
	client     *http.Client
	now        func() time.Time
}

// New creates a cloud extraction Client from configuration.
func New(cfg *config.CloudConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	container := cfg.Container
	if container == "" {
		container = defaultContainer
	}
	promptPath := cfg.PromptPath
	if promptPath == "" {
		promptPath = defaultPromptPath
	}
	return &Client{
		baseURL:    cfg.URL,
		enabled:    cfg.Enabled,
		container:  container,
		promptPath: promptPath,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// NewWithClock creates a Client with an injected clock (tests).
func NewWithClock(cfg *config.CloudConfig, now func() time.Time) *Client {
	c := New(cfg)
	c.now = now
	return c
}

func (c *Client) Name() string { return "cloud" }

// Available reports whether the service is enabled and has a target URL.
func (c *Client) Available() bool {
	return c.enabled && strings.TrimSpace(c.baseURL) != ""
}

// Extract implements port.ExtractStrategy by calling the service with the
// default options for the given document reference.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*domain.Notice, error) {
	return c.Call(ctx, input.FileName, CallOptions{})
}

// Call sends the extraction request and maps the response. Transport
// failures, non-200 statuses and malformed roots never produce an error:
// they yield an empty notice whose Notes identify the failure, and the
// orchestrator falls back to the local strategy.
func (c *Client) Call(ctx context.Context, fileName string, opts CallOptions) (*domain.Notice, error) {
	if !c.Available() {
		return c.emptyNotice("cloud extraction service disabled or unconfigured"), nil
	}

	req := request{
		FileName:      fileName,
		ContainerName: c.container,
		PageLen:       defaultPageLen,
		PromptPath:    c.promptPath,
		PromptList:    defaultPrompts,
	}
	if opts.Container != "" {
		req.ContainerName = opts.Container
	}
	if opts.PageLen != "" {
		req.PageLen = opts.PageLen
	}
	if len(opts.Prompts) > 0 {
		req.PromptList = opts.Prompts
	}

	body, err := json.Marshal(req)
	if err != nil {
		return c.emptyNotice(fmt.Sprintf("cloud extraction request marshal failed: %v", err)), nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return c.emptyNotice(fmt.Sprintf("cloud extraction request build failed: %v", err)), nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Printf("cloud.Client: call for %q failed: %v", fileName, err)
		return c.emptyNotice(fmt.Sprintf("cloud extraction call failed: %v", err)), nil
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("cloud.Client: reading response for %q failed: %v", fileName, err)
		return c.emptyNotice(fmt.Sprintf("cloud extraction response read failed: %v", err)), nil
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("cloud.Client: service returned status %d for %q", resp.StatusCode, fileName)
		return c.emptyNotice(fmt.Sprintf("cloud extraction service returned status %d", resp.StatusCode)), nil
	}

	return c.mapResponse(respBody, fileName), nil
}

// mapResponse navigates extracted_clausules.edital[0] and maps it to the
// canonical record. Absence of either key or an empty array is "no data",
// not a protocol error.
func (c *Client) mapResponse(body []byte, fileName string) *domain.Notice {
	if !gjson.ValidBytes(body) {
		log.Printf("cloud.Client: malformed JSON for %q", fileName)
		return c.emptyNotice("cloud extraction returned malformed JSON")
	}
	root := gjson.ParseBytes(body)

	clauses := root.Get("extracted_clausules")
	if !clauses.Exists() {
		log.Printf("cloud.Client: missing extracted_clausules for %q", fileName)
		return c.emptyNotice("cloud extraction response had no extracted_clausules")
	}
	editals := clauses.Get("edital")
	if !editals.IsArray() || len(editals.Array()) == 0 {
		log.Printf("cloud.Client: missing or empty edital array for %q", fileName)
		return c.emptyNotice("cloud extraction response had no edital data")
	}
	data := editals.Array()[0]

	n := &domain.Notice{
		Process:      data.Get("processo").String(),
		Timestamp:    c.parseTimestamp(data.Get("dataHora").String()),
		Client:       data.Get("cliente").String(),
		Object:       data.Get("objeto").String(),
		Portal:       data.Get("portal").String(),
		NoticeID:     data.Get("edital").String(),
		Modality:     data.Get("modalidade").String(),
		Sample:       data.Get("amostra").String(),
		Delivery:     data.Get("entrega").String(),
		CostCenter:   data.Get("cr").String(),
		Attestation:  parseAttestation(data.Get("atestado")),
		Notes:        data.Get("obs").String(),
		CurrencyRate: parseDecimal(data.Get("cotacaoDolar")),
		Items:        c.parseItems(data.Get("items")),
	}
	// The object doubles as the header title when the service supplies no
	// dedicated one.
	n.Title = n.Object

	n.Challenge = challengeFromSessionDate(data.Get("dataCertame").String())
	if n.Challenge == "" {
		n.Challenge = data.Get("impugnacao").String()
	}

	log.Printf("cloud.Client: mapped %q: process=%q object=%q items=%d",
		fileName, n.Process, n.Object, len(n.Items))
	return n
}

func (c *Client) parseItems(items gjson.Result) []domain.LineItem {
	out := []domain.LineItem{}
	if !items.IsArray() {
		return out
	}
	for i, item := range items.Array() {
		if !item.IsObject() {
			log.Printf("cloud.Client: skipping item %d: not an object", i)
			continue
		}
		number := int(item.Get("item").Int())
		if number <= 0 {
			number = len(out) + 1
		}
		quantity := int(item.Get("quantidade").Int())
		if quantity <= 0 {
			quantity = 1
		}
		li := domain.LineItem{
			Number:      number,
			Category:    "Produto",
			Description: item.Get("descricao").String(),
			Quantity:    quantity,
			Origin:      domain.OriginDomestic,
		}
		if v := parseDecimal(item.Get("custoUnitario")); v != nil {
			li.UnitCost = *v
		}
		if v := parseDecimal(item.Get("frete")); v != nil {
			li.Freight = *v
		}
		out = append(out, li)
	}
	return out
}

// parseTimestamp tries the layout list in order; if nothing parses the
// current time is substituted so a date-format mismatch never fails the
// extraction.
func (c *Client) parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return c.now()
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	log.Printf("cloud.Client: no layout matched timestamp %q, using now", s)
	return c.now()
}

// parseDecimal extracts a tolerant decimal: JSON numbers are taken
// directly, strings are parsed, anything else is nil.
func parseDecimal(r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		v := r.Float()
		return &v
	case gjson.String:
		s := strings.TrimSpace(r.String())
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &v
	default:
		return nil
	}
}

// parseAttestation normalizes the atestado field: booleans pass through,
// strings are checked against the affirmative token set, numbers are true
// iff non-zero.
func parseAttestation(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(r.String())) {
		case "sim", "true", "yes", "s", "1":
			return true
		}
		return false
	case gjson.Number:
		return r.Float() != 0
	default:
		return false
	}
}

// challengeFromSessionDate derives the challenge deadline as three
// business days before the session date (dd-MM-yyyy). Empty or
// unparseable input yields "".
func challengeFromSessionDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	session, err := time.Parse("02-01-2006", s)
	if err != nil {
		return ""
	}
	deadline := session
	for business := 0; business < 3; {
		deadline = deadline.AddDate(0, 0, -1)
		if wd := deadline.Weekday(); wd != time.Saturday && wd != time.Sunday {
			business++
		}
	}
	return fmt.Sprintf("Até %s antes da data de abertura do certame.", deadline.Format("02/01/2006"))
}

func (c *Client) emptyNotice(reason string) *domain.Notice {
	return &domain.Notice{
		Timestamp: c.now(),
		Notes:     reason,
		Items:     []domain.LineItem{},
	}
}
