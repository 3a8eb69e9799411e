package cloud

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/philipeduarte001/licitacao/internal/config"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestClient(url string) *Client {
	cfg := &config.CloudConfig{URL: url, Enabled: true, TimeoutSecs: 5}
	return NewWithClock(cfg, func() time.Time { return fixedNow })
}

const successBody = `{
	"extracted_clausules": {
		"edital": [{
			"processo": "2024-C5D7D",
			"dataHora": "14/05/2025 11:24",
			"cliente": "Secretaria de Segurança",
			"objeto": "Lanternas táticas recarregáveis",
			"portal": "ComprasNet",
			"edital": "123/2024",
			"modalidade": "Pregão Eletrônico",
			"amostra": "Não exigida",
			"entrega": "30 dias",
			"cr": "4510",
			"atestado": "Sim",
			"obs": "Entrega parcelada aceita",
			"cotacaoDolar": "5.43",
			"dataCertame": "14-05-2025",
			"items": [
				{"item": 1, "descricao": "Lanterna tática", "quantidade": 500, "custoUnitario": 876.33, "frete": 0.0},
				{"descricao": "Carregador", "quantidade": 0, "custoUnitario": "12.50"}
			]
		}]
	}
}`

func TestCall_Success(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)

	// Outbound payload carries the defaults.
	assert.Equal(t, "edital.pdf", gjson.GetBytes(captured, "file_name").String())
	assert.Equal(t, "editals", gjson.GetBytes(captured, "container_name").String())
	assert.Equal(t, "all", gjson.GetBytes(captured, "page_len").String())
	assert.Equal(t, "./prompts", gjson.GetBytes(captured, "prompt_path").String())
	assert.Equal(t, `["edital"]`, gjson.GetBytes(captured, "prompt_list").Raw)

	assert.Equal(t, "2024-C5D7D", n.Process)
	assert.Equal(t, time.Date(2025, 5, 14, 11, 24, 0, 0, time.UTC), n.Timestamp)
	assert.Equal(t, "Secretaria de Segurança", n.Client)
	assert.Equal(t, "Lanternas táticas recarregáveis", n.Object)
	assert.Equal(t, n.Object, n.Title)
	assert.Equal(t, "ComprasNet", n.Portal)
	assert.Equal(t, "123/2024", n.NoticeID)
	assert.Equal(t, "4510", n.CostCenter)
	assert.True(t, n.Attestation)
	require.NotNil(t, n.CurrencyRate)
	assert.InDelta(t, 5.43, *n.CurrencyRate, 0.0001)

	// 14-05-2025 is a Wednesday; three business days back is Friday 09/05.
	assert.Equal(t, "Até 09/05/2025 antes da data de abertura do certame.", n.Challenge)

	require.Len(t, n.Items, 2)
	assert.Equal(t, 1, n.Items[0].Number)
	assert.Equal(t, "Lanterna tática", n.Items[0].Description)
	assert.Equal(t, 500, n.Items[0].Quantity)
	assert.InDelta(t, 876.33, n.Items[0].UnitCost, 0.0001)
	assert.InDelta(t, 0.0, n.Items[0].Freight, 0.0001)
	assert.Equal(t, "Produto", n.Items[0].Category)

	// Second item has no number and zero quantity; both are defaulted.
	assert.Equal(t, 2, n.Items[1].Number)
	assert.Equal(t, 1, n.Items[1].Quantity)
	assert.InDelta(t, 12.50, n.Items[1].UnitCost, 0.0001)
}

func TestCall_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)

	assert.False(t, n.HasKeyField())
	assert.Contains(t, n.Notes, "status 502")
	assert.Equal(t, fixedNow, n.Timestamp)
}

func TestCall_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)

	assert.False(t, n.HasKeyField())
	assert.Contains(t, n.Notes, "malformed JSON")
}

func TestCall_EmptyEditalArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"extracted_clausules": {"edital": []}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)

	assert.False(t, n.HasKeyField())
	assert.Contains(t, n.Notes, "no edital data")
}

func TestCall_TransportFailure(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)

	assert.False(t, n.HasKeyField())
	assert.Contains(t, n.Notes, "call failed")
}

func TestCall_Disabled(t *testing.T) {
	cfg := &config.CloudConfig{URL: "http://example.invalid", Enabled: false}
	c := New(cfg)

	assert.False(t, c.Available())
	n, err := c.Call(context.Background(), "edital.pdf", CallOptions{})
	require.NoError(t, err)
	assert.Contains(t, n.Notes, "disabled")
}

func TestCall_Overrides(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"extracted_clausules": {"edital": []}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Call(context.Background(), "edital.pdf", CallOptions{
		Container: "custom",
		PageLen:   "3",
		Prompts:   []string{"edital", "anexo"},
	})
	require.NoError(t, err)

	assert.Equal(t, "custom", gjson.GetBytes(captured, "container_name").String())
	assert.Equal(t, "3", gjson.GetBytes(captured, "page_len").String())
	assert.Equal(t, int64(2), gjson.GetBytes(captured, "prompt_list.#").Int())
}

func TestParseTimestamp(t *testing.T) {
	c := newTestClient("http://unused.invalid")
	want := time.Date(2025, 5, 14, 11, 24, 0, 0, time.UTC)

	// Every accepted layout of the same moment resolves to one instant.
	equivalents := []string{
		"14/05/2025 11:24",
		"14/05/2025 11:24:00",
		"2025-05-14T11:24:00",
		"2025-05-14 11:24:00",
		"14-05-2025 11:24",
		"05/14/2025 11:24",
	}
	for _, in := range equivalents {
		t.Run(in, func(t *testing.T) {
			assert.True(t, want.Equal(c.parseTimestamp(in)), "input %q", in)
		})
	}
}

func TestParseTimestamp_Fallbacks(t *testing.T) {
	c := newTestClient("http://unused.invalid")

	assert.Equal(t, fixedNow, c.parseTimestamp(""))
	assert.Equal(t, fixedNow, c.parseTimestamp("   "))
	assert.Equal(t, fixedNow, c.parseTimestamp("quarta-feira, maio 14"))
}

func TestParseAttestation(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"sim"`, true},
		{`"SIM"`, true},
		{`"yes"`, true},
		{`"s"`, true},
		{`"1"`, true},
		{`"não"`, false},
		{`"no"`, false},
		{`1`, true},
		{`0`, false},
		{`null`, false},
		{`{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, parseAttestation(gjson.Parse(tc.raw)))
		})
	}
}

func TestParseDecimal(t *testing.T) {
	require.NotNil(t, parseDecimal(gjson.Parse(`5.43`)))
	assert.InDelta(t, 5.43, *parseDecimal(gjson.Parse(`5.43`)), 0.0001)
	assert.InDelta(t, 5.43, *parseDecimal(gjson.Parse(`"5.43"`)), 0.0001)
	assert.Nil(t, parseDecimal(gjson.Parse(`""`)))
	assert.Nil(t, parseDecimal(gjson.Parse(`"abc"`)))
	assert.Nil(t, parseDecimal(gjson.Parse(`null`)))
	assert.Nil(t, parseDecimal(gjson.Parse(`[]`)))
}

func TestChallengeFromSessionDate(t *testing.T) {
	// Monday 19-05-2025: three business days back crosses the weekend.
	assert.Equal(t,
		"Até 14/05/2025 antes da data de abertura do certame.",
		challengeFromSessionDate("19-05-2025"))
	assert.Equal(t, "", challengeFromSessionDate(""))
	assert.Equal(t, "", challengeFromSessionDate("2025-05-19"))
}
