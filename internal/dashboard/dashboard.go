package dashboard

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metricsql"
	"github.com/prometheus/common/model"
)

const inputTimeFormat = "2006-01-02T15:04:05"

type Type string

const (
	VMUI       Type = "vmui"
	Prometheus Type = "prometheus"
	Grafana    Type = "grafana"
)

// Window is a resolved time range. From is always before To.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow validates that from is strictly before to.
func NewWindow(from, to time.Time) (Window, error) {
	if !from.Before(to) {
		return Window{}, fmt.Errorf("window start %s must be before end %s",
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return Window{From: from, To: to}, nil
}

// Range renders the window length in Prometheus duration syntax, e.g.
// "1d2h30m", rounded down to whole seconds.
func (w Window) Range() string {
	d := w.To.Sub(w.From).Truncate(time.Second)
	return model.Duration(max(d, time.Second)).String()
}

// ValidateQuery checks that query parses as PromQL/MetricsQL.
func ValidateQuery(query string) error {
	if _, err := metricsql.Parse(query); err != nil {
		return fmt.Errorf("invalid query %q: %w", query, err)
	}
	return nil
}

// Linker builds explore links for a single dashboard UI.
type Linker struct {
	kind Type
	base *url.URL
}

func New(dashboardType Type, baseURL string) (*Linker, error) {
	switch dashboardType {
	case Prometheus, VMUI, Grafana:
	default:
		return nil, fmt.Errorf("unknown type: %q (must be prometheus, vmui, or grafana)", dashboardType)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %s base URL: %w", dashboardType, err)
	}

	return &Linker{kind: dashboardType, base: u}, nil
}

type grafanaPane struct {
	Queries []grafanaQuery `json:"queries"`
	Range   grafanaRange   `json:"range"`
}

type grafanaQuery struct {
	RefID string `json:"refId"`
	Expr  string `json:"expr"`
}

type grafanaRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// URL links query over w. Existing query parameters of the base URL are kept.
func (l *Linker) URL(query string, w Window) string {
	u := *l.base
	q := u.Query()

	switch l.kind {
	case Grafana:
		pane, _ := json.Marshal(grafanaPane{
			Queries: []grafanaQuery{{RefID: "A", Expr: query}},
			Range: grafanaRange{
				From: strconv.FormatInt(w.From.UnixMilli(), 10),
				To:   strconv.FormatInt(w.To.UnixMilli(), 10),
			},
		})
		q.Set("left", string(pane))
	case Prometheus:
		end := w.To.UTC().Format(inputTimeFormat)
		q.Set("g0.expr", query)
		q.Set("g0.tab", "0")
		q.Set("g0.range_input", w.Range())
		q.Set("g0.end_input", end)
		q.Set("g0.moment_input", end)
	case VMUI:
		q.Set("g0.expr", query)
		q.Set("g0.range_input", w.Range())
		q.Set("g0.end_input", w.To.UTC().Format(inputTimeFormat))
	}

	u.RawQuery = q.Encode()
	return u.String()
}
