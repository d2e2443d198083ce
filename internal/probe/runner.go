package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/sync/errgroup"

	"github.com/okian/museumguide/internal/domain/facts"
)

// Endpoints returns every endpoint the facts probe asks, in report order.
func Endpoints() []string {
	return append([]string{"painting_to_search", "artists"}, facts.Names()...)
}

// Run asks every endpoint about title concurrently. Results keep the order of
// endpoints; per-endpoint failures are reported in Result.Err.
func Run(ctx context.Context, cfg Config, title string, endpoints []string) []Result {
	cfg = cfg.withDefaults()
	client := NewClient(cfg)

	results := make([]Result, len(endpoints))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, endpoint := range endpoints {
		g.Go(func() error {
			results[i] = client.Ask(gctx, endpoint, title)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed counts results that did not produce a success envelope.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || r.Status != "success" {
			n++
		}
	}
	return n
}

const maxCell = 60

// RenderTable formats results for a terminal.
func RenderTable(results []Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Endpoint", "Status", "Value", "Latency"})
	for _, r := range results {
		status, value := r.Status, r.Value
		switch {
		case r.Err != nil:
			status, value = "failed", r.Err.Error()
		case r.Status == "error":
			value = r.Message
		}
		tw.AppendRow(table.Row{r.Endpoint, status, truncate(value), r.Latency.Round(1e6).String()})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// RenderJSON concatenates the raw envelopes, one per line, prefixed by endpoint.
func RenderJSON(results []Result) string {
	var b strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%s\t{\"probe_error\":%q}\n", r.Endpoint, r.Err.Error())
			continue
		}
		fmt.Fprintf(&b, "%s\t%s\n", r.Endpoint, strings.TrimSpace(string(r.Raw)))
	}
	return b.String()
}

func truncate(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxCell {
		return string(r[:maxCell-1]) + "…"
	}
	return s
}
