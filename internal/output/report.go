// Package output renders metric history, trends, insights and suggestions for
// the terminal.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ethpandaops/devmetrics/internal/cache"
	"github.com/ethpandaops/devmetrics/internal/feedback"
	"github.com/ethpandaops/devmetrics/internal/insight"
	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/ethpandaops/devmetrics/internal/perf"
	"github.com/olekukonko/tablewriter"
)

// Reporter writes human-friendly reports
type Reporter interface {
	PrintSamples(samples []metrics.Sample)
	PrintTrends(trends map[string]metrics.TrendStats)
	PrintInsights(insights []insight.Insight)
	PrintSuggestions(suggestions []feedback.Suggestion)
	PrintTimings(stats map[string]perf.OpStats)
	PrintCacheStats(name string, stats cache.Stats)
}

type reporter struct {
	writer   io.Writer
	renderer Renderer
	colors   *ColorHelper
}

// NewReporter creates a reporter writing to writer
func NewReporter(writer io.Writer, renderer Renderer) Reporter {
	return &reporter{
		writer:   writer,
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

func (r *reporter) PrintSamples(samples []metrics.Sample) {
	if len(samples) == 0 {
		fmt.Fprintln(r.writer, r.colors.Muted("No samples recorded"))
		return
	}

	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{s.Timestamp, s.Name, Number(s.Value), formatMetadata(s.Metadata)})
	}

	r.renderer.RenderToWriter(r.writer, []string{"Timestamp", "Metric", "Value", "Metadata"}, rows)
}

func (r *reporter) PrintTrends(trends map[string]metrics.TrendStats) {
	if len(trends) == 0 {
		fmt.Fprintln(r.writer, r.colors.Muted("No metrics recorded"))
		return
	}

	names := make([]string, 0, len(trends))
	for name := range trends {
		names = append(names, name)
	}

	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		t := trends[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", t.Count),
			fmt.Sprintf("%.2f", t.Mean),
			fmt.Sprintf("%.2f", t.Median),
			fmt.Sprintf("%.2f", t.Min),
			fmt.Sprintf("%.2f", t.Max),
			r.colors.FormatTrend(t.TrendDirection),
		})
	}

	r.renderer.RenderToWriter(r.writer, []string{"Metric", "Count", "Mean", "Median", "Min", "Max", "Trend"}, rows,
		WithColumnAlignment(numericColumns(7, 1, 6)))
}

func (r *reporter) PrintInsights(insights []insight.Insight) {
	if len(insights) == 0 {
		fmt.Fprintln(r.writer, r.colors.Success("✓ No issues detected"))
		return
	}

	rows := make([][]string, 0, len(insights))
	for _, i := range insights {
		rows = append(rows, []string{
			string(i.Category),
			i.Description,
			r.colors.FormatScore(i.Confidence),
			i.SuggestedAction,
		})
	}

	r.renderer.RenderToWriter(r.writer, []string{"Category", "Insight", "Confidence", "Suggested Action"}, rows)
}

func (r *reporter) PrintSuggestions(suggestions []feedback.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(r.writer, r.colors.Muted("No suggestions above the priority threshold"))
		return
	}

	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{
			r.colors.FormatScore(s.Priority),
			s.Category,
			s.Description,
			s.Action,
		})
	}

	r.renderer.RenderToWriter(r.writer, []string{"Priority", "Category", "Description", "Action"}, rows)
}

func (r *reporter) PrintTimings(stats map[string]perf.OpStats) {
	if len(stats) == 0 {
		return
	}

	ops := make([]string, 0, len(stats))
	for op := range stats {
		ops = append(ops, op)
	}

	sort.Strings(ops)

	fmt.Fprintln(r.writer, r.colors.Header("Timings"))

	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		s := stats[op]
		rows = append(rows, []string{
			op,
			fmt.Sprintf("%.0f", s.Count),
			Seconds(s.Avg),
			Seconds(s.Min),
			Seconds(s.Max),
			Seconds(s.Total),
		})
	}

	r.renderer.RenderToWriter(r.writer, []string{"Operation", "Calls", "Avg", "Min", "Max", "Total"}, rows,
		WithColumnAlignment(numericColumns(6, 1, 6)))
}

func (r *reporter) PrintCacheStats(name string, stats cache.Stats) {
	fmt.Fprintf(r.writer, "%s %s hits=%d misses=%d evictions=%d size=%d/%d hit_rate=%s\n",
		r.colors.Header("Cache"),
		name,
		stats.Hits,
		stats.Misses,
		stats.Evictions,
		stats.Size,
		stats.MaxSize,
		r.colors.FormatHitRate(stats.HitRate()),
	)
}

// numericColumns left-aligns n columns except [from, to), which are right-aligned.
func numericColumns(n, from, to int) []int {
	alignment := make([]int, n)
	for i := range alignment {
		alignment[i] = tablewriter.ALIGN_LEFT
		if i >= from && i < to {
			alignment[i] = tablewriter.ALIGN_RIGHT
		}
	}

	return alignment
}

func formatMetadata(md metrics.Metadata) string {
	keys := md.Keys()
	if len(keys) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := md.Get(k)
		parts = append(parts, k+"="+v.String())
	}

	return strings.Join(parts, " ")
}

// Compile-time interface compliance check
var _ Reporter = (*reporter)(nil)
