package output

import (
	"fmt"

	"github.com/fatih/color"
)

// ColorHelper colors report output when stdout is a terminal
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a color helper honoring color.NoColor at creation time.
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

func (c *ColorHelper) paint(text string, attrs ...color.Attribute) string {
	if !c.enabled {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// Success returns green text
func (c *ColorHelper) Success(text string) string { return c.paint(text, color.FgGreen) }

// Failure returns red text
func (c *ColorHelper) Failure(text string) string { return c.paint(text, color.FgRed) }

// Warning returns yellow text
func (c *ColorHelper) Warning(text string) string { return c.paint(text, color.FgYellow) }

// Info returns cyan text
func (c *ColorHelper) Info(text string) string { return c.paint(text, color.FgCyan) }

// Muted returns gray text
func (c *ColorHelper) Muted(text string) string { return c.paint(text, color.FgHiBlack) }

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string { return c.paint(text, color.FgCyan, color.Bold) }

// FormatScore colors a confidence or priority in [0, 1].
func (c *ColorHelper) FormatScore(value float64) string {
	text := fmt.Sprintf("%.2f", value)
	if value >= 0.9 {
		return c.Failure(text)
	}
	if value >= 0.8 {
		return c.Warning(text)
	}
	return c.Info(text)
}

// FormatTrend renders a trend direction with an arrow. Whether rising is good
// depends on the metric, so direction only picks the arrow.
func (c *ColorHelper) FormatTrend(direction float64) string {
	text := fmt.Sprintf("%+.2f", direction)
	switch {
	case direction > 0:
		return c.Warning("↑ " + text)
	case direction < 0:
		return c.Info("↓ " + text)
	default:
		return c.Muted("→ " + text)
	}
}

// FormatHitRate returns a colored cache hit rate percentage.
func (c *ColorHelper) FormatHitRate(percent float64) string {
	text := fmt.Sprintf("%.1f%%", percent)
	if percent >= 80.0 {
		return c.Success(text)
	}
	if percent >= 50.0 {
		return c.Warning(text)
	}
	return c.Failure(text)
}
