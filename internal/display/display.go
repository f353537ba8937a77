/*
Package display turns plans and images into things a person can read, copy or
save: text rendering for the terminal, copy/share text, PNG files from data URIs
and product photos loaded from disk.
*/
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
)

// RenderPlan writes a plan as labelled sections.
func RenderPlan(w io.Writer, plan gateway.MarketingPlan) {
	fmt.Fprintf(w, "📦 %s\n\n", plan.ProductName)

	section(w, "Caption", plan.PostCaption)
	section(w, "Hashtags", strings.Join(plan.Hashtags, " "))
	section(w, "Best time to post", plan.PostingTimeSuggestion)
	section(w, "Strategy", plan.StrategyAdvice)
	section(w, "Video script", plan.VideoScript)

	if len(plan.Sources) > 0 {
		fmt.Fprintln(w, "Sources:")
		for _, src := range plan.Sources {
			fmt.Fprintf(w, "  - %s\n", src)
		}
		fmt.Fprintln(w)
	}
}

func section(w io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(w, "%s:\n%s\n\n", title, body)
}

// CopyAllText is the caption followed by a blank line and the hashtags.
func CopyAllText(plan gateway.MarketingPlan) string {
	return plan.PostCaption + "\n\n" + strings.Join(plan.Hashtags, " ")
}

// ShareText is the text handed to a share target. It matches CopyAllText.
func ShareText(plan gateway.MarketingPlan) string {
	return CopyAllText(plan)
}

// RenderHistory writes one line per entry, newest first.
func RenderHistory(w io.Writer, items []history.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	for _, it := range items {
		mark := " "
		if it.ImageURL != "" {
			mark = "🖼"
		}
		fmt.Fprintf(w, "%s  %s  %s %s\n", it.ID, it.CreatedAt().Local().Format("2006-01-02 15:04"), mark, it.ProductName)
	}
}
