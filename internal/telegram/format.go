package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"recipebox/internal/clipper"
	"recipebox/internal/metrics"
	"recipebox/internal/shopping"
	"recipebox/internal/suggest"
)

const helpText = `🍳 *recipebox*

• Send a recipe URL to import it.
• ` + "`/list <id> <id> ...`" + ` builds a shopping list.
• ` + "`/suggest <request>`" + ` proposes recipes.
• ` + "`/metrics`" + ` shows usage (admin only).`

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escape quotes user supplied text for legacy Markdown.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func formatQuantity(q float64, unit string) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}

func formatError(prefix string, err error) string {
	safeErr := strings.ReplaceAll(friendlyError(err), "`", "'")
	return fmt.Sprintf("❌ *%s:*\n```\n%s\n```", prefix, safeErr)
}

func formatClipResult(res clipper.Result) string {
	var sb strings.Builder
	sb.WriteString("✅ *Recipe Saved!*\n\n")
	fmt.Fprintf(&sb, "*Title:* %s\n", escape(res.Recipe.Title))
	fmt.Fprintf(&sb, "*ID:* `%s`\n", res.Recipe.ID)
	fmt.Fprintf(&sb, "*Ingredients:* %d\n", len(res.Recipe.Ingredients))
	if res.Post != nil && res.Post.URL != "" {
		fmt.Fprintf(&sb, "*Blog:* %s\n", res.Post.URL)
	}
	return sb.String()
}

func formatShoppingList(list shopping.ShoppingList) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 *%s*\n\n", escape(list.Name))
	if len(list.ConsolidatedItems) == 0 {
		sb.WriteString("_Nothing to buy_\n")
	}
	for _, item := range list.ConsolidatedItems {
		fmt.Fprintf(&sb, "• %s: %s", escape(item.Ingredient), formatQuantity(item.TotalQuantity, escape(item.Unit)))
		if n := len(item.Recipes); n > 1 {
			fmt.Fprintf(&sb, " _(%d recipes)_", n)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nList ID: `%s`", list.ID)
	return sb.String()
}

func formatSuggestions(suggestions []suggest.Suggestion) string {
	if len(suggestions) == 0 {
		return "🤷 No matching recipes found."
	}

	var sb strings.Builder
	sb.WriteString("🧑‍🍳 *Suggestions*\n\n")
	for i, s := range suggestions {
		fmt.Fprintf(&sb, "%d. *%s* (`%s`)\n", i+1, escape(s.Title), s.RecipeID)
		if s.Reason != "" {
			fmt.Fprintf(&sb, "_%s_\n", escape(s.Reason))
		}
		if len(s.MissingIngredients) > 0 {
			fmt.Fprintf(&sb, "Missing: %s\n", escape(strings.Join(s.MissingIngredients, ", ")))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatMetricsReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize)
	return sb.String()
}
