package handler

import (
	"fmt"
	"strings"

	"wordlens/internal/domain"

	"golang.org/x/net/html"
	tele "gopkg.in/telebot.v3"
)

const (
	// maxPanelText keeps panel messages under Telegram's 4096 character limit
	maxPanelText = 3800
	chipsPerRow  = 3
	// maxChipWord keeps chip callback data within Telegram's 64 byte limit
	maxChipWord = 48
)

// Inline keyboard buttons
var (
	btnPrev = tele.Btn{
		Unique: "prev",
		Text:   "◀️ Prev",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "Next ▶️",
	}
	btnClickable = tele.Btn{
		Unique: "clickable",
	}
	btnWord = tele.Btn{
		Unique: "word",
	}
)

// formatPlan renders a plan as Telegram HTML. Clickable words become
// deep links back into the bot when botUsername is known.
func formatPlan(plan domain.RenderPlan, botUsername string) string {
	var b strings.Builder

	b.WriteString("<b>" + html.EscapeString(plan.Title) + "</b>")
	if plan.Phonetic != "" {
		b.WriteString("  <i>" + html.EscapeString(plan.Phonetic) + "</i>")
	}
	b.WriteString("\n")

	if plan.Message != "" {
		prefix := ""
		if plan.IsError {
			prefix = "⚠️ "
		}
		b.WriteString("\n" + prefix + html.EscapeString(plan.Message) + "\n")
	}

	truncated := false
sections:
	for _, s := range plan.Sections {
		b.WriteString("\n<b><i>" + html.EscapeString(s.PartOfSpeech) + "</i></b>\n")
		for i, d := range s.Definitions {
			var item strings.Builder
			fmt.Fprintf(&item, "%d. %s\n", i+1, formatAnnotated(d.Text, botUsername))
			if d.HasExample() {
				item.WriteString("    <i>\"" + formatAnnotated(d.Example, botUsername) + "\"</i>\n")
			}
			if b.Len()+item.Len() > maxPanelText {
				truncated = true
				break sections
			}
			b.WriteString(item.String())
		}
	}
	if truncated {
		b.WriteString("…\n")
	}

	if !plan.IsError && plan.Word != "" {
		if len(plan.Synonyms) > 0 || len(plan.Antonyms) > 0 {
			b.WriteString("\n≈ synonyms  ≠ antonyms\n")
		}
		if plan.Carousel.Placeholder != "" {
			b.WriteString("\n🖼 " + html.EscapeString(plan.Carousel.Placeholder) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatAnnotated(text domain.AnnotatedText, botUsername string) string {
	var b strings.Builder
	for _, t := range text {
		if t.Word == "" || botUsername == "" {
			b.WriteString(html.EscapeString(t.Text))
			continue
		}
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, deepLink(botUsername, t.Word), html.EscapeString(t.Text))
	}
	return b.String()
}

// deepLink points at the bot's /start command with word as payload
func deepLink(botUsername, word string) string {
	return "https://t.me/" + botUsername + "?start=" + word
}

// loadingText is shown on the panel while a word is fetched
func loadingText(word string) string {
	return "🔎 Looking up <b>" + html.EscapeString(word) + "</b>…"
}

// planMarkup builds the chip and navigation keyboard for a plan
func planMarkup(plan domain.RenderPlan, nav domain.NavState) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	rows = append(rows, chipRows(markup, "≈ ", plan.Synonyms)...)
	rows = append(rows, chipRows(markup, "≠ ", plan.Antonyms)...)

	var navRow tele.Row
	if nav.CanGoBack {
		navRow = append(navRow, btnPrev)
	}
	toggle := btnClickable
	toggle.Text = "🔗 Links: off"
	if nav.Clickable {
		toggle.Text = "🔗 Links: on"
	}
	navRow = append(navRow, toggle)
	if nav.CanGoForward {
		navRow = append(navRow, btnNext)
	}
	rows = append(rows, navRow)

	markup.Inline(rows...)
	return markup
}

func chipRows(markup *tele.ReplyMarkup, label string, words []string) []tele.Row {
	var rows []tele.Row
	var row tele.Row
	for _, w := range words {
		if len(w) > maxChipWord {
			continue
		}
		row = append(row, markup.Data(label+w, btnWord.Unique, w))
		if len(row) == chipsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
