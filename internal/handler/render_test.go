package handler

import (
	"strings"
	"testing"

	"wordlens/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() domain.RenderPlan {
	return domain.RenderPlan{
		Word:     "cat",
		Title:    "Cat",
		Phonetic: "/kæt/",
		Sections: []domain.SectionPlan{
			{
				PartOfSpeech: "noun",
				Definitions: []domain.DefinitionPlan{
					{
						Text:    domain.AnnotatedText{{Text: "a "}, {Text: "feline", Word: "feline"}, {Text: " <pet>"}},
						Example: domain.AnnotatedText{{Text: "the cat sat"}},
					},
				},
			},
		},
		Synonyms: []string{"kitty", "feline", "puss", "tom"},
		Antonyms: []string{"dog"},
		Carousel: domain.CarouselPlan{Items: []domain.CarouselItem{{URL: "u1"}}},
	}
}

func TestFormatPlan(t *testing.T) {
	text := formatPlan(testPlan(), "lens_bot")

	assert.Contains(t, text, "<b>Cat</b>  <i>/kæt/</i>")
	assert.Contains(t, text, "<b><i>noun</i></b>")
	assert.Contains(t, text, `1. a <a href="https://t.me/lens_bot?start=feline">feline</a> &lt;pet&gt;`)
	assert.Contains(t, text, `<i>"the cat sat"</i>`)
	assert.NotContains(t, text, "🖼")
}

func TestFormatPlan_WithoutUsernameHasNoLinks(t *testing.T) {
	text := formatPlan(testPlan(), "")

	assert.NotContains(t, text, "<a ")
	assert.Contains(t, text, "1. a feline &lt;pet&gt;")
}

func TestFormatPlan_Error(t *testing.T) {
	plan := domain.RenderPlan{
		Word:    "xyzzy",
		Title:   "Word",
		Message: `No definition found for "xyzzy"`,
		IsError: true,
	}

	text := formatPlan(plan, "lens_bot")

	assert.Equal(t, "<b>Word</b>\n\n⚠️ No definition found for &#34;xyzzy&#34;", text)
}

func TestFormatPlan_ImagePlaceholder(t *testing.T) {
	plan := testPlan()
	plan.Carousel = domain.CarouselPlan{Placeholder: `No images available for "cat"`}

	text := formatPlan(plan, "")

	assert.Contains(t, text, "🖼 No images available for &#34;cat&#34;")
}

func TestFormatPlan_Truncates(t *testing.T) {
	plan := testPlan()
	long := domain.AnnotatedText{{Text: strings.Repeat("x", 500)}}
	for i := 0; i < 20; i++ {
		plan.Sections[0].Definitions = append(plan.Sections[0].Definitions, domain.DefinitionPlan{Text: long})
	}

	text := formatPlan(plan, "")

	assert.LessOrEqual(t, len(text), maxPanelText+100)
	assert.Contains(t, text, "…")
}

func TestPlanMarkup(t *testing.T) {
	markup := planMarkup(testPlan(), domain.NavState{CanGoBack: true, Clickable: true})

	rows := markup.InlineKeyboard
	require.Len(t, rows, 4)

	assert.Len(t, rows[0], chipsPerRow)
	assert.Equal(t, btnWord.Unique, rows[0][0].Unique)
	assert.Equal(t, "kitty", rows[0][0].Data)
	assert.Equal(t, "≈ kitty", rows[0][0].Text)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, "≠ dog", rows[2][0].Text)

	nav := rows[3]
	require.Len(t, nav, 2)
	assert.Equal(t, btnPrev.Unique, nav[0].Unique)
	assert.Equal(t, btnClickable.Unique, nav[1].Unique)
	assert.Equal(t, "🔗 Links: on", nav[1].Text)
}

func TestPlanMarkup_EmptyPlan(t *testing.T) {
	markup := planMarkup(domain.RenderPlan{}, domain.NavState{CanGoForward: true})

	rows := markup.InlineKeyboard
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	assert.Equal(t, "🔗 Links: off", rows[0][0].Text)
	assert.Equal(t, btnNext.Unique, rows[0][1].Unique)
}

func TestPlanMarkup_SkipsLongChips(t *testing.T) {
	plan := domain.RenderPlan{Synonyms: []string{strings.Repeat("a", maxChipWord+1), "ok"}}

	rows := planMarkup(plan, domain.NavState{}).InlineKeyboard

	require.Len(t, rows, 2)
	require.Len(t, rows[0], 1)
	assert.Equal(t, "ok", rows[0][0].Data)
}
