package view

import (
	"bytes"
	"strings"
	"testing"

	"wordlens/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, plan domain.RenderPlan) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plan))
	return buf.String()
}

func TestRender_Found(t *testing.T) {
	plan := domain.RenderPlan{
		Word:     "cat",
		Title:    "Cat",
		Phonetic: "/kæt/",
		Sections: []domain.SectionPlan{{
			PartOfSpeech: "noun",
			Definitions: []domain.DefinitionPlan{{
				Text:    domain.AnnotatedText{{Text: "a "}, {Text: "Feline", Word: "feline"}, {Text: " <pet>"}},
				Example: domain.AnnotatedText{{Text: "the cat sat"}},
			}},
		}},
		Synonyms:  []string{"kitty"},
		Antonyms:  []string{"dog"},
		Clickable: true,
		Carousel: domain.CarouselPlan{Items: []domain.CarouselItem{
			{URL: "u1", Alt: "cat", Priority: domain.PriorityHigh, Loading: domain.LoadingEager},
			{URL: "u2", Alt: "cat", Priority: domain.PriorityLow, Loading: domain.LoadingLazy},
		}},
	}

	out := render(t, plan)

	assert.Contains(t, out, `<h2 class="word">Cat</h2>`)
	assert.Contains(t, out, `<div class="phonetic">/kæt/</div>`)
	assert.Contains(t, out, `<div class="part-of-speech">noun</div>`)
	assert.Contains(t, out, `<span class="clickable-word" data-word="feline">Feline</span> &lt;pet&gt;`)
	assert.Contains(t, out, `<div class="example">&#34;the cat sat&#34;</div>`)
	assert.Contains(t, out, `<span class="synonym-chip" data-word="kitty">kitty</span>`)
	assert.Contains(t, out, `<span class="antonym-chip" data-word="dog">dog</span>`)
	assert.Contains(t, out, `<div class="carousel-item active"><img src="u1" alt="cat" class="d-block w-100" loading="eager" fetchpriority="high"/></div>`)
	assert.Contains(t, out, `loading="lazy" fetchpriority="low"`)
	assert.Equal(t, 1, strings.Count(out, "carousel-item active"))
}

func TestRender_ErrorPlan(t *testing.T) {
	plan := domain.RenderPlan{
		Title:    "Word",
		Message:  `No definition found for "xyzzy"`,
		IsError:  true,
		Carousel: domain.CarouselPlan{Placeholder: "No image available"},
	}

	out := render(t, plan)

	assert.Contains(t, out, `<p class="text-muted">No definition found for &#34;xyzzy&#34;</p>`)
	assert.Contains(t, out, `<p class="text-muted">No image available</p>`)
	assert.NotContains(t, out, "definition-item")
}

func TestRender_IsWellFormed(t *testing.T) {
	out := render(t, domain.RenderPlan{Title: "Word", Carousel: domain.CarouselPlan{Placeholder: "none"}})

	nodes, err := html.ParseFragment(strings.NewReader(out), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, nodes)
}
