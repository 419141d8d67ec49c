// Package view renders RenderPlans as HTML fragments for the web surface.
package view

import (
	"fmt"
	"io"
	"strconv"

	"wordlens/internal/domain"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the definition panel and image carousel for plan
func Render(w io.Writer, plan domain.RenderPlan) error {
	root := element(atom.Div, "word-panel")
	if plan.Clickable {
		root.Attr = append(root.Attr, html.Attribute{Key: "data-clickable", Val: "true"})
	}

	root.AppendChild(textElement(atom.H2, "word", plan.Title))
	root.AppendChild(definitionContent(plan))
	root.AppendChild(carousel(plan.Carousel))

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func definitionContent(plan domain.RenderPlan) *html.Node {
	content := element(atom.Div, "definition-content")

	if plan.Message != "" {
		content.AppendChild(textElement(atom.P, "text-muted", plan.Message))
		return content
	}

	if plan.Phonetic != "" {
		content.AppendChild(textElement(atom.Div, "phonetic", plan.Phonetic))
	}

	for _, s := range plan.Sections {
		content.AppendChild(textElement(atom.Div, "part-of-speech", s.PartOfSpeech))
		for i, d := range s.Definitions {
			item := element(atom.Div, "definition-item")
			p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
			p.AppendChild(text(strconv.Itoa(i+1) + ". "))
			appendAnnotated(p, d.Text)
			item.AppendChild(p)
			if d.HasExample() {
				ex := element(atom.Div, "example")
				ex.AppendChild(text(`"`))
				appendAnnotated(ex, d.Example)
				ex.AppendChild(text(`"`))
				item.AppendChild(ex)
			}
			content.AppendChild(item)
		}
	}

	if len(plan.Synonyms) > 0 {
		content.AppendChild(chips("synonyms-section", "Synonyms", "synonym-chip", plan.Synonyms))
	}
	if len(plan.Antonyms) > 0 {
		content.AppendChild(chips("antonyms-section", "Antonyms", "antonym-chip", plan.Antonyms))
	}
	return content
}

func appendAnnotated(parent *html.Node, a domain.AnnotatedText) {
	for _, t := range a {
		if t.Word == "" {
			parent.AppendChild(text(t.Text))
			continue
		}
		span := textElement(atom.Span, "clickable-word", t.Text)
		span.Attr = append(span.Attr, html.Attribute{Key: "data-word", Val: t.Word})
		parent.AppendChild(span)
	}
}

func chips(sectionClass, label, chipClass string, words []string) *html.Node {
	section := element(atom.Div, sectionClass)
	section.AppendChild(textElement(atom.Div, "part-of-speech", label))
	for _, w := range words {
		chip := textElement(atom.Span, chipClass, w)
		chip.Attr = append(chip.Attr, html.Attribute{Key: "data-word", Val: w})
		section.AppendChild(chip)
	}
	return section
}

func carousel(c domain.CarouselPlan) *html.Node {
	inner := element(atom.Div, "carousel-inner")

	if len(c.Items) == 0 {
		item := element(atom.Div, "carousel-item active")
		item.AppendChild(textElement(atom.P, "text-muted", c.Placeholder))
		inner.AppendChild(item)
		return inner
	}

	for i, it := range c.Items {
		class := "carousel-item"
		if i == 0 {
			class += " active"
		}
		item := element(atom.Div, class)
		img := &html.Node{
			Type:     html.ElementNode,
			Data:     "img",
			DataAtom: atom.Img,
			Attr: []html.Attribute{
				{Key: "src", Val: it.URL},
				{Key: "alt", Val: it.Alt},
				{Key: "class", Val: "d-block w-100"},
				{Key: "loading", Val: string(it.Loading)},
				{Key: "fetchpriority", Val: string(it.Priority)},
			},
		}
		item.AppendChild(img)
		inner.AppendChild(item)
	}
	return inner
}

func element(a atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

func textElement(a atom.Atom, class, s string) *html.Node {
	n := element(a, class)
	n.AppendChild(text(s))
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
