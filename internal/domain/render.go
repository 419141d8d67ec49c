package domain

import "strings"

// Token is one piece of annotated text. Word is set when the token is clickable
// and holds the cleaned lower-case form to search for.
type Token struct {
	Text string `json:"text"`
	Word string `json:"word,omitempty"`
}

// AnnotatedText is text split into tokens, some of them clickable
type AnnotatedText []Token

// PlainText joins the tokens back together
func (a AnnotatedText) PlainText() string {
	var b strings.Builder
	for _, t := range a {
		b.WriteString(t.Text)
	}
	return b.String()
}

// ClickableWords lists the search targets in order of appearance
func (a AnnotatedText) ClickableWords() []string {
	var words []string
	for _, t := range a {
		if t.Word != "" {
			words = append(words, t.Word)
		}
	}
	return words
}

// ImagePriority mirrors the browser fetch priority hint
type ImagePriority string

const (
	PriorityHigh ImagePriority = "high"
	PriorityLow  ImagePriority = "low"
)

// ImageLoading mirrors the browser loading attribute
type ImageLoading string

const (
	LoadingEager ImageLoading = "eager"
	LoadingLazy  ImageLoading = "lazy"
)

// RenderPlan describes everything the presentation layer shows for one search.
// It carries no behaviour; adapters apply it as-is.
type RenderPlan struct {
	Word      string        `json:"word"`
	Title     string        `json:"title"`
	Phonetic  string        `json:"phonetic,omitempty"`
	Sections  []SectionPlan `json:"sections"`
	Synonyms  []string      `json:"synonyms"`
	Antonyms  []string      `json:"antonyms"`
	Carousel  CarouselPlan  `json:"carousel"`
	Message   string        `json:"message,omitempty"`
	IsError   bool          `json:"isError"`
	Clickable bool          `json:"clickable"`
}

// SectionPlan is one part-of-speech block
type SectionPlan struct {
	PartOfSpeech string           `json:"partOfSpeech"`
	Definitions  []DefinitionPlan `json:"definitions"`
}

// DefinitionPlan is one definition with its optional example
type DefinitionPlan struct {
	Text    AnnotatedText `json:"text"`
	Example AnnotatedText `json:"example,omitempty"`
}

// HasExample reports whether the definition carries an example
func (d DefinitionPlan) HasExample() bool {
	return len(d.Example) > 0
}

// CarouselPlan is the ordered image list, or a placeholder when empty
type CarouselPlan struct {
	Items       []CarouselItem `json:"items"`
	Placeholder string         `json:"placeholder,omitempty"`
}

// URLs returns the image URLs in display order
func (c CarouselPlan) URLs() []string {
	urls := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		urls = append(urls, it.URL)
	}
	return urls
}

// CarouselItem is a single carousel image
type CarouselItem struct {
	URL      string        `json:"url"`
	Alt      string        `json:"alt"`
	Priority ImagePriority `json:"priority"`
	Loading  ImageLoading  `json:"loading"`
}
