package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"wordlens/internal/domain"
)

const (
	maxRelatedChips = 10

	placeholderTitle      = "Word"
	msgFetchFailure       = "Word not found or connection error occurred"
	msgEmptyState         = "Enter a word to see its definition and related images."
	placeholderNoImage    = "No image available"
	placeholderEmptyState = "Search for a word to see related images"
)

// Project turns a lookup outcome into a RenderPlan. A failed fetch or a
// dictionary miss yields an error plan.
func Project(word string, result *domain.LookupResult, err error, clickable bool) domain.RenderPlan {
	word = domain.NormalizeWord(word)

	if err != nil || result == nil {
		return errorPlan(word, msgFetchFailure, clickable)
	}
	if !result.Found() {
		return errorPlan(word, notFoundMessage(word, domain.MissError(result.Miss)), clickable)
	}

	annotate := PlainAnnotation
	if clickable {
		annotate = MarkClickable
	}

	plan := domain.RenderPlan{
		Word:      word,
		Title:     titleCase(word),
		Phonetic:  result.Definition.Phonetic,
		Synonyms:  capChips(result.Related.Synonyms),
		Antonyms:  capChips(result.Related.Antonyms),
		Carousel:  carouselPlan(word, result.Images),
		Clickable: clickable,
	}

	for _, m := range result.Definition.Meanings {
		section := domain.SectionPlan{PartOfSpeech: m.PartOfSpeech}
		for _, d := range m.Definitions {
			section.Definitions = append(section.Definitions, domain.DefinitionPlan{
				Text:    annotate(d.Text),
				Example: annotate(d.Example),
			})
		}
		plan.Sections = append(plan.Sections, section)
	}

	return plan
}

// EmptyPlan is what the view shows when there is no search
func EmptyPlan() domain.RenderPlan {
	return domain.RenderPlan{
		Title:    placeholderTitle,
		Message:  msgEmptyState,
		Carousel: domain.CarouselPlan{Placeholder: placeholderEmptyState},
	}
}

func errorPlan(word, message string, clickable bool) domain.RenderPlan {
	return domain.RenderPlan{
		Word:      word,
		Title:     placeholderTitle,
		Message:   message,
		IsError:   true,
		Clickable: clickable,
		Carousel:  domain.CarouselPlan{Placeholder: placeholderNoImage},
	}
}

func notFoundMessage(word string, reason error) string {
	if errors.Is(reason, domain.ErrWordNotFound) || errors.Is(reason, domain.ErrInvalidResultShape) {
		return fmt.Sprintf("No definition found for %q", word)
	}
	return msgFetchFailure
}

func carouselPlan(word string, urls []string) domain.CarouselPlan {
	if len(urls) == 0 {
		return domain.CarouselPlan{Placeholder: fmt.Sprintf("No images available for %q", word)}
	}

	items := make([]domain.CarouselItem, 0, len(urls))
	for i, u := range urls {
		item := domain.CarouselItem{
			URL:      u,
			Alt:      word,
			Priority: domain.PriorityLow,
			Loading:  domain.LoadingLazy,
		}
		if i == 0 {
			item.Priority = domain.PriorityHigh
			item.Loading = domain.LoadingEager
		}
		items = append(items, item)
	}
	return domain.CarouselPlan{Items: items}
}

func capChips(words []string) []string {
	if len(words) > maxRelatedChips {
		words = words[:maxRelatedChips]
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
