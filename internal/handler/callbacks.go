package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// splitCallback resolves the button unique of a callback. When telebot did
// not match one, the cleaned data may still carry it as "unique|payload".
func splitCallback(unique, data string) (string, string) {
	if unique != "" {
		return unique, data
	}
	unique, payload, found := strings.Cut(data, "|")
	if !found {
		return "", data
	}
	return unique, payload
}

// respond acknowledges a callback, logging rather than failing on error
func (h *Handler) respond(c tele.Context, text string) error {
	var err error
	if text == "" {
		err = c.Respond()
	} else {
		err = c.Respond(&tele.CallbackResponse{Text: text})
	}
	if err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return nil
}

// handlePrev re-displays the previous word
func (h *Handler) handlePrev(c tele.Context) error {
	session, presenter := h.Session(c.Chat().ID)
	presenter.Attach(c.Message())
	if err := h.respond(c, ""); err != nil {
		return err
	}
	session.Back(h.ctx)
	return nil
}

// handleNext re-displays the next word
func (h *Handler) handleNext(c tele.Context) error {
	session, presenter := h.Session(c.Chat().ID)
	presenter.Attach(c.Message())
	if err := h.respond(c, ""); err != nil {
		return err
	}
	session.Forward(h.ctx)
	return nil
}

// handleToggle flips clickable links on the current panel
func (h *Handler) handleToggle(c tele.Context) error {
	session, presenter := h.Session(c.Chat().ID)
	presenter.Attach(c.Message())

	text := "Links on"
	if session.Nav().Clickable {
		text = "Links off"
	}
	if err := h.respond(c, text); err != nil {
		return err
	}
	session.ToggleClickable(h.ctx)
	return nil
}

// handleWord searches a synonym or antonym chip
func (h *Handler) handleWord(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}
	word := cleanCallbackData(callback.Data)

	session, presenter := h.Session(c.Chat().ID)
	presenter.Attach(c.Message())
	if err := h.respond(c, ""); err != nil {
		return err
	}

	if !session.Click(h.ctx, word) {
		h.logger.Debug("Chip click ignored",
			zap.Int64("chat_id", c.Chat().ID),
			zap.String("word", word),
		)
	}
	return nil
}

// handleCallback handles callback queries the button handlers did not match
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	unique, data := splitCallback(callback.Unique, data)
	callback.Data = data

	switch unique {
	case btnPrev.Unique:
		return h.handlePrev(c)
	case btnNext.Unique:
		return h.handleNext(c)
	case btnClickable.Unique:
		return h.handleToggle(c)
	case btnWord.Unique:
		return h.handleWord(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return h.respond(c, "")
}
