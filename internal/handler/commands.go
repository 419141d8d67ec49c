package handler

import (
	"strings"

	"wordlens/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const welcomeText = "👋 Send me an English word to see its definitions, related words and pictures.\n\n" +
	"Use ◀️ and ▶️ to move through the words you looked up, and turn links on to make every word in a definition tappable."

// handleStart handles /start, with an optional deep-linked word as payload
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID
	session, presenter := h.Session(chatID)

	payload := ""
	if msg := c.Message(); msg != nil {
		payload = cleanCallbackData(msg.Payload)
	}

	if word := service.CleanClickTarget(payload); word != "" {
		h.logger.Info("Deep link opened",
			zap.Int64("chat_id", chatID),
			zap.String("word", word),
		)
		presenter.Detach()
		session.Click(h.ctx, word)
		return nil
	}

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	if err := c.Send(welcomeText); err != nil {
		return err
	}
	presenter.Detach()
	session.Input("")
	return nil
}

// handleClear handles /clear by emptying the search
func (h *Handler) handleClear(c tele.Context) error {
	session, presenter := h.Session(c.Chat().ID)
	presenter.Detach()
	session.Input("")
	return nil
}

// handleText feeds every plain message into the session's search input
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	session, presenter := h.Session(c.Chat().ID)
	presenter.Detach()
	session.Input(text)
	return nil
}
