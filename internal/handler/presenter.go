package handler

import (
	"context"
	"strings"
	"sync"

	"wordlens/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const maxAlbumSize = 10

// Sender is the part of the bot API a presenter needs
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error)
	SendAlbum(to tele.Recipient, a tele.Album, opts ...interface{}) ([]tele.Message, error)
}

// Presenter shows a session's plans in one chat. The word panel is a single
// message edited in place; images go out as a separate album.
type Presenter struct {
	sender      Sender
	chat        tele.Recipient
	botUsername string
	logger      *zap.Logger

	mu    sync.Mutex
	panel *tele.Message
	plan  domain.RenderPlan
	nav   domain.NavState
}

// NewPresenter creates a presenter for chat
func NewPresenter(sender Sender, chat tele.Recipient, botUsername string, logger *zap.Logger) *Presenter {
	return &Presenter{
		sender:      sender,
		chat:        chat,
		botUsername: botUsername,
		logger:      logger,
	}
}

// Attach makes msg the panel to edit, typically the message a button was
// pressed on
func (p *Presenter) Attach(msg *tele.Message) {
	if msg == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panel = msg
}

// Detach makes the next render start a fresh panel message
func (p *Presenter) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panel = nil
}

func (p *Presenter) ShowLoading(ctx context.Context, word string) {
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.show(loadingText(word), planMarkup(domain.RenderPlan{}, p.nav))
}

func (p *Presenter) Render(ctx context.Context, plan domain.RenderPlan) {
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plan = plan
	p.show(formatPlan(plan, p.botUsername), planMarkup(plan, p.nav))
}

func (p *Presenter) ShowImages(ctx context.Context, word string, urls []string) {
	if ctx.Err() != nil || len(urls) == 0 {
		return
	}
	if len(urls) > maxAlbumSize {
		urls = urls[:maxAlbumSize]
	}

	var err error
	if len(urls) == 1 {
		_, err = p.sender.Send(p.chat, &tele.Photo{File: tele.FromURL(urls[0]), Caption: word})
	} else {
		album := make(tele.Album, 0, len(urls))
		for i, u := range urls {
			photo := &tele.Photo{File: tele.FromURL(u)}
			if i == 0 {
				photo.Caption = word
			}
			album = append(album, photo)
		}
		_, err = p.sender.SendAlbum(p.chat, album)
	}
	if err != nil {
		p.logger.Warn("Failed to send images",
			zap.String("word", word),
			zap.Int("count", len(urls)),
			zap.Error(err),
		)
		return
	}

	// Keep the panel below the album so it stays the latest message
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panel = nil
	p.show(formatPlan(p.plan, p.botUsername), planMarkup(p.plan, p.nav))
}

func (p *Presenter) UpdateNavigation(ctx context.Context, nav domain.NavState) {
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nav == nav {
		return
	}
	p.nav = nav
	if p.panel == nil {
		return
	}
	if _, err := p.sender.EditReplyMarkup(p.panel, planMarkup(p.plan, nav)); err != nil && !isNotModified(err) {
		p.logger.Warn("Failed to update navigation", zap.Error(err))
	}
}

// show edits the panel or, when there is none or the edit fails, sends a
// new one
func (p *Presenter) show(text string, markup *tele.ReplyMarkup) {
	opts := &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	}

	if p.panel != nil {
		msg, err := p.sender.Edit(p.panel, text, opts)
		if err == nil {
			if msg != nil {
				p.panel = msg
			}
			return
		}
		if isNotModified(err) {
			return
		}
		p.logger.Warn("Failed to edit panel, sending new", zap.Error(err))
	}

	msg, err := p.sender.Send(p.chat, text, opts)
	if err != nil {
		p.logger.Error("Failed to send panel", zap.Error(err))
		return
	}
	p.panel = msg
}

// isNotModified reports Telegram's rejection of an edit that changes nothing
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
