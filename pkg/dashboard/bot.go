package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"weatherpaper/pkg/device/virtual"
	"weatherpaper/pkg/journal"
)

func NewBot(token string, d *Dashboard, logger *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
		OnError: func(err error, _ tele.Context) {
			logger.With(zap.Error(err)).Warn("bot error")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{b: b, d: d}, nil
}

// Bot is an optional Telegram remote for the refresh loop.
type Bot struct {
	b *tele.Bot
	d *Dashboard
}

func (b *Bot) handleBase() {
	params := b.d.Params()

	b.b.Handle("/refresh", func(context tele.Context) error {
		params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/pause", func(context tele.Context) error {
		params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/status", func(context tele.Context) error {
		return context.Reply(statusText(params, b.d.History().Curr()))
	})
}

func (b *Bot) handleAction() {
	b.b.Handle("/preview", func(context tele.Context) error {
		f := b.d.History().Curr()
		if f == nil {
			return context.Reply("No frame shown yet")
		}

		bs, err := virtual.PNG(f.Canvas, 1)
		if err != nil {
			return context.Reply(fmt.Sprintf("preview failed: %s", err))
		}

		return context.Reply(&tele.Photo{
			File:    tele.FromReader(bytes.NewReader(bs)),
			Caption: f.At.Format(time.DateTime),
		})
	})

	b.b.Handle("/logs", func(c tele.Context) error {
		entries, err := b.d.Journal().Recent(context.Background(), 10)
		if err != nil {
			return c.Reply(fmt.Sprintf("logs failed: %s", err))
		}
		return c.Reply(logsText(entries, b.d.History().Logs()))
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleAction()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}

func statusText(p *Params, curr *Frame) string {
	lines := []string{
		fmt.Sprintf("Paused: %t", p.Paused()),
	}
	if next := p.Next(); !next.IsZero() {
		lines = append(lines, fmt.Sprintf("Next: %s", next.Format(time.DateTime)))
	}
	if curr == nil {
		return strings.Join(append(lines, "Last: none"), "\n")
	}

	lines = append(lines,
		fmt.Sprintf("Last: %s", curr.At.Format(time.DateTime)),
		fmt.Sprintf("Source: %s", curr.Source),
		fmt.Sprintf("Samples: %d", curr.Samples),
	)
	if curr.Err != nil {
		lines = append(lines, fmt.Sprintf("Error: %s", curr.Err))
	}
	return strings.Join(lines, "\n")
}

// logsText prefers the journal and falls back to the in-memory history when
// no journal is kept.
func logsText(entries []journal.Entry, frames []*Frame) string {
	if len(entries) == 0 {
		entries = lo.Map(lo.Reverse(frames), func(f *Frame, _ int) journal.Entry {
			e := journal.Entry{At: f.At, Source: f.Source, Samples: f.Samples}
			if f.Err != nil {
				e.Err = f.Err.Error()
			}
			return e
		})
	}
	if len(entries) == 0 {
		return "No logs"
	}

	lines := lo.Map(entries, func(e journal.Entry, _ int) string {
		return fmt.Sprintf("%s %s %s", e.At.Format(time.DateTime), e.Source,
			lo.Ternary(e.OK(), fmt.Sprintf("%d samples", e.Samples), "failed: "+e.Err))
	})
	return strings.Join(lines, "\n")
}
