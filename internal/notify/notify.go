// Package notify sequences one full notification pass: load subscribers,
// locate recently modified posts, render each into an HTML email, and send
// it through the configured delivery provider.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shineum/blog-notify/internal/config"
	"github.com/shineum/blog-notify/internal/email"
	"github.com/shineum/blog-notify/internal/post"
	"github.com/shineum/blog-notify/internal/provider"
	"github.com/shineum/blog-notify/internal/render"
	"github.com/shineum/blog-notify/internal/subscriber"
)

// ErrNoSubscribers is returned when the subscriber list is empty. The run
// stops before any post scan or network activity takes place.
var ErrNoSubscribers = errors.New("no subscribers configured")

// Run executes one notification pass. Per-post render or send failures are
// logged and do not abort the remaining posts, and they do not surface as an
// error from Run: a pass that reached the sending stage always completes.
// Nothing is persisted between runs, so a second pass inside the same time
// window sends the same posts again.
func Run(ctx context.Context, cfg *config.Config, prov provider.Provider) error {
	subs := subscriber.Load(cfg.Subscribers.File)
	if len(subs) == 0 {
		return ErrNoSubscribers
	}
	slog.Info("loaded subscriber list", "count", len(subs), "file", cfg.Subscribers.File)

	slog.Info("scanning for recent posts", "dir", cfg.Posts.Dir, "window_hours", cfg.Posts.WindowHours)
	posts := post.Locate(cfg.Posts.Dir, time.Duration(cfg.Posts.WindowHours)*time.Hour)
	if len(posts) == 0 {
		slog.Info("no new posts found, nothing to send")
		return nil
	}

	for _, p := range posts {
		slog.Info("found post", "title", p.Meta.DisplayTitle(), "path", p.SourcePath)
	}

	sent, failed := 0, 0
	for _, p := range posts {
		title := p.Meta.DisplayTitle()

		mail, err := render.Render(p, cfg.Site.URL)
		if err != nil {
			slog.Error("failed to render post", "title", title, "error", err)
			failed++
			continue
		}

		msg := &email.Message{
			From:     senderAddress(cfg),
			To:       subs,
			Subject:  mail.Subject,
			HTMLBody: mail.HTMLBody,
		}

		if err := prov.Send(ctx, msg); err != nil {
			slog.Error("failed to send email", "title", title, "provider", prov.Name(), "error", err)
			failed++
			continue
		}

		slog.Info("email sent", "title", title, "recipients", len(subs))
		sent++
	}

	slog.Info("email sending completed", "sent", sent, "failed", failed)
	return nil
}

// senderAddress picks the From address matching the active provider.
func senderAddress(cfg *config.Config) string {
	switch cfg.Provider {
	case "ses":
		return cfg.SES.Sender
	case "graph":
		return cfg.Graph.Sender
	default:
		return cfg.SMTP.From
	}
}
