package bot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"newsvol/internal/domain"
	"newsvol/internal/render"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"
)

const (
	maxMessageLen    = 4000
	maxListedMatches = 5
	analyzeTimeout   = 90 * time.Second
)

// Analyzer runs one combined analysis.
type Analyzer interface {
	Analyze(ctx context.Context, p domain.AnalysisParams) (domain.Analysis, error)
}

// Bot answers /analyze, /models and /ping.
type Bot struct {
	analyzer Analyzer
	defaults func() domain.AnalysisParams
	log      zerolog.Logger
}

func New(analyzer Analyzer, defaults func() domain.AnalysisParams, log zerolog.Logger) *Bot {
	return &Bot{
		analyzer: analyzer,
		defaults: defaults,
		log:      log.With().Str("component", "telegram").Logger(),
	}
}

// Start connects with token and begins long polling in the background. An
// empty token leaves the bot disabled.
func (b *Bot) Start(token string) (*tele.Bot, error) {
	if token == "" {
		b.log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	tb.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	tb.Handle("/models", func(c tele.Context) error {
		return c.Send(modelsReply())
	})
	tb.Handle("/analyze", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		_ = c.Notify(tele.Typing)
		return c.Send(b.analyzeReply(ctx, c.Args()))
	})

	b.log.Info().Msg("Telegram bot started")
	go tb.Start()
	return tb, nil
}

func modelsReply() string {
	var sb strings.Builder
	sb.WriteString("Volatility models:\n")
	for _, kind := range domain.SupportedModels {
		fmt.Fprintf(&sb, "- %s: %s\n", kind, kind.Label())
	}
	sb.WriteString("\nUsage: /analyze [start end [model]]")
	return sb.String()
}

const analyzeUsage = "Usage: /analyze [YYYY-MM-DD YYYY-MM-DD [model]]"

func (b *Bot) analyzeReply(ctx context.Context, args []string) string {
	p, err := b.parseArgs(args)
	if err != nil {
		return err.Error() + "\n" + analyzeUsage
	}

	analysis, err := b.analyzer.Analyze(ctx, p)
	if err != nil {
		b.log.Warn().Err(err).Strs("args", args).Msg("analyze command failed")
		return "Error: " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString(render.Summary(analysis))
	matches := analysis.Duplicates.Matches
	if len(matches) > maxListedMatches {
		sb.WriteString("\n")
		sb.WriteString(render.FormatMatches(matches[:maxListedMatches]))
		fmt.Fprintf(&sb, "\n... and %d more", len(matches)-maxListedMatches)
	} else {
		sb.WriteString("\n")
		sb.WriteString(render.FormatMatches(matches))
	}
	return truncate(sb.String(), maxMessageLen)
}

func (b *Bot) parseArgs(args []string) (domain.AnalysisParams, error) {
	p := b.defaults()
	switch len(args) {
	case 0:
		return p, nil
	case 2, 3:
	default:
		return p, fmt.Errorf("expected 0, 2 or 3 arguments, got %d", len(args))
	}

	start, err := time.Parse(domain.DateLayout, args[0])
	if err != nil {
		return p, fmt.Errorf("invalid start date %q", args[0])
	}
	end, err := time.Parse(domain.DateLayout, args[1])
	if err != nil {
		return p, fmt.Errorf("invalid end date %q", args[1])
	}
	p.Start, p.End = start, end
	if len(args) == 3 {
		p.Model.Kind = domain.ParseModelKind(args[2])
	}
	return p, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return strings.TrimRight(cut, "\n") + "\n…"
}
