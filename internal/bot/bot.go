package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ppiankov/moodbot/internal/classify"
	"github.com/ppiankov/moodbot/internal/model"
	"github.com/ppiankov/moodbot/internal/pipeline"
	"github.com/ppiankov/moodbot/internal/stats"
	"github.com/ppiankov/moodbot/internal/store"
	"github.com/ppiankov/moodbot/internal/worker"
)

// Bot is the Telegram transport. It receives (user, text) submissions, runs
// them through the pipeline and sends back formatted replies. Updates are
// processed through a worker pool so classifier latency for one user never
// stalls the update loop.
type Bot struct {
	api     *tgbotapi.BotAPI
	pipe    *pipeline.Pipeline
	pool    *worker.Pool
	limiter *worker.Limiter
	log     *slog.Logger
}

// New creates a Bot connected to the Telegram API
func New(cfg model.BotConfig, workers int, pipe *pipeline.Pipeline, logger *slog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connect to Telegram: %w", err)
	}

	return &Bot{
		api:     api,
		pipe:    pipe,
		pool:    worker.NewPool(workers),
		limiter: worker.NewLimiter(cfg.PerUserRate, cfg.Burst),
		log:     logger,
	}, nil
}

// Run polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot started", "username", b.api.Self.UserName)

	b.pool.Start()
	go b.drainResults()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.pool.Shutdown()
			b.log.Info("bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.pool.Shutdown()
				return nil
			}
			if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
				continue
			}
			b.pool.Submit(&updateJob{bot: b, msg: update.Message})
		}
	}
}

// drainResults logs job failures; replies to users are sent by the jobs
// themselves.
func (b *Bot) drainResults() {
	for res := range b.pool.Results() {
		if err := res.Err(); err != nil {
			b.log.Error("update handling failed", "error", err)
		}
	}
}

// updateJob processes one inbound message on a pool worker.
type updateJob struct {
	bot *Bot
	msg *tgbotapi.Message
}

type updateResult struct {
	err error
}

func (r *updateResult) Err() error { return r.err }

func (j *updateJob) Execute(ctx context.Context) worker.Result {
	return &updateResult{err: j.bot.handle(ctx, j.msg)}
}

// handle routes one message to the right flow and sends exactly one reply.
func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.reply(msg.Chat.ID, Greeting(), false)
	case "stats":
		return b.handleStats(ctx, msg)
	case "":
		return b.handleText(ctx, msg)
	default:
		return b.reply(msg.Chat.ID, "Unknown command. Send any text and I will analyze its mood, or use /stats.", false)
	}
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	report, err := b.pipe.Stats(ctx)
	switch {
	case errors.Is(err, stats.ErrNoData):
		return b.reply(msg.Chat.ID, "No statistics yet, nobody has written anything.", false)
	case errors.Is(err, store.ErrStorageUnavailable):
		b.log.Error("stats failed", "error", err)
		return b.reply(msg.Chat.ID, "Something went wrong with the statistics, try again later.", false)
	case err != nil:
		return err
	}

	return b.reply(msg.Chat.ID, FormatStats(report), false)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	userID := strconv.FormatInt(msg.From.ID, 10)

	if !b.limiter.Allow(userID) {
		return b.reply(msg.Chat.ID, "Easy there! Give me a second between messages.", false)
	}

	ev, err := b.pipe.Analyze(ctx, userID, msg.Text)
	switch {
	case errors.Is(err, classify.ErrClassificationUnavailable):
		b.log.Warn("classification unavailable", "user_id", userID, "error", err)
		return b.reply(msg.Chat.ID, "Could not analyze the text, try again later.", false)
	case errors.Is(err, store.ErrStorageUnavailable):
		b.log.Error("append failed", "user_id", userID, "error", err)
		return b.reply(msg.Chat.ID, "Something went wrong on my side, try again later.", false)
	case err != nil:
		return err
	}

	return b.reply(msg.Chat.ID, FormatAnalysis(ev), true)
}

func (b *Bot) reply(chatID int64, text string, markdown bool) error {
	out := tgbotapi.NewMessage(chatID, text)
	if markdown {
		out.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := b.api.Send(out); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
