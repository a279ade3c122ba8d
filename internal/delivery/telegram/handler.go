package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/usecase"
	"github.com/obsbot/logbot/pkg/logger"
)

// BotHandler bridges Telegram updates to the log-analysis pipeline.
type BotHandler struct {
	bot      *tgbotapi.BotAPI
	analysis *usecase.LogAnalysisUseCase
	admins   map[int64]struct{}
}

func NewBotHandler(token string, admins []int64, analysis *usecase.LogAnalysisUseCase) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	adminSet := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		adminSet[id] = struct{}{}
	}

	return &BotHandler{bot: bot, analysis: analysis, admins: adminSet}, nil
}

func (h *BotHandler) GetBotUsername() string {
	return h.bot.Self.UserName
}

// Start consumes updates until ctx is done. Regular messages go
// through a bounded worker pool; commands are cheap and handled inline.
func (h *BotHandler) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	pool := newWorkerPool(h, defaultWorkerCount)
	defer pool.stop()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			if update.Message.IsCommand() {
				h.handleCommand(update.Message)
				continue
			}
			pool.submit(analysisJob{ctx: ctx, message: update.Message})
		}
	}
}

// handleMessage runs the analysis pipeline for one message and replies
// with the rendered result. No result means silence, never an error
// message.
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	msg := h.incomingMessage(message)
	if msg.Text == "" && len(msg.Attachments) == 0 {
		return
	}

	res := h.analysis.HandleMessage(ctx, msg)
	if res == nil {
		return
	}

	reply := tgbotapi.NewMessage(message.Chat.ID, renderResult(res))
	reply.ReplyToMessageID = message.MessageID
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.DisableWebPagePreview = true
	if _, err := h.bot.Send(reply); err != nil {
		logger.ErrorLogger.Printf("Sending analysis reply failed: %v", err)
	}
}

// incomingMessage converts a Telegram message into the platform-neutral
// form the core consumes. Caption text counts: log links often arrive
// as the caption of an attached file.
func (h *BotHandler) incomingMessage(message *tgbotapi.Message) entity.IncomingMessage {
	text := message.Text
	if text == "" {
		text = message.Caption
	}

	msg := entity.IncomingMessage{
		ChannelID:  message.Chat.ID,
		AuthorID:   message.From.ID,
		AuthorName: message.From.UserName,
		Text:       text,
	}

	if doc := message.Document; doc != nil {
		fileURL, err := h.bot.GetFileDirectURL(doc.FileID)
		if err != nil {
			logger.ErrorLogger.Printf("Resolving attachment %q failed: %v", doc.FileName, err)
		} else {
			msg.Attachments = append(msg.Attachments, entity.Attachment{
				URL:      fileURL,
				Filename: doc.FileName,
			})
		}
	}
	return msg
}

func (h *BotHandler) isAdmin(userID int64) bool {
	_, ok := h.admins[userID]
	return ok
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(reply); err != nil {
		logger.ErrorLogger.Printf("Sending message failed: %v", err)
	}
}
