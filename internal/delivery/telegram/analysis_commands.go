package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/pkg/logger"
)

const topHardwareCount = 10

func (h *BotHandler) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "togglehwcheck":
		h.handleToggleHWCheck(message)
	case "tophardware":
		h.handleTopHardware(message)
	}
}

func (h *BotHandler) handleToggleHWCheck(message *tgbotapi.Message) {
	if !h.isAdmin(message.From.ID) {
		return
	}

	enabled, err := h.analysis.ToggleHardwareCheck()
	if err != nil {
		logger.ErrorLogger.Printf("Persisting hardware check toggle failed: %v", err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	h.sendMessage(message.Chat.ID, "Analysis hardware check is now "+state)
}

func (h *BotHandler) handleTopHardware(message *tgbotapi.Message) {
	cpus := h.analysis.TopHardware(entity.KindCPU, topHardwareCount)
	gpus := h.analysis.TopHardware(entity.KindGPU, topHardwareCount)

	reply := tgbotapi.NewMessage(message.Chat.ID, renderTopHardware(cpus, gpus))
	reply.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(reply); err != nil {
		logger.ErrorLogger.Printf("Sending top hardware failed: %v", err)
	}
}
