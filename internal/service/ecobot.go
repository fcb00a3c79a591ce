package service

import (
	"context"
	"strings"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

type ChatReply struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

type EcoBotService struct {
	generator TextGenerator
}

func NewEcoBotService(generator TextGenerator) *EcoBotService {
	return &EcoBotService{generator: generator}
}

// Chat answers one question. Generation failures are logged and answered with the apology reply.
func (s *EcoBotService) Chat(ctx context.Context, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	reply, err := s.generator.GenerateText(ctx, EcoBotPrompt(message), model.GenerateOptions{})
	if err != nil {
		logger.Logger().Error("ecobot generation failed", zap.Error(err))
		return &ChatReply{Reply: catalog.EcoBotApology, Fallback: true}, nil
	}

	return &ChatReply{Reply: reply}, nil
}

func EcoBotPrompt(message string) string {
	return catalog.EcoBotPersona + "\n\nUser question: " + message
}
