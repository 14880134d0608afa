// Package sender собирает воркер отправки почтовых уведомлений:
// подключение к RabbitMQ, SMTP-транспорт и потребитель очереди сводок.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/thegoldstar/goldstar-server/internal/config"
	"github.com/thegoldstar/goldstar-server/internal/lib/rabbitmq"
	"github.com/thegoldstar/goldstar-server/internal/lib/smtp"
	senderservice "github.com/thegoldstar/goldstar-server/internal/services/sender"
)

// App агрегирует соединение с брокером и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New собирает воркер: подключает брокер, объявляет очереди и строит
// SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetAlertQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди сводок и блокируется до отмены
// контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, "alert.negative-review", a.senderService.SendNegativeReviewDigest)
	if err != nil {
		a.logger.Error("failed to start alert.negative-review consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
