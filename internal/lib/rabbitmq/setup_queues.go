package rabbitmq

// AlertsExchange — exchange для уведомлений владельцам бизнесов.
const AlertsExchange = "alerts"

// Ключи маршрутизации уведомлений.
const (
	// NegativeReviewKey — сводки по свежим приватным отзывам.
	NegativeReviewKey = "negative-review"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAlertQueues возвращает очереди уведомлений для воркера отправки писем.
func GetAlertQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "alert.negative-review", RoutingKey: NegativeReviewKey},
	}
}
