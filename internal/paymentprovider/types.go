package paymentprovider

// Сумма платежа в формате шлюза.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Редирект на страницу оплаты шлюза.
type Confirmation struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
	// ConfirmationURL заполняется шлюзом в ответе.
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// Запрос на создание платежной сессии.
type CreateCheckoutRequest struct {
	Amount       Amount            `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation Confirmation      `json:"confirmation"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Ответ шлюза на создание платежной сессии.
type CreateCheckoutResponse struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Amount       Amount       `json:"amount"`
	Confirmation Confirmation `json:"confirmation"`
}

// Типы событий, приходящих на вебхук.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)

// WebhookEvent — уведомление шлюза об изменении статуса платежа.
type WebhookEvent struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Amount   Amount            `json:"amount"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}
