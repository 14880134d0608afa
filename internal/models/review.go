// Package models содержит доменные структуры отзывов и опросов.
package models

import "time"

// Направления маршрутизации отзыва после отправки оценки.
const (
	// DestinationExternal — уход на внешнюю страницу отзывов Google (полный redirect).
	DestinationExternal = "external-google"
	// DestinationSurvey — приватный опрос внутри приложения.
	DestinationSurvey = "private-survey"
)

// Review представляет отзыв клиента, созданный на странице оценки.
// Destination фиксирует, куда был направлен клиент в момент отправки.
type Review struct {
	ID             int       `json:"id"`
	BusinessUID    string    `json:"business_uid"`
	Rating         int       `json:"rating"` // Оценка от 1 до 5
	Comment        string    `json:"comment"`
	IsPublicChoice bool      `json:"is_public_choice"` // Итоговый выбор клиента на момент отправки
	Destination    string    `json:"destination"`
	Reply          *string   `json:"reply,omitempty"` // Ответ владельца бизнеса
	CreatedAt      time.Time `json:"created_at"`
}

// Survey представляет приватный опрос-продолжение для отзыва,
// ушедшего по ветке private-survey.
type Survey struct {
	ID               int       `json:"id"`
	ReviewID         int       `json:"review_id"`
	BusinessUID      string    `json:"business_uid"`
	ImprovementAreas []string  `json:"improvement_areas"`
	Feedback         string    `json:"feedback"`
	CreatedAt        time.Time `json:"created_at"`
}

// NegativeReviewDigest — сообщение для очереди уведомлений:
// сводка свежих приватных отзывов бизнеса за период.
type NegativeReviewDigest struct {
	Email        string    `json:"email"`
	OwnerName    string    `json:"owner_name"`
	BusinessName string    `json:"business_name"`
	Count        int       `json:"count"`
	Since        time.Time `json:"since"`
}
