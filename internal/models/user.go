// Package models содержит доменную модель пользователя системы.
// Пользователь — это либо владелец бизнеса (собирает отзывы клиентов),
// либо продавец-партнёр (salesperson), либо администратор платформы.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Статусы подписки бизнеса на сервис.
const (
	SubscriptionActive     = "active"
	SubscriptionTrial      = "trial"
	SubscriptionPending    = "pending"
	SubscriptionCancelled  = "cancelled"
	SubscriptionCancelling = "cancelling"
)

// User представляет зарегистрированного пользователя системы.
// Флаги ролей нормализованы в единые имена: IsSalesperson, IsAdmin.
type User struct {
	UID                 string     `json:"uid"`                  // Уникальный идентификатор пользователя
	Email               string     `json:"email"`                // Электронная почта
	PasswordHash        string     `json:"-"`                    // Хэш пароля, наружу не отдается
	BusinessName        string     `json:"business_name"`        // Название бизнеса (пустое у продавцов)
	OwnerName           string     `json:"owner_name"`           // Имя владельца
	Phone               string     `json:"phone"`                // Телефон бизнеса
	Address             string     `json:"address"`              // Адрес бизнеса
	GoogleReviewLink    string     `json:"google_review_link"`   // Внешняя страница отзывов Google, может быть пустой
	ReviewURLID         string     `json:"review_url_id"`        // UUID, на который указывает QR-код бизнеса
	IsSalesperson       bool       `json:"is_salesperson"`       // Продавец-партнёр
	IsAdmin             bool       `json:"is_admin"`             // Администратор платформы
	OnboardingCompleted bool       `json:"onboarding_completed"` // Завершен ли онбординг бизнеса
	SubscriptionStatus  string     `json:"subscription_status"`  // active, trial, pending, cancelled, cancelling
	TrialEndDate        *time.Time `json:"trial_end_date,omitempty"`
	SubscriptionExpiry  *time.Time `json:"subscription_expiry,omitempty"`
	ReferralCode        string     `json:"referral_code,omitempty"` // Код продавца для реферальных ссылок
	ReferredBy          *string    `json:"referred_by,omitempty"`   // UID продавца, приведшего бизнес
	CreatedAt           time.Time  `json:"created_at"`
}

// PublicBusiness — открытая часть профиля бизнеса,
// которую видит клиент на странице оценки после сканирования QR-кода.
type PublicBusiness struct {
	UID              string `json:"businessId"`
	BusinessName     string `json:"businessName"`
	GoogleReviewLink string `json:"googleReviewLink"`
}
