package access

import "github.com/thegoldstar/goldstar-server/internal/models"

// State — агрегированное состояние сессии, производное от ее полей.
// Используется клиентом дашборда для выбора стартового экрана.
type State string

const (
	StateUnauthenticated   State = "unauthenticated"
	StateLoading           State = "loading"
	StateNeedsOnboarding   State = "needs_onboarding"
	StateNeedsSubscription State = "needs_subscription"
	StateReady             State = "ready"
)

// StateOf вычисляет состояние сессии. Порядок проверок повторяет порядок
// базовой цепочки: сессия, профиль, онбординг, подписка. Продавцы минуют
// онбординг и подписку.
func StateOf(s Session) State {
	if !s.Authenticated {
		return StateUnauthenticated
	}
	u := s.User
	if u == nil {
		return StateLoading
	}
	if u.IsSalesperson {
		return StateReady
	}
	if !u.OnboardingCompleted {
		return StateNeedsOnboarding
	}
	if u.SubscriptionStatus == models.SubscriptionPending {
		return StateNeedsSubscription
	}
	return StateReady
}
