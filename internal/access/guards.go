package access

import "github.com/thegoldstar/goldstar-server/internal/models"

// Пути экранов дашборда.
const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathOnboarding = "/onboarding"
	PathDashboard  = "/dashboard"
	PathPayment    = "/dashboard/payment"
	PathReferrals  = "/dashboard/referrals"
)

// Authenticated требует аутентифицированной сессии.
func Authenticated(s Session, _ string) Decision {
	if !s.Authenticated {
		return Redirect(PathLogin)
	}
	return Allow(s.User)
}

// UserLoaded требует загруженного профиля пользователя. Пока профиль
// грузится, решение нейтральное — без редиректа на логин.
func UserLoaded(s Session, _ string) Decision {
	if s.User == nil {
		return Pending()
	}
	return Allow(s.User)
}

// Onboarding направляет бизнес-владельцев с незавершенным онбордингом на
// экран онбординга. Продавцы не проходят онбординг и пропускаются всегда.
// Сам экран онбординга исключен, иначе редирект зациклится.
func Onboarding(s Session, path string) Decision {
	u := s.User
	if u.IsSalesperson {
		return Allow(u)
	}
	if !u.OnboardingCompleted && path != PathOnboarding {
		return Redirect(PathOnboarding)
	}
	return Allow(u)
}

// OnboardingScreen — обратная проверка для самого экрана онбординга:
// тем, кому онбординг не нужен, тут делать нечего.
func OnboardingScreen(s Session, _ string) Decision {
	u := s.User
	if u.IsSalesperson {
		return Redirect(PathReferrals)
	}
	if u.OnboardingCompleted {
		return Redirect(PathPayment)
	}
	return Allow(u)
}

// NonSalesperson закрывает экраны владельца бизнеса от продавцов.
func NonSalesperson(s Session, _ string) Decision {
	if s.User.IsSalesperson {
		return Redirect(PathReferrals)
	}
	return Allow(s.User)
}

// SalespersonScreen закрывает экраны продавца от владельцев бизнеса.
func SalespersonScreen(s Session, _ string) Decision {
	if !s.User.IsSalesperson {
		return Redirect(PathDashboard)
	}
	return Allow(s.User)
}

// Subscription требует оплаченной подписки или активного триала. Статусы
// cancelling и cancelled оставляют доступ до конца оплаченного периода,
// закрыт только pending.
func Subscription(s Session, _ string) Decision {
	if s.User.SubscriptionStatus == models.SubscriptionPending {
		return Redirect(PathPayment)
	}
	return Allow(s.User)
}

// Admin пускает только администраторов.
func Admin(s Session, _ string) Decision {
	if !s.User.IsAdmin {
		return Redirect(PathHome)
	}
	return Allow(s.User)
}
