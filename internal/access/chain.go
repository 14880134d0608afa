package access

import "strings"

// Chain объединяет проверки в цепочку: выполняются по порядку, первое
// решение кроме Allow останавливает цепочку. Allow последней проверки
// несет резолвнутого пользователя.
func Chain(guards ...Guard) Guard {
	return func(s Session, path string) Decision {
		d := Allow(s.User)
		for _, g := range guards {
			d = g(s, path)
			if d.Kind != KindAllow {
				return d
			}
		}
		return d
	}
}

// Базовая цепочка всех приватных экранов: сессия, профиль, онбординг.
var baseChain = []Guard{Authenticated, UserLoaded, Onboarding}

func withBase(extra ...Guard) Guard {
	return Chain(append(append([]Guard{}, baseChain...), extra...)...)
}

var routeChains = map[string]Guard{
	PathOnboarding:           Chain(Authenticated, UserLoaded, OnboardingScreen),
	PathDashboard:            withBase(),
	PathPayment:              withBase(),
	"/dashboard/settings":    withBase(),
	"/dashboard/reviews":     withBase(NonSalesperson, Subscription),
	"/dashboard/qr-code":     withBase(NonSalesperson, Subscription),
	PathReferrals:            withBase(SalespersonScreen),
	"/salesperson/dashboard": withBase(SalespersonScreen),
	"/admin":                 withBase(Admin),
}

// ChainFor возвращает цепочку проверок для запрошенного пути. Подпути
// админки наследуют цепочку /admin, неизвестные приватные пути получают
// базовую цепочку.
func ChainFor(path string) Guard {
	if g, ok := routeChains[path]; ok {
		return g
	}
	if strings.HasPrefix(path, "/admin/") {
		return routeChains["/admin"]
	}
	return withBase()
}

// Decide применяет цепочку для пути к сессии.
func Decide(s Session, path string) Decision {
	return ChainFor(path)(s, path)
}
