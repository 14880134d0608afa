// Package access реализует цепочку проверок доступа к экранам дашборда.
//
// Каждая проверка (guard) — чистая функция от сессии и запрошенного пути,
// возвращающая тегированное решение: Allow, Redirect или Pending. Проверки
// не бросают ошибок: отказ в доступе — это не ошибка, а навигация. Решение
// вычисляется заново на каждый переход, результаты не кешируются.
package access

import "github.com/thegoldstar/goldstar-server/internal/models"

// Kind — тип решения проверки доступа.
type Kind int

const (
	// KindAllow — экран доступен, в решении лежит резолвнутый пользователь.
	KindAllow Kind = iota
	// KindRedirect — доступ запрещен, клиента следует направить на Path.
	KindRedirect
	// KindPending — сессия есть, но профиль еще не загружен; ни доступа,
	// ни редиректа — нейтральное состояние ожидания.
	KindPending
)

// Decision — результат проверки доступа.
type Decision struct {
	Kind Kind
	Path string       // Куда направить клиента при KindRedirect
	User *models.User // Пользователь при KindAllow
}

// Allow возвращает разрешающее решение с резолвнутым пользователем.
func Allow(user *models.User) Decision {
	return Decision{Kind: KindAllow, User: user}
}

// Redirect возвращает запрещающее решение с путем для перехода.
func Redirect(path string) Decision {
	return Decision{Kind: KindRedirect, Path: path}
}

// Pending возвращает нейтральное решение "профиль грузится".
func Pending() Decision {
	return Decision{Kind: KindPending}
}

// Session — состояние сессии на момент перехода. User может быть nil,
// пока профиль не загружен или временно недоступен: это не ошибка.
type Session struct {
	Authenticated bool
	User          *models.User
}

// Guard — одна проверка доступа. Path — запрошенный экран.
type Guard func(s Session, path string) Decision
