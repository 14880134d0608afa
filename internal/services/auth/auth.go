// Package auth содержит логику бизнес-уровня для регистрации, входа и
// управления профилем пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thegoldstar/goldstar-server/internal/access"
	"github.com/thegoldstar/goldstar-server/internal/cache"
	"github.com/thegoldstar/goldstar-server/internal/lib/jwt"
	"github.com/thegoldstar/goldstar-server/internal/lib/password"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownReferralCode возвращается, если реферальный код не принадлежит
// ни одному продавцу.
var ErrUnknownReferralCode = errors.New("unknown referral code")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetSalespersonByReferralCode возвращает продавца по реферальному коду.
	GetSalespersonByReferralCode(ctx context.Context, code string) (*models.User, error)
	// CompleteOnboarding сохраняет данные бизнеса и закрывает онбординг.
	CompleteOnboarding(ctx context.Context, uid string, user models.User) error
}

// Cache описывает методы для кэширования профиля пользователя.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service отвечает за регистрацию, авторизацию и загрузку профиля.
type Service struct {
	users    UserRepository
	cache    Cache
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, c Cache, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		cache:    c,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// RegisterRequest — данные регистрации нового аккаунта.
type RegisterRequest struct {
	Email         string
	Password      string
	BusinessName  string
	IsSalesperson bool
	ReferralCode  string // Код продавца, приведшего бизнес; опционален
}

// Register создает нового пользователя с хэшированием пароля. Бизнесы
// регистрируются со статусом подписки pending и незавершенным онбордингом,
// продавцы получают собственный реферальный код и онбординг не проходят.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:              strings.ToLower(req.Email),
		PasswordHash:       hashed,
		BusinessName:       req.BusinessName,
		IsSalesperson:      req.IsSalesperson,
		SubscriptionStatus: models.SubscriptionPending,
	}
	if req.IsSalesperson {
		user.ReferralCode = newReferralCode()
	}
	if req.ReferralCode != "" && !req.IsSalesperson {
		salesperson, err := s.users.GetSalespersonByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			return "", ErrUnknownReferralCode
		}
		user.ReferredBy = &salesperson.UID
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.log.Info("user registered",
		slog.String("uid", uid),
		slog.Bool("is_salesperson", req.IsSalesperson))
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.IsSalesperson, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает клеймы.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

// Me возвращает профиль пользователя, используя кеш. При недоступности
// базы отдается последняя закешированная копия профиля, если она есть.
func (s *Service) Me(ctx context.Context, uid string) (*models.User, error) {
	var cached *models.User
	key := cache.UserKey(uid)
	found, cacheErr := s.cache.Get(key, &cached)

	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		if cacheErr == nil && found {
			s.log.Warn("serving user profile from cache", slog.String("uid", uid),
				slog.Any("err", err))
			return cached, nil
		}
		return nil, err
	}

	if err := s.cache.Set(key, user, time.Hour); err != nil {
		s.log.Warn("failed to cache user profile", slog.String("key", key), slog.Any("err", err))
	}
	return user, nil
}

// OnboardingRequest — данные бизнеса, собранные на экране онбординга.
type OnboardingRequest struct {
	BusinessName     string
	OwnerName        string
	Phone            string
	Address          string
	GoogleReviewLink string
}

// CompleteOnboarding сохраняет профиль бизнеса и закрывает онбординг.
func (s *Service) CompleteOnboarding(ctx context.Context, uid string, req OnboardingRequest) (*models.User, error) {
	err := s.users.CompleteOnboarding(ctx, uid, models.User{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Address:          req.Address,
		GoogleReviewLink: req.GoogleReviewLink,
	})
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(cache.UserKey(uid)); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("uid", uid), slog.Any("err", err))
	}
	s.log.Info("onboarding completed", slog.String("uid", uid))
	return s.Me(ctx, uid)
}

// RouteAccess вычисляет решение цепочки доступа для пути от лица
// пользователя.
func (s *Service) RouteAccess(ctx context.Context, uid, path string) (access.Decision, error) {
	session := access.Session{Authenticated: uid != ""}
	if uid != "" {
		user, err := s.Me(ctx, uid)
		if err == nil {
			session.User = user
		}
		// Ошибка загрузки профиля дает нейтральное решение, не отказ.
	}
	return access.Decide(session, path), nil
}

func newReferralCode() string {
	id := uuid.New().String()
	return fmt.Sprintf("GOLD-%s", strings.ToUpper(id[:8]))
}
