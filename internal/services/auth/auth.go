// Package auth содержит бизнес-логику жизненного цикла учётных данных:
// регистрацию, вход, сброс и смену пароля, а также разрешение сессии
// по токену для Session Guard.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/lib/jwt"
	"github.com/maroungit7573/natours/internal/lib/password"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email; хэш пароля
	// выбирается только при includeHash=true.
	GetUserByEmail(ctx context.Context, email string, includeHash bool) (*models.User, error)
	// GetUserByUID возвращает пользователя по UID без хэша пароля.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	// GetUserByUIDWithPassword возвращает пользователя вместе с хэшем пароля.
	GetUserByUIDWithPassword(ctx context.Context, uid string) (*models.User, error)
	// GetUserByResetToken возвращает пользователя по хэшу непросроченного токена сброса.
	GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	// SetResetToken сохраняет хэш токена сброса и срок его действия.
	SetResetToken(ctx context.Context, uid, tokenHash string, expires time.Time) error
	// ClearResetToken очищает поля токена сброса.
	ClearResetToken(ctx context.Context, uid string) error
	// UpdatePassword записывает новый хэш пароля и фиксирует момент смены.
	UpdatePassword(ctx context.Context, uid, passwordHash string) error
}

// MailSender отправляет письмо сброса пароля. Отправка синхронная:
// её сбой компенсируется очисткой токена сброса.
type MailSender interface {
	SendPasswordReset(name, email, resetURL string) error
}

// WelcomeNotifier публикует приветственное письмо в очередь.
// Доставка best-effort: сбой не прерывает регистрацию.
type WelcomeNotifier interface {
	PublishWelcome(msg models.WelcomeEmail) error
}

// Service реализует потоки аутентификации и управление сессионными токенами.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	mail     MailSender
	notifier WelcomeNotifier
	log      *slog.Logger

	bcryptCost int
	resetTTL   time.Duration
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, mail MailSender,
	notifier WelcomeNotifier, log *slog.Logger, bcryptCost int, resetTTL time.Duration) *Service {
	return &Service{
		users:      users,
		jwtMaker:   jwtMaker,
		mail:       mail,
		notifier:   notifier,
		log:        log,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup создает нового пользователя с ролью user, публикует
// приветственное письмо и выпускает сессионный токен.
// accountURL — адрес страницы аккаунта для текста письма.
func (s *Service) Signup(ctx context.Context, name, email, rawPassword, accountURL string) (*models.User, string, error) {
	const op = "services.auth.Signup"

	hashed, err := password.Hash(rawPassword, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}

	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", apperr.New(apperr.KindConflict,
				"this email address is already in use").WithStatus(http.StatusBadRequest)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.notifier.PublishWelcome(models.WelcomeEmail{
		Name:  created.Name,
		Email: created.Email,
		URL:   accountURL,
	}); err != nil {
		s.log.Warn("failed to publish welcome email", sl.Err(err))
	}

	token, err := s.jwtMaker.Issue(created.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return created, token, nil
}

// Login проверяет учётные данные и выпускает сессионный токен.
// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// чтобы по ответу нельзя было перечислять зарегистрированные адреса.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"

	incorrect := func() error {
		return apperr.New(apperr.KindAuthentication,
			"Incorrect email or password!").WithStatus(http.StatusBadRequest)
	}

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email), true)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", incorrect()
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, "", incorrect()
	}

	token, err := s.jwtMaker.Issue(user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, token, nil
}

// ForgotPassword генерирует одноразовый токен сброса, сохраняет его хэш
// и срок действия и отправляет письмо со ссылкой resetURLBase/{token}.
// При сбое отправки токен очищается: висящих токенов без письма не остаётся.
func (s *Service) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	const op = "services.auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.New(apperr.KindNotFound, "there is no user with this email address")
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	raw, tokenHash, err := password.NewResetToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetResetToken(ctx, user.UID, tokenHash, time.Now().Add(s.resetTTL)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resetURL := resetURLBase + "/" + raw
	if err := s.mail.SendPasswordReset(user.Name, user.Email, resetURL); err != nil {
		s.log.Error("failed to send password reset email", sl.Err(err))
		if clearErr := s.users.ClearResetToken(ctx, user.UID); clearErr != nil {
			s.log.Error("failed to clear reset token after send failure", sl.Err(clearErr))
		}
		return apperr.Wrap(apperr.KindDependency,
			"there was an error sending the email, try again later", err)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по одноразовому токену сброса.
// Токен одноразовый: смена пароля очищает его, так что повторное
// использование неотличимо от несуществующего токена.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) (*models.User, string, error) {
	const op = "services.auth.ResetPassword"

	user, err := s.users.GetUserByResetToken(ctx, password.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperr.New(apperr.KindAuthentication,
				"token is invalid or has expired").WithStatus(http.StatusBadRequest)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.UID, hashed); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.Issue(user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// UpdatePassword меняет пароль аутентифицированного пользователя после
// проверки текущего пароля и выпускает свежий токен: все ранее выданные
// токены становятся устаревшими по проверке свежести.
func (s *Service) UpdatePassword(ctx context.Context, uid, currentPassword, newPassword string) (*models.User, string, error) {
	const op = "services.auth.UpdatePassword"

	user, err := s.users.GetUserByUIDWithPassword(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperr.New(apperr.KindAuthentication,
				"the user belonging to this token does no longer exist")
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		return nil, "", apperr.New(apperr.KindAuthentication, "your current password is wrong")
	}

	hashed, err := password.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.UID, hashed); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.Issue(user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""
	return user, token, nil
}

// ResolveSession проверяет сессионный токен и возвращает его владельца.
// Последовательность проверок: подпись и срок токена, существование
// пользователя, свежесть токена относительно последней смены пароля.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveSession"

	claims, err := s.jwtMaker.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.New(apperr.KindAuthentication,
				"your token has expired, please log in again")
		}
		return nil, apperr.New(apperr.KindAuthentication, "invalid token, please log in again")
	}
	if uuid.Validate(claims.UserUID) != nil {
		return nil, apperr.New(apperr.KindAuthentication, "invalid token, please log in again")
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindAuthentication,
				"the user belonging to this token does no longer exist")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.IssuedAt == nil || user.PasswordChangedAfter(claims.IssuedAt.Time) {
		return nil, apperr.New(apperr.KindAuthentication,
			"user recently changed password, please log in again")
	}
	return user, nil
}
