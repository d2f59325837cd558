package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/lib/jwt"
	"github.com/maroungit7573/natours/internal/lib/password"
	"github.com/maroungit7573/natours/internal/models"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string, includeHash bool) (*models.User, error) {
	args := m.Called(ctx, email, includeHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUIDWithPassword(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, uid, tokenHash string, expires time.Time) error {
	args := m.Called(ctx, uid, tokenHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	args := m.Called(ctx, uid, passwordHash)
	return args.Error(0)
}

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendPasswordReset(name, email, resetURL string) error {
	args := m.Called(name, email, resetURL)
	return args.Error(0)
}

type MockWelcomeNotifier struct {
	mock.Mock
}

func (m *MockWelcomeNotifier) PublishWelcome(msg models.WelcomeEmail) error {
	args := m.Called(msg)
	return args.Error(0)
}

func newTestService(users UserRepository, mail MailSender, notifier WelcomeNotifier) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	maker := jwt.NewMaker("test-secret", time.Hour)
	return New(users, maker, mail, notifier, log, bcrypt.MinCost, 10*time.Minute)
}

func mustHash(t *testing.T, raw string) string {
	t.Helper()
	h, err := password.Hash(raw, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestSignup_Success(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailSender)
	notifier := new(MockWelcomeNotifier)
	svc := newTestService(users, mail, notifier)

	uid := uuid.NewString()
	created := &models.User{UID: uid, Name: "Lena", Email: "lena@example.com", Role: models.RoleUser}

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "lena@example.com" && u.Role == models.RoleUser && u.PasswordHash != ""
	})).Return(uid, nil)
	users.On("GetUserByUID", mock.Anything, uid).Return(created, nil)
	notifier.On("PublishWelcome", models.WelcomeEmail{
		Name:  "Lena",
		Email: "lena@example.com",
		URL:   "https://natours.test/me",
	}).Return(nil)

	user, token, err := svc.Signup(context.Background(), "Lena", "  Lena@Example.COM ", "pass1234", "https://natours.test/me")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uid, user.UID)
	users.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSignup_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	users.On("CreateUser", mock.Anything, mock.Anything).Return("", repository.ErrEmailTaken)

	_, _, err := svc.Signup(context.Background(), "Lena", "lena@example.com", "pass1234", "https://natours.test/me")

	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
}

func TestSignup_WelcomePublishFailureIsNonFatal(t *testing.T) {
	users := new(MockUserRepository)
	notifier := new(MockWelcomeNotifier)
	svc := newTestService(users, new(MockMailSender), notifier)

	uid := uuid.NewString()
	created := &models.User{UID: uid, Name: "Lena", Email: "lena@example.com", Role: models.RoleUser}
	users.On("CreateUser", mock.Anything, mock.Anything).Return(uid, nil)
	users.On("GetUserByUID", mock.Anything, uid).Return(created, nil)
	notifier.On("PublishWelcome", mock.Anything).Return(assert.AnError)

	_, token, err := svc.Signup(context.Background(), "Lena", "lena@example.com", "pass1234", "https://natours.test/me")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin(t *testing.T) {
	uid := uuid.NewString()

	cases := []struct {
		name      string
		email     string
		pass      string
		storedErr error
		stored    *models.User
		wantErr   bool
	}{
		{
			name:   "success",
			email:  "lena@example.com",
			pass:   "pass1234",
			stored: &models.User{UID: uid, Email: "lena@example.com"},
		},
		{
			name:      "unknown email",
			email:     "ghost@example.com",
			pass:      "pass1234",
			storedErr: repository.ErrUserNotFound,
			wantErr:   true,
		},
		{
			name:    "wrong password",
			email:   "lena@example.com",
			pass:    "wrong-pass",
			stored:  &models.User{UID: uid, Email: "lena@example.com"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := new(MockUserRepository)
			svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

			if tc.stored != nil {
				tc.stored.PasswordHash = mustHash(t, "pass1234")
			}
			users.On("GetUserByEmail", mock.Anything, tc.email, true).Return(tc.stored, tc.storedErr)

			user, token, err := svc.Login(context.Background(), tc.email, tc.pass)

			if tc.wantErr {
				require.Error(t, err)
				var appErr *apperr.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "Incorrect email or password!", appErr.Msg)
				assert.Equal(t, http.StatusBadRequest, appErr.Status())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	stored := &models.User{UID: uuid.NewString(), Email: "lena@example.com", PasswordHash: mustHash(t, "pass1234")}
	users.On("GetUserByEmail", mock.Anything, "ghost@example.com", true).Return(nil, repository.ErrUserNotFound)
	users.On("GetUserByEmail", mock.Anything, "lena@example.com", true).Return(stored, nil)

	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "pass1234")
	_, _, errWrongPass := svc.Login(context.Background(), "lena@example.com", "wrong-pass")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestForgotPassword_Success(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailSender)
	svc := newTestService(users, mail, new(MockWelcomeNotifier))

	uid := uuid.NewString()
	stored := &models.User{UID: uid, Name: "Lena", Email: "lena@example.com"}
	users.On("GetUserByEmail", mock.Anything, "lena@example.com", false).Return(stored, nil)

	var savedHash string
	users.On("SetResetToken", mock.Anything, uid, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { savedHash = args.String(2) }).Return(nil)
	mail.On("SendPasswordReset", "Lena", "lena@example.com", mock.MatchedBy(func(url string) bool {
		return len(url) > len("https://natours.test/reset/")
	})).Run(func(args mock.Arguments) {
		url := args.String(2)
		raw := url[len("https://natours.test/reset/"):]
		assert.Equal(t, savedHash, password.HashResetToken(raw))
	}).Return(nil)

	err := svc.ForgotPassword(context.Background(), "lena@example.com", "https://natours.test/reset")

	require.NoError(t, err)
	users.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	users.On("GetUserByEmail", mock.Anything, "ghost@example.com", false).Return(nil, repository.ErrUserNotFound)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com", "https://natours.test/reset")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, http.StatusNotFound, appErr.Status())
}

func TestForgotPassword_MailFailureClearsToken(t *testing.T) {
	users := new(MockUserRepository)
	mail := new(MockMailSender)
	svc := newTestService(users, mail, new(MockWelcomeNotifier))

	uid := uuid.NewString()
	stored := &models.User{UID: uid, Name: "Lena", Email: "lena@example.com"}
	users.On("GetUserByEmail", mock.Anything, "lena@example.com", false).Return(stored, nil)
	users.On("SetResetToken", mock.Anything, uid, mock.Anything, mock.Anything).Return(nil)
	mail.On("SendPasswordReset", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	users.On("ClearResetToken", mock.Anything, uid).Return(nil)

	err := svc.ForgotPassword(context.Background(), "lena@example.com", "https://natours.test/reset")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindDependency, appErr.Kind)
	users.AssertCalled(t, "ClearResetToken", mock.Anything, uid)
}

func TestResetPassword_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	raw, tokenHash, err := password.NewResetToken()
	require.NoError(t, err)

	uid := uuid.NewString()
	stored := &models.User{UID: uid, Email: "lena@example.com"}
	users.On("GetUserByResetToken", mock.Anything, tokenHash).Return(stored, nil)
	users.On("UpdatePassword", mock.Anything, uid, mock.MatchedBy(func(hash string) bool {
		return password.Compare(hash, "new-pass-1234") == nil
	})).Return(nil)

	user, token, err := svc.ResetPassword(context.Background(), raw, "new-pass-1234")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uid, user.UID)
	users.AssertExpectations(t)
}

func TestResetPassword_InvalidOrExpiredToken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	users.On("GetUserByResetToken", mock.Anything, mock.Anything).Return(nil, repository.ErrUserNotFound)

	_, _, err := svc.ResetPassword(context.Background(), "deadbeef", "new-pass-1234")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "token is invalid or has expired", appErr.Msg)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
}

func TestUpdatePassword_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	uid := uuid.NewString()
	stored := &models.User{UID: uid, Email: "lena@example.com", PasswordHash: mustHash(t, "old-pass-1234")}
	users.On("GetUserByUIDWithPassword", mock.Anything, uid).Return(stored, nil)
	users.On("UpdatePassword", mock.Anything, uid, mock.Anything).Return(nil)

	user, token, err := svc.UpdatePassword(context.Background(), uid, "old-pass-1234", "new-pass-1234")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)
}

func TestUpdatePassword_WrongCurrentPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

	uid := uuid.NewString()
	stored := &models.User{UID: uid, PasswordHash: mustHash(t, "old-pass-1234")}
	users.On("GetUserByUIDWithPassword", mock.Anything, uid).Return(stored, nil)

	_, _, err := svc.UpdatePassword(context.Background(), uid, "wrong-pass", "new-pass-1234")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "your current password is wrong", appErr.Msg)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status())
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSession(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	uid := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

		token, err := maker.Issue(uid)
		require.NoError(t, err)
		users.On("GetUserByUID", mock.Anything, uid).Return(&models.User{UID: uid}, nil)

		user, err := svc.ResolveSession(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := newTestService(new(MockUserRepository), new(MockMailSender), new(MockWelcomeNotifier))

		expired := jwt.NewMaker("test-secret", -time.Hour)
		token, err := expired.Issue(uid)
		require.NoError(t, err)

		_, err = svc.ResolveSession(context.Background(), token)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "your token has expired, please log in again", appErr.Msg)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestService(new(MockUserRepository), new(MockMailSender), new(MockWelcomeNotifier))

		_, err := svc.ResolveSession(context.Background(), "not-a-token")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "invalid token, please log in again", appErr.Msg)
	})

	t.Run("deleted user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

		token, err := maker.Issue(uid)
		require.NoError(t, err)
		users.On("GetUserByUID", mock.Anything, uid).Return(nil, repository.ErrUserNotFound)

		_, err = svc.ResolveSession(context.Background(), token)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "the user belonging to this token does no longer exist", appErr.Msg)
	})

	t.Run("password changed after token issued", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

		token, err := maker.Issue(uid)
		require.NoError(t, err)

		changed := time.Now().Add(time.Hour)
		users.On("GetUserByUID", mock.Anything, uid).Return(&models.User{UID: uid, PasswordChangedAt: &changed}, nil)

		_, err = svc.ResolveSession(context.Background(), token)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "user recently changed password, please log in again", appErr.Msg)
	})

	t.Run("old token survives until password change", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newTestService(users, new(MockMailSender), new(MockWelcomeNotifier))

		token, err := maker.Issue(uid)
		require.NoError(t, err)

		changed := time.Now().Add(-time.Hour)
		users.On("GetUserByUID", mock.Anything, uid).Return(&models.User{UID: uid, PasswordChangedAt: &changed}, nil)

		user, err := svc.ResolveSession(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
	})
}
