package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	passwordMinLen = 6
	passwordMaxLen = 20

	passwordSpecialChars = "#$@!%&*?"
)

var emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

// UserService регистрация и вход пользователей. Пароли хранятся в виде
// bcrypt хеша.
type UserService struct {
	repo   UserRepository
	logger *logrus.Entry
}

func NewUserService(repo UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.WithField("module", "services/user"),
	}
}

// SignUp регистрирует нового пользователя.
//
// Возвращаемые ошибки: ErrMissingFields, ErrInvalidEmail, ErrWeakPassword,
// ErrEmailTaken, ErrUnknown.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	email = strings.ToLower(email)
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !isStrongPassword(password) {
		return nil, ErrWeakPassword
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hashErr != nil {
		s.logger.WithError(hashErr).Error("failed to hash password")
		return nil, ErrUnknown
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if createErr := s.repo.Create(ctx, user); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		s.logger.WithError(createErr).Errorf("failed to create user %s", email)
		return nil, ErrUnknown
	}
	return user, nil
}

// SignIn проверяет учетные данные и возвращает пользователя.
//
// Возвращаемые ошибки: ErrMissingFields, ErrAccountNotFound, ErrWrongPassword,
// ErrUnknown.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.WithError(err).Errorf("failed to get user %s", email)
		return nil, ErrUnknown
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "user %d not found", id)
		}
		s.logger.WithError(err).Errorf("failed to get user %d", id)
		return nil, ErrUnknown
	}
	return user, nil
}

// isStrongPassword требует 6-20 символов, строчную и прописную буквы, цифру
// и спецсимвол. RE2 не поддерживает lookahead, поэтому проверяем по частям.
func isStrongPassword(password string) bool {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, c):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
