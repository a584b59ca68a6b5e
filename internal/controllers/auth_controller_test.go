package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/services"
	"github.com/Brayzonn/shortlink/internal/tokens"
)

type AuthControllerSuite struct {
	baseControllerSuite
}

func (s *AuthControllerSuite) TestSignup() {
	user := &models.User{ID: 1, Username: "alice", Email: "alice@test.com"}
	s.userMock.On("SignUp", mock.Anything, "alice", "alice@test.com", "Passw0rd!").Return(user, nil)

	res := s.makeRequest(requestFields{
		Method: http.MethodPost,
		URL:    "/api/signup",
		Body:   strings.NewReader(`{"username": "alice", "email": "alice@test.com", "password": "Passw0rd!"}`),
	})

	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("User Registered Successfully, Please Wait.", s.decodeBody(res)["successMsg"])
}

func (s *AuthControllerSuite) TestSignup_ErrorMapping() {
	tests := []struct {
		name    string
		servErr error
		wantMsg string
	}{
		{
			name:    "missing fields",
			servErr: services.ErrMissingFields,
			wantMsg: "Please enter all fields",
		},
		{
			name:    "invalid email",
			servErr: services.ErrInvalidEmail,
			wantMsg: "Invalid email pattern",
		},
		{
			name:    "weak password",
			servErr: services.ErrWeakPassword,
			wantMsg: "Password should contain at least 6 characters. An uppercase letter, lowercase letter, number, and a special character",
		},
		{
			name:    "email taken",
			servErr: services.ErrEmailTaken,
			wantMsg: "User with this email already exists",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.userMock.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.servErr)

			res := s.makeRequest(requestFields{
				Method: http.MethodPost,
				URL:    "/api/signup",
				Body:   strings.NewReader(`{"username": "a", "email": "b", "password": "c"}`),
			})

			s.Equal(http.StatusOK, res.StatusCode)
			s.Equal(tt.wantMsg, s.decodeBody(res)["errMsg"])
		})
	}
}

func (s *AuthControllerSuite) TestSignin() {
	user := &models.User{ID: 7, Username: "alice", Email: "alice@test.com"}
	s.userMock.On("SignIn", mock.Anything, "alice@test.com", "Passw0rd!").Return(user, nil)

	res := s.makeRequest(requestFields{
		Method: http.MethodPost,
		URL:    "/api/signin",
		Body:   strings.NewReader(`{"email": "alice@test.com", "password": "Passw0rd!"}`),
	})

	s.Equal(http.StatusOK, res.StatusCode)
	body := s.decodeBody(res)
	s.Equal("Login successful, please wait", body["successMsg"])

	// токен валиден и несет идентификатор пользователя
	tokenString, ok := body["token"].(string)
	s.Require().True(ok, "token must be a string")
	claims, err := tokens.ValidateUserJWT(tokenString, []byte(testJWTSecret))
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
}

func (s *AuthControllerSuite) TestSignin_ErrorMapping() {
	tests := []struct {
		name    string
		servErr error
		wantMsg string
	}{
		{name: "missing fields", servErr: services.ErrMissingFields, wantMsg: "Please enter both email and password"},
		{name: "account not found", servErr: services.ErrAccountNotFound, wantMsg: "Account does not exist"},
		{name: "wrong password", servErr: services.ErrWrongPassword, wantMsg: "Incorrect Password!"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.userMock.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.servErr)

			res := s.makeRequest(requestFields{
				Method: http.MethodPost,
				URL:    "/api/signin",
				Body:   strings.NewReader(`{"email": "a", "password": "b"}`),
			})

			s.Equal(http.StatusOK, res.StatusCode)
			s.Equal(tt.wantMsg, s.decodeBody(res)["errMsg"])
		})
	}
}

func (s *AuthControllerSuite) TestDashboard() {
	const userID = uint(7)
	user := &models.User{ID: userID, Username: "alice", Email: "alice@test.com", Password: "secret-hash"}
	links := []models.Link{
		{ID: 1, Destination: "https://test.com/1", Code: "aaaa1111"},
	}

	s.userMock.On("GetByID", mock.Anything, userID).Return(user, nil)
	s.linkMock.On("ListByOwner", mock.Anything, models.RegisteredOwner(userID)).Return(links, nil)
	s.refresherMock.On("RefreshAll", mock.Anything, links).Return(links)

	res := s.makeRequest(requestFields{
		Method:      http.MethodGet,
		URL:         "/api/user/dashboard",
		BearerToken: s.userToken(userID),
	})

	s.Equal(http.StatusOK, res.StatusCode)
	body := s.decodeBody(res)

	userInfo, ok := body["userInfo"].(map[string]any)
	s.Require().True(ok, "userInfo must be an object")
	s.Equal("alice", userInfo["username"])
	s.NotContains(userInfo, "password", "password hash never leaves the API")

	userLinks, ok := body["userLinks"].([]any)
	s.Require().True(ok, "userLinks must be an array")
	s.Len(userLinks, 1)
}

func (s *AuthControllerSuite) TestDashboard_Unauthorized() {
	res := s.makeRequest(requestFields{
		Method: http.MethodGet,
		URL:    "/api/user/dashboard",
	})

	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("Unauthorized Access.", s.decodeBody(res)["errMsg"])
	s.userMock.AssertNotCalled(s.T(), "GetByID")
}

func (s *AuthControllerSuite) TestDashboard_QuotedToken() {
	const userID = uint(7)
	s.userMock.On("GetByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Username: "alice"}, nil)
	s.linkMock.On("ListByOwner", mock.Anything, models.RegisteredOwner(userID)).Return([]models.Link{}, nil)
	s.refresherMock.On("RefreshAll", mock.Anything, mock.Anything).Return([]models.Link{})

	// некоторые клиенты оборачивают токен в кавычки
	res := s.makeRequest(requestFields{
		Method:      http.MethodGet,
		URL:         "/api/user/dashboard",
		BearerToken: `"` + s.userToken(userID) + `"`,
	})

	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(s.decodeBody(res), "userInfo")
}

func TestAuthControllerSuite(t *testing.T) {
	suite.Run(t, new(AuthControllerSuite))
}
