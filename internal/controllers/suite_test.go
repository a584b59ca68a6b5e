package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/Brayzonn/shortlink/internal/config"
	"github.com/Brayzonn/shortlink/internal/controllers/middlewares"
	"github.com/Brayzonn/shortlink/internal/services/smocks"
	"github.com/Brayzonn/shortlink/internal/tokens"
)

const testJWTSecret = "test-secret"

// baseControllerSuite общая обвязка контроллерных сьютов: моки сервисов,
// роутер и вспомогательные запросы.
type baseControllerSuite struct {
	suite.Suite
	linkMock      *smocks.LinkMock
	userMock      *smocks.UserMock
	refresherMock *smocks.RefresherMock
	router        *gin.Engine
	config        *config.Config
}

func (s *baseControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.linkMock = new(smocks.LinkMock)
	s.userMock = new(smocks.UserMock)
	s.refresherMock = new(smocks.RefresherMock)
	s.config = &config.Config{
		ServerAddress: ":80",
		BaseURL:       &url.URL{Scheme: "http", Host: "test.com:8080"},
		JWTSecret:     testJWTSecret,
		Logger:        logger,
	}
	s.router = SetupRouter(RouterParams{
		LinkService: s.linkMock,
		UserService: s.userMock,
		Refresher:   s.refresherMock,
		AppConf:     s.config,
	})
}

type requestFields struct {
	Method      string
	URL         string
	Body        io.Reader
	Cookie      *http.Cookie
	BearerToken string
	// RawAuthHeader подставляется в Authorization как есть, без префикса Bearer.
	RawAuthHeader string
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *baseControllerSuite) makeRequest(fields requestFields) *http.Response {
	request := httptest.NewRequest(fields.Method, fields.URL, fields.Body)
	if fields.Body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if fields.Cookie != nil {
		request.AddCookie(fields.Cookie)
	}
	if fields.BearerToken != "" {
		request.Header.Set("Authorization", "Bearer "+fields.BearerToken)
	} else if fields.RawAuthHeader != "" {
		request.Header.Set("Authorization", fields.RawAuthHeader)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)

	return recorder.Result()
}

// decodeBody разбирает JSON тело ответа в обобщенную структуру.
func (s *baseControllerSuite) decodeBody(res *http.Response) map[string]any {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		s.T().Fatalf("failed to read body: %v", err)
	}

	var parsed map[string]any
	if err = json.Unmarshal(body, &parsed); err != nil {
		s.T().Fatalf("failed to unmarshal body %s: %v", body, err)
	}
	return parsed
}

// visitorCookie выпускает валидную куку посетителя с заданным UUID.
func (s *baseControllerSuite) visitorCookie(visitorUUID string) *http.Cookie {
	token, err := tokens.GenerateVisitorJWT(visitorUUID, middlewares.VisitorJWTExpireDuration, []byte(testJWTSecret))
	if err != nil {
		s.T().Fatalf("failed to generate visitor jwt: %v", err)
	}
	return &http.Cookie{Name: middlewares.VisitorCookieName, Value: token}
}

// userToken выпускает валидный bearer токен пользователя.
func (s *baseControllerSuite) userToken(userID uint) string {
	token, err := tokens.GenerateUserJWT(userID, []byte(testJWTSecret))
	if err != nil {
		s.T().Fatalf("failed to generate user jwt: %v", err)
	}
	return token
}
