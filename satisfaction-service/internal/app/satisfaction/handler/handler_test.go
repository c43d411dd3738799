package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository/mocks"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp - роутер со всеми хендлерами поверх моков репозиториев
type testApp struct {
	router     *gin.Engine
	reviewRepo *mocks.MockReviewRepository
	userRepo   *mocks.MockUserRepository
	publisher  *mocks.MockMessagePublisher
	jwtManager *util.JWTManager
}

func newTestApp() *testApp {
	app := &testApp{
		reviewRepo: new(mocks.MockReviewRepository),
		userRepo:   new(mocks.MockUserRepository),
		publisher:  new(mocks.MockMessagePublisher),
		jwtManager: util.NewJWTManager(testSecret, time.Hour),
	}

	reviewService := service.NewReviewService(app.reviewRepo, app.publisher, nil)
	reportService := service.NewReportService(app.reviewRepo, nil)
	authService := service.NewAuthService(app.userRepo, app.jwtManager, bcrypt.MinCost)

	app.router = SetupRoutes(
		NewReviewHandler(reviewService),
		NewReportHandler(reportService),
		NewAuthHandler(authService),
		NewAuthMiddleware(authService),
	)
	return app
}

func (a *testApp) token(t *testing.T) string {
	token, err := a.jwtManager.GenerateToken("user-1", entity.DefaultRole)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reader = bytes.NewBuffer(nil)
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// doForm отправляет тело как application/x-www-form-urlencoded
func (a *testApp) doForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func assignReviewID(args mock.Arguments) {
	review := args.Get(1).(*entity.Review)
	review.ID = primitive.NewObjectID()
	if review.Datetime.IsZero() {
		review.Datetime = time.Now().UTC()
	}
}
