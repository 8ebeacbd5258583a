package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/config"
	"github.com/link-services/link-gateway-backend/pkg/middleware"
	"github.com/link-services/link-gateway-backend/pkg/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const cronTestSecret = "trigger-secret"

type CronSuite struct {
	suite.Suite
	checker *MockDomainChecker
}

func TestCronSuite(t *testing.T) {
	suite.Run(t, new(CronSuite))
}

func (suite *CronSuite) SetupTest() {
	suite.checker = &MockDomainChecker{}
}

func (suite *CronSuite) serveCronRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	pathPrefix := router.Group(api.FullRootPath())

	RegisterCronRoutes(pathPrefix, suite.checker, cronTestSecret)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func signBody(secret string, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func (suite *CronSuite) TestSweepWithValidSignature() {
	t := suite.T()

	result := verification.SweepResult{
		Checked:   3,
		Verified:  2,
		Failed:    1,
		Failures:  map[string]string{"broken.com": "upstream broke"},
		StartedAt: time.Now(),
		Elapsed:   time.Second,
	}
	suite.checker.On("SweepBatch", mock.Anything).Return(result, nil)

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, api.FullRootPath()+"/cron/domains", strings.NewReader(body))
	req.Header.Set(middleware.SignatureHeader, signBody(cronTestSecret, body))

	code, respBody, err := suite.serveCronRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.SweepResultResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, 3, response.Checked)
	assert.Equal(t, 1, response.Failed)
	assert.Contains(t, response.Failures, "broken.com")
	suite.checker.AssertExpectations(t)
}

func (suite *CronSuite) TestSweepWithInvalidSignature() {
	t := suite.T()

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, api.FullRootPath()+"/cron/domains", strings.NewReader(body))
	req.Header.Set(middleware.SignatureHeader, signBody("wrong-secret", body))

	code, _, err := suite.serveCronRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	suite.checker.AssertNotCalled(t, "SweepBatch", mock.Anything)
}

func (suite *CronSuite) TestSweepFailure() {
	t := suite.T()

	suite.checker.On("SweepBatch", mock.Anything).
		Return(verification.SweepResult{}, errors.New("db down"))

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, api.FullRootPath()+"/cron/domains", strings.NewReader(body))
	req.Header.Set(middleware.SignatureHeader, signBody(cronTestSecret, body))

	code, _, err := suite.serveCronRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusInternalServerError, code)
}
