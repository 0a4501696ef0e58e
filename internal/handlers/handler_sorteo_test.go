package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/handlers"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/SscSPs/banca_settlement/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SorteoService ---
type MockSorteoService struct {
	mock.Mock
}

func (m *MockSorteoService) sorteoResult(args mock.Arguments) (*domain.Sorteo, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sorteo), args.Error(1)
}

func (m *MockSorteoService) CreateSorteo(ctx context.Context, in domain.NewSorteo, actor domain.Actor) (*domain.Sorteo, error) {
	return m.sorteoResult(m.Called(ctx, in, actor))
}
func (m *MockSorteoService) GetSorteo(ctx context.Context, sorteoID string) (*domain.Sorteo, error) {
	return m.sorteoResult(m.Called(ctx, sorteoID))
}
func (m *MockSorteoService) Open(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error) {
	return m.sorteoResult(m.Called(ctx, sorteoID, actor))
}
func (m *MockSorteoService) ForceOpen(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error) {
	return m.sorteoResult(m.Called(ctx, sorteoID, actor))
}
func (m *MockSorteoService) Evaluate(ctx context.Context, sorteoID string, in domain.EvaluateSorteoInput, actor domain.Actor) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, sorteoID, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}
func (m *MockSorteoService) RevertEvaluation(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, sorteoID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}
func (m *MockSorteoService) CloseWithCascade(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.CloseResult, error) {
	args := m.Called(ctx, sorteoID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseResult), args.Error(1)
}

var _ portssvc.SorteoSvcFacade = (*MockSorteoService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, in domain.NewAccountPayment, actor domain.Actor) (*domain.PaymentResult, error) {
	args := m.Called(ctx, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockPaymentService) ReversePayment(ctx context.Context, paymentID string, actor domain.Actor, reason string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, paymentID, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.AccountPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountPayment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, statementID string, includeReversed bool) ([]domain.AccountPayment, error) {
	args := m.Called(ctx, statementID, includeReversed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountPayment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type SettlementHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	sorteoService *MockSorteoService
	paymentSvc    *MockPaymentService
}

func (suite *SettlementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{JWTSecret: "test-secret-key-that-is-long-enough", JWTIssuer: "banca-test"}

	suite.sorteoService = new(MockSorteoService)
	suite.paymentSvc = new(MockPaymentService)

	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Sorteo:  suite.sorteoService,
		Payment: suite.paymentSvc,
	}, nil)
}

func (suite *SettlementHandlerTestSuite) token(userID string, role domain.Role) string {
	claims := middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    suite.cfg.JWTIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.cfg.JWTSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *SettlementHandlerTestSuite) do(method, url string, body any, bearer string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func isUser(id string) any {
	return mock.MatchedBy(func(a domain.Actor) bool { return a.UserID == id })
}

func (suite *SettlementHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Test Cases ---

func (suite *SettlementHandlerTestSuite) TestRequiresToken() {
	w := suite.do(http.MethodPost, "/api/v1/sorteos/s-1/open", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.sorteoService.AssertNotCalled(suite.T(), "Open")
}

func (suite *SettlementHandlerTestSuite) TestEvaluate_Success() {
	winning := "47"
	suite.sorteoService.On("Evaluate", mock.Anything, "s-1",
		domain.EvaluateSorteoInput{WinningNumber: "47"}, isUser("admin-1"),
	).Return(&domain.EvaluationResult{
		Sorteo:         domain.Sorteo{SorteoID: "s-1", Status: domain.SorteoEvaluated, WinningNumber: &winning},
		WinningLines:   3,
		WinningTickets: 2,
		TotalPayout:    decimal.NewFromInt(15500),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sorteos/s-1/evaluate", dto.EvaluateSorteoRequest{WinningNumber: "47"}, suite.token("admin-1", domain.RoleAdmin))

	suite.Equal(http.StatusOK, w.Code)
	var body domain.EvaluationResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(3, body.WinningLines)
	suite.True(decimal.NewFromInt(15500).Equal(body.TotalPayout))
	suite.Equal(domain.SorteoEvaluated, body.Sorteo.Status)
	suite.sorteoService.AssertExpectations(suite.T())
}

func (suite *SettlementHandlerTestSuite) TestEvaluate_MissingWinningNumber() {
	w := suite.do(http.MethodPost, "/api/v1/sorteos/s-1/evaluate", map[string]string{}, suite.token("admin-1", domain.RoleAdmin))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.sorteoService.AssertNotCalled(suite.T(), "Evaluate")
}

func (suite *SettlementHandlerTestSuite) TestEvaluate_ErrorCodes() {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"side bet without multiplier", apperrors.Newf(apperrors.ErrValidation, "reventado lines need an extra multiplier"), http.StatusUnprocessableEntity, apperrors.CodeValidationConflict},
		{"wrong state", apperrors.Newf(apperrors.ErrInvalidState, "sorteo is CLOSED"), http.StatusConflict, apperrors.CodeInvalidState},
		{"not admin", apperrors.ErrForbidden, http.StatusForbidden, apperrors.CodeForbidden},
		{"missing draw", apperrors.ErrNotFound, http.StatusNotFound, apperrors.CodeNotFound},
		{"database down", apperrors.ErrUnavailable, http.StatusServiceUnavailable, apperrors.CodeUnavailable},
		{"unexpected", errors.New("pq: relation missing"), http.StatusInternalServerError, apperrors.CodeInternal},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.sorteoService.On("Evaluate", mock.Anything, "s-2", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/sorteos/s-2/evaluate", dto.EvaluateSorteoRequest{WinningNumber: "12"}, suite.token("admin-1", domain.RoleAdmin))

			suite.Equal(tc.status, w.Code)
			body := suite.errorBody(w)
			suite.Equal(tc.code, body.Code)
			if tc.status >= http.StatusInternalServerError {
				suite.NotContains(body.Error, "pq:")
			}
		})
	}
}

func (suite *SettlementHandlerTestSuite) TestForceOpen_PassesActor() {
	suite.sorteoService.On("ForceOpen", mock.Anything, "s-3", isUser("ops-7")).
		Return(nil, apperrors.Newf(apperrors.ErrForbidden, "force-open requires the ADMIN role")).Once()

	w := suite.do(http.MethodPost, "/api/v1/sorteos/s-3/force-open", nil, suite.token("ops-7", domain.RoleVentana))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.sorteoService.AssertExpectations(suite.T())
}

func (suite *SettlementHandlerTestSuite) TestCreatePayment_CreatedThenReplayed() {
	key := "settle-1"
	result := &domain.PaymentResult{
		Payment:   domain.AccountPayment{PaymentID: "p-1", Amount: decimal.NewFromInt(680)},
		Statement: domain.AccountStatement{StatementID: "st-1", RemainingBalance: decimal.Zero, IsSettled: true},
	}
	matchInput := mock.MatchedBy(func(in domain.NewAccountPayment) bool {
		return in.Key.VendedorID != nil && *in.Key.VendedorID == "vend-1" &&
			in.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) &&
			in.Amount.Equal(decimal.NewFromInt(680)) &&
			in.IdempotencyKey != nil && *in.IdempotencyKey == key
	})
	suite.paymentSvc.On("CreatePayment", mock.Anything, matchInput, isUser("admin-1")).Return(result, nil).Once()
	replay := *result
	replay.Replayed = true
	suite.paymentSvc.On("CreatePayment", mock.Anything, matchInput, isUser("admin-1")).Return(&replay, nil).Once()

	vend := "vend-1"
	req := dto.CreatePaymentRequest{
		StatementDayRequest: dto.StatementDayRequest{Date: "2026-03-10", VendedorID: &vend},
		Amount:              decimal.NewFromInt(680),
		Type:                domain.PaymentTypePayment,
		Method:              domain.MethodCash,
		IdempotencyKey:      &key,
	}
	tok := suite.token("admin-1", domain.RoleAdmin)

	first := suite.do(http.MethodPost, "/api/v1/payments", req, tok)
	suite.Equal(http.StatusCreated, first.Code)
	second := suite.do(http.MethodPost, "/api/v1/payments", req, tok)
	suite.Equal(http.StatusOK, second.Code)

	var body domain.PaymentResult
	suite.Require().NoError(json.Unmarshal(second.Body.Bytes(), &body))
	suite.True(body.Replayed)
	suite.True(body.Statement.IsSettled)
	suite.paymentSvc.AssertExpectations(suite.T())
}

func (suite *SettlementHandlerTestSuite) TestCreatePayment_BadDate() {
	req := dto.CreatePaymentRequest{
		StatementDayRequest: dto.StatementDayRequest{Date: "10/03/2026"},
		Amount:              decimal.NewFromInt(1),
		Type:                domain.PaymentTypeCollection,
		Method:              domain.MethodCash,
	}
	w := suite.do(http.MethodPost, "/api/v1/payments", req, suite.token("admin-1", domain.RoleAdmin))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.paymentSvc.AssertNotCalled(suite.T(), "CreatePayment")
}

func (suite *SettlementHandlerTestSuite) TestListPayments_EmptyIsArray() {
	suite.paymentSvc.On("ListPayments", mock.Anything, "st-9", true).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/statements/st-9/payments?includeReversed=true", nil, suite.token("admin-1", domain.RoleAdmin))

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"payments":[]}`, w.Body.String())
}

func (suite *SettlementHandlerTestSuite) TestListPayments_RejectsMalformedFlag() {
	w := suite.do(http.MethodGet, "/api/v1/statements/st-9/payments?includeReversed=yes", nil, suite.token("admin-1", domain.RoleAdmin))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w).Error, "includeReversed")
	suite.paymentSvc.AssertNotCalled(suite.T(), "ListPayments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementHandlerTestSuite) TestListPayments_DefaultsToLiveOnly() {
	suite.paymentSvc.On("ListPayments", mock.Anything, "st-9", false).Return([]domain.AccountPayment{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/statements/st-9/payments", nil, suite.token("admin-1", domain.RoleAdmin))

	suite.Equal(http.StatusOK, w.Code)
	suite.paymentSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestSettlementHandlers(t *testing.T) {
	suite.Run(t, new(SettlementHandlerTestSuite))
}
