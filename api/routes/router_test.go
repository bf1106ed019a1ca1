package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/internal/couriers"
	internalfinance "github.com/dispatchly/dispatchly-backend/internal/finance"
	internalnotes "github.com/dispatchly/dispatchly-backend/internal/notes"
	internalorders "github.com/dispatchly/dispatchly-backend/internal/orders"
	internalpayroll "github.com/dispatchly/dispatchly-backend/internal/payroll"
	pkgauth "github.com/dispatchly/dispatchly-backend/pkg/auth"
	"github.com/dispatchly/dispatchly-backend/pkg/config"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCourierRepo struct {
	courier *models.DeliveryMan
}

func (s *stubCourierRepo) WithTx(tx *gorm.DB) couriers.Repository {
	return s
}

func (s *stubCourierRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCourierRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCourierRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryMan, error) {
	if s.courier == nil || s.courier.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.courier, nil
}

func (s *stubCourierRepo) CreditDelivery(ctx context.Context, id uuid.UUID, baseFeeCents, codCents int64) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Accept(ctx context.Context, input internalorders.AcceptInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) Reject(ctx context.Context, input internalorders.RejectInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) SetStatus(ctx context.Context, input internalorders.SetStatusInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) ListAttempts(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryAttempt, error) {
	return nil, nil
}

func (stubOrdersService) ListAssigned(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

func (stubOrdersService) ListQueue(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

type stubFinanceService struct{}

func (stubFinanceService) SettleDelivery(ctx context.Context, tx *gorm.DB, order *models.Order, actor *models.DeliveryMan) error {
	return nil
}

func (stubFinanceService) PayEarnings(ctx context.Context, input internalfinance.SettlementInput) (*models.MoneyTransfer, error) {
	return &models.MoneyTransfer{}, nil
}

func (stubFinanceService) CollectCOD(ctx context.Context, input internalfinance.SettlementInput) (*models.MoneyTransfer, error) {
	return &models.MoneyTransfer{}, nil
}

func (stubFinanceService) Summary(ctx context.Context, deliveryManID uuid.UUID) (*internalfinance.Summary, error) {
	return &internalfinance.Summary{}, nil
}

func (stubFinanceService) PayMerchant(ctx context.Context, input internalfinance.MerchantPayoutInput) (*models.MoneyTransfer, error) {
	return &models.MoneyTransfer{}, nil
}

type stubNotesService struct{}

func (stubNotesService) Add(ctx context.Context, input internalnotes.AddInput) (*models.DeliveryNote, error) {
	return &models.DeliveryNote{}, nil
}

func (stubNotesService) List(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryNote, error) {
	return nil, nil
}

type stubPayrollService struct{}

func (stubPayrollService) Balance(ctx context.Context, workerID uuid.UUID) (*internalpayroll.BalanceReport, error) {
	return &internalpayroll.BalanceReport{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func newTestRouter(courier *models.DeliveryMan) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		nil,
		nil,
		nil,
		&stubCourierRepo{courier: courier},
		stubOrdersService{},
		stubFinanceService{},
		stubNotesService{},
		stubPayrollService{},
	)
}

func mintToken(t *testing.T, role enums.ActorRole, userID uuid.UUID) string {
	t.Helper()

	cfg := testConfig()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestDeliveryGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDeliveryGroupRejectsAdminRole(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.ActorRoleAdmin, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestDeliveryGroupRejectsUnknownCourier(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.ActorRoleDeliveryMan, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDeliveryOrdersSucceedsForActiveCourier(t *testing.T) {
	courier := &models.DeliveryMan{ID: uuid.New(), UserID: uuid.New(), Active: true}
	router := newTestRouter(courier)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.ActorRoleDeliveryMan, courier.UserID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/workers/"+uuid.NewString()+"/balance", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.ActorRoleDeliveryMan, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminWorkerBalanceSucceeds(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/workers/"+uuid.NewString()+"/balance", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.ActorRoleAdmin, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
