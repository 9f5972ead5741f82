package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/middlewares"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/payments"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/routing"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
)

const testSecret = "test-secret"

type approveAllGateway struct{ n int }

func (g *approveAllGateway) CreateIntent(_ context.Context, _ uint, amount float64) (*payments.Intent, error) {
	g.n++
	return &payments.Intent{ID: fmt.Sprintf("intent-%d", g.n), Amount: amount}, nil
}
func (g *approveAllGateway) ConfirmIntent(context.Context, string) error { return nil }

// testRouter wires the real controllers and middleware over a throwaway db,
// with offline collaborators.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Ride{}, &entity.PaymentHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	rideRepo := repository.NewRideRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authSvc := services.NewAuthService(userRepo, testSecret, time.Hour)
	driverSvc := services.NewDriverService(userRepo)
	rideSvc := services.NewRideService(db, rideRepo, userRepo,
		routing.NewEstimator(routing.StaticGeocoder{}), services.NopNotifier{})
	paymentSvc := services.NewPaymentService(db, rideRepo, paymentRepo, &approveAllGateway{})

	authCtrl := NewAuthController(authSvc)
	rideCtrl := NewRideController(rideSvc)
	driverCtrl := NewDriverController(driverSvc)
	paymentCtrl := NewPaymentController(paymentSvc)
	adminCtrl := NewAdminController(rideSvc)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	authOnly := middlewares.AuthMiddleware(testSecret)
	userOnly := middlewares.AuthMiddleware(testSecret, entity.RoleUser)
	driverOnly := middlewares.AuthMiddleware(testSecret, entity.RoleDriver)
	adminOnly := middlewares.AuthMiddleware(testSecret, entity.RoleAdmin)

	api := r.Group("/api")
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/auth/profile", authOnly, authCtrl.Profile)
	api.POST("/ride/book", userOnly, rideCtrl.Book)
	api.POST("/ride/accept/:id", driverOnly, rideCtrl.Accept)
	api.POST("/ride/cancel/:id", userOnly, rideCtrl.Cancel)
	api.GET("/ride/current", authOnly, rideCtrl.Current)
	api.GET("/ride/available", driverOnly, rideCtrl.Available)
	api.GET("/driver/available", userOnly, driverCtrl.Available)
	api.POST("/payment/initiate/:id", userOnly, paymentCtrl.Initiate)
	api.POST("/payment/confirm", userOnly, paymentCtrl.Confirm)
	api.GET("/payment/history", adminOnly, paymentCtrl.History)
	api.GET("/admin/rides", adminOnly, adminCtrl.AllRides)

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAccount(t *testing.T, r *gin.Engine, body map[string]any) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %v: code = %d body = %s", body["email"], w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return out.Token
}

func riderBody(email string) map[string]any {
	return map[string]any{
		"name": "Rider", "email": email, "password": "secret123", "phone": "555-0101",
	}
}

func driverBody(email string) map[string]any {
	return map[string]any{
		"name": "Driver", "email": email, "password": "secret123", "phone": "555-0102",
		"role": "driver", "licenseNumber": "X123",
		"vehicleDetails": map[string]any{"make": "Toyota", "model": "Prius", "year": 2020, "plateNumber": "KA-01"},
	}
}

func TestRegisterValidation(t *testing.T) {
	r := testRouter(t)

	// missing license for a driver
	body := driverBody("d@example.com")
	delete(body, "licenseNumber")
	if w := do(t, r, http.MethodPost, "/api/auth/register", "", body); w.Code != http.StatusBadRequest {
		t.Errorf("driver without license: code = %d, want 400", w.Code)
	}

	// duplicate email
	registerAccount(t, r, riderBody("a@example.com"))
	if w := do(t, r, http.MethodPost, "/api/auth/register", "", riderBody("a@example.com")); w.Code != http.StatusConflict {
		t.Errorf("duplicate email: code = %d, want 409", w.Code)
	}

	// malformed email
	bad := riderBody("not-an-email")
	if w := do(t, r, http.MethodPost, "/api/auth/register", "", bad); w.Code != http.StatusBadRequest {
		t.Errorf("bad email: code = %d, want 400", w.Code)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	r := testRouter(t)
	token := registerAccount(t, r, riderBody("a@example.com"))

	if w := do(t, r, http.MethodGet, "/api/auth/profile", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: code = %d, want 401", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile: code = %d body = %s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Errorf("profile must not expose the credential: %s", w.Body.String())
	}
}

func TestBookAcceptPaymentFlow(t *testing.T) {
	r := testRouter(t)
	riderToken := registerAccount(t, r, riderBody("a@example.com"))
	driverToken := registerAccount(t, r, driverBody("d@example.com"))

	// drivers cannot book
	if w := do(t, r, http.MethodPost, "/api/ride/book", driverToken, map[string]any{
		"pickup": "P", "dropoff": "Q", "paymentMethod": "card",
	}); w.Code != http.StatusForbidden {
		t.Errorf("driver booking: code = %d, want 403", w.Code)
	}

	w := do(t, r, http.MethodPost, "/api/ride/book", riderToken, map[string]any{
		"pickup": "P", "dropoff": "Q", "paymentMethod": "card",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: code = %d body = %s", w.Code, w.Body.String())
	}
	var booked struct {
		Data entity.Ride `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &booked); err != nil {
		t.Fatalf("decode ride: %v", err)
	}
	if booked.Data.Status != entity.RideRequested {
		t.Fatalf("status = %q, want requested", booked.Data.Status)
	}

	// driver sees it among available rides, then accepts
	if w := do(t, r, http.MethodGet, "/api/ride/available", driverToken, nil); w.Code != http.StatusOK {
		t.Fatalf("available rides: code = %d", w.Code)
	}
	acceptPath := fmt.Sprintf("/api/ride/accept/%d", booked.Data.ID)
	if w := do(t, r, http.MethodPost, acceptPath, driverToken, nil); w.Code != http.StatusOK {
		t.Fatalf("accept: code = %d body = %s", w.Code, w.Body.String())
	}
	// double accept is a conflict/not-available for the same caller too
	if w := do(t, r, http.MethodPost, acceptPath, driverToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("double accept: code = %d, want 404", w.Code)
	}

	// rider pays
	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/payment/initiate/%d", booked.Data.ID), riderToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("initiate: code = %d body = %s", w.Code, w.Body.String())
	}
	var initiated struct {
		Data struct {
			PaymentID string  `json:"paymentId"`
			Amount    float64 `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &initiated); err != nil {
		t.Fatalf("decode initiate: %v", err)
	}
	if initiated.Data.PaymentID == "" {
		t.Fatal("initiate should return a payment id")
	}

	w = do(t, r, http.MethodPost, "/api/payment/confirm", riderToken, map[string]any{
		"paymentId": initiated.Data.PaymentID, "rideId": booked.Data.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: code = %d body = %s", w.Code, w.Body.String())
	}

	// replayed confirm is rejected
	w = do(t, r, http.MethodPost, "/api/payment/confirm", riderToken, map[string]any{
		"paymentId": initiated.Data.PaymentID, "rideId": booked.Data.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("replayed confirm: code = %d, want 400", w.Code)
	}
}

func TestDriverAvailableEmptyIs404(t *testing.T) {
	r := testRouter(t)
	riderToken := registerAccount(t, r, riderBody("a@example.com"))

	if w := do(t, r, http.MethodGet, "/api/driver/available", riderToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("no drivers: code = %d, want 404", w.Code)
	}

	registerAccount(t, r, driverBody("d@example.com"))
	if w := do(t, r, http.MethodGet, "/api/driver/available", riderToken, nil); w.Code != http.StatusOK {
		t.Errorf("with driver: code = %d, want 200", w.Code)
	}
}

func TestAdminSurfaceIsRoleFenced(t *testing.T) {
	r := testRouter(t)
	riderToken := registerAccount(t, r, riderBody("a@example.com"))

	if w := do(t, r, http.MethodGet, "/api/admin/rides", riderToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("rider on admin route: code = %d, want 403", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/payment/history", riderToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("rider on payment history: code = %d, want 403", w.Code)
	}
}
