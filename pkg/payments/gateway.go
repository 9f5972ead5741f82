// Package payments wraps the external payment gateway. The provider here is
// a mock cart API; the interface is what the payment service depends on.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Intent is an authorization opened with the gateway for a single charge.
type Intent struct {
	ID     string
	Amount float64
}

type Gateway interface {
	CreateIntent(ctx context.Context, userID uint, amount float64) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) error
}

// MockGateway posts to a fakestore-style cart endpoint to simulate a charge.
// Calls are bounded by the client timeout and fail closed.
type MockGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewMockGateway(baseURL string, timeout time.Duration) *MockGateway {
	return &MockGateway{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (g *MockGateway) CreateIntent(ctx context.Context, userID uint, amount float64) (*Intent, error) {
	payload := map[string]any{
		"userId": userID,
		"date":   time.Now().Format("2006-01-02"),
		"products": []map[string]any{
			{"productId": 1, "quantity": 1},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned status %d", res.StatusCode)
	}

	// The mock API returns its own id; tag it with a uuid so intent ids are
	// unique across gateway resets.
	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return nil, err
	}

	return &Intent{
		ID:     fmt.Sprintf("%d-%s", created.ID, uuid.NewString()),
		Amount: amount,
	}, nil
}

func (g *MockGateway) ConfirmIntent(ctx context.Context, intentID string) error {
	body, _ := json.Marshal(map[string]any{"paid": true})

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.BaseURL+"/"+intentID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d", res.StatusCode)
	}
	return nil
}
