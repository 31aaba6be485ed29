package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"OptionSentinel/internal/model"
)

// HTTPBroker submits bracket orders through the brokerage REST API.
type HTTPBroker struct {
	BaseURL string
	Client  *http.Client
	Session *Session
}

// NewHTTPBroker creates a live order transport sharing the given session.
func NewHTTPBroker(baseURL string, session *Session, timeout time.Duration) *HTTPBroker {
	return &HTTPBroker{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Session: session,
	}
}

func (b *HTTPBroker) Name() string { return "live" }

type orderRequest struct {
	ClientOrderID   string  `json:"clientOrderId"`
	Exchange        string  `json:"exchange"`
	Symbol          string  `json:"symbol"`
	Token           string  `json:"token"`
	TransactionType string  `json:"transactionType"`
	OrderType       string  `json:"orderType"`
	ProductType     string  `json:"productType"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	StopLoss        float64 `json:"stopLoss"`
	SquareOff       float64 `json:"squareOff"`
	TrailingSL      float64 `json:"trailingSL"`
}

type orderResponse struct {
	Status   string  `json:"stat"`
	OrderID  string  `json:"orderId"`
	AvgPrice float64 `json:"avgPrice"`
	Message  string  `json:"emsg"`
}

// SubmitOrder places a buy bracket limit order. A declined order returns
// *OrderRejection; the ledger must not be touched on that path.
func (b *HTTPBroker) SubmitOrder(ctx context.Context, intent *model.OrderIntent) (*model.OrderConfirmation, error) {
	reqBody := orderRequest{
		ClientOrderID:   intent.ClientOrderID,
		Exchange:        intent.Instrument.Exchange,
		Symbol:          intent.Instrument.Symbol,
		Token:           intent.Instrument.Token,
		TransactionType: "BUY",
		OrderType:       "LIMIT",
		ProductType:     "MIS",
		Quantity:        intent.Quantity,
		Price:           intent.LimitPrice,
		StopLoss:        intent.StopLoss,
		SquareOff:       intent.Target,
		TrailingSL:      intent.TrailingStop,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/orders/bracket", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.Session.Token())

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("submit order read body: %w", err)
	}

	var or orderResponse
	if err := json.Unmarshal(respBody, &or); err != nil {
		return nil, fmt.Errorf("submit order decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || or.Status != "Ok" {
		return nil, &OrderRejection{
			Side:   intent.Side,
			Symbol: intent.Instrument.Symbol,
			Reason: or.Message,
		}
	}

	return &model.OrderConfirmation{
		OrderID:   or.OrderID,
		PlacedAt:  time.Now(),
		AvgPrice:  or.AvgPrice,
		ClientRef: intent.ClientOrderID,
	}, nil
}
