package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"OptionSentinel/internal/model"
)

// TokenSource yields the current authenticated session token.
type TokenSource interface {
	Token() string
}

// HTTPFetcher implements Fetcher against the brokerage REST data API.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
	Session TokenSource
}

// NewHTTPFetcher creates a fetcher for the brokerage historical/quote endpoints.
func NewHTTPFetcher(baseURL string, session TokenSource, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Session: session,
	}
}

func (f *HTTPFetcher) Name() string { return "broker-api" }

// candleResponse is the shape of the historical-data endpoint payload.
type candleResponse struct {
	Status string `json:"stat"`
	Result []struct {
		Time  int64   `json:"time"`
		Close float64 `json:"close"`
	} `json:"result"`
	Message string `json:"emsg"`
}

// ltpResponse is the shape of the last-traded-price endpoint payload.
type ltpResponse struct {
	Status  string  `json:"stat"`
	LTP     float64 `json:"ltp"`
	Message string  `json:"emsg"`
}

func (f *HTTPFetcher) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", f.BaseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+f.Session.Token())

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrDataUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d, body: %s", ErrDataUnavailable, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrDataUnavailable, err)
	}
	return nil
}

// FetchSeries returns the close-price series for the instrument at the given
// interval, oldest first.
func (f *HTTPFetcher) FetchSeries(ctx context.Context, inst model.Instrument, tf model.Timeframe, lookbackDays int) ([]model.ClosePoint, error) {
	q := url.Values{}
	q.Set("exchange", inst.Exchange)
	q.Set("token", inst.Token)
	q.Set("interval", string(tf))
	q.Set("from", time.Now().AddDate(0, 0, -lookbackDays).Format("02-01-2006"))
	q.Set("to", time.Now().Format("02-01-2006"))

	var cr candleResponse
	if err := f.get(ctx, "/chart/history", q, &cr); err != nil {
		return nil, err
	}
	if cr.Status != "Ok" {
		return nil, fmt.Errorf("%w: api error: %s", ErrDataUnavailable, cr.Message)
	}
	if len(cr.Result) == 0 {
		return nil, fmt.Errorf("%w: empty series for %s %s", ErrDataUnavailable, inst.Symbol, tf)
	}

	pts := make([]model.ClosePoint, 0, len(cr.Result))
	for _, c := range cr.Result {
		if c.Close == 0 {
			continue // skip null bars
		}
		pts = append(pts, model.ClosePoint{Time: time.Unix(c.Time, 0), Close: c.Close})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })
	return pts, nil
}

// FetchLTP returns the instrument's last traded price.
func (f *HTTPFetcher) FetchLTP(ctx context.Context, inst model.Instrument) (float64, error) {
	q := url.Values{}
	q.Set("exchange", inst.Exchange)
	q.Set("token", inst.Token)

	var lr ltpResponse
	if err := f.get(ctx, "/quote/ltp", q, &lr); err != nil {
		return 0, err
	}
	if lr.Status != "Ok" {
		return 0, fmt.Errorf("%w: api error: %s", ErrDataUnavailable, lr.Message)
	}
	if lr.LTP <= 0 {
		return 0, fmt.Errorf("%w: non-positive ltp for %s", ErrDataUnavailable, inst.Symbol)
	}
	return lr.LTP, nil
}
