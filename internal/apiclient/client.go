// Package apiclient is the typed HTTP client for the remote investor backend.
// All calls share one contract: attach the bearer token, serialize JSON, and
// map every failure onto a small error taxonomy that is also reported to the
// notification sink.
package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/config"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// TokenProvider supplies the current session token. An empty string means the
// client is not authenticated.
type TokenProvider interface {
	Token() string
}

// Client is a resty-backed implementation of the backend contract.
type Client struct {
	httpClient *resty.Client
	tokens     TokenProvider
	notifier   notify.Notifier
	logger     *zap.Logger
}

// New builds a backend client using the provided configuration values.
func New(cfg config.APIConfig, tokens TokenProvider, notifier notify.Notifier, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		httpClient: restyClient,
		tokens:     tokens,
		notifier:   notifier,
		logger:     logger,
	}
}

// errorPayload mirrors the backend's structured error body.
type errorPayload struct {
	Detail string `json:"detail"`
}

// MessageResponse is the generic acknowledgement body for POST operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// tokenResponse is the body of a successful /token call.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// overviewResponse is the body of GET /dashboard/overview.
type overviewResponse struct {
	MonthlyRevenue []models.MonthlyRevenue `json:"monthly_revenue"`
}

type allocationsResponse struct {
	FundAllocations []models.FundAllocation `json:"fund_allocations"`
}

type salesResponse struct {
	Sales []models.SaleRecord `json:"sales"`
}

type reportsResponse struct {
	Reports []models.Report `json:"reports"`
}

// callOptions adjust per-call behavior of do.
type callOptions struct {
	requiresAuth bool
	// quiet suppresses the notification sink for this call; the caller owns
	// the single user-visible notice instead. Used by the data loaders so a
	// fetch failure surfaces once, as the demo-data notice.
	quiet bool
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts callOptions) error {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}

	if opts.requiresAuth && token == "" {
		c.report(opts, "Authentication required", "Please log in to continue")
		return ErrAuthRequired
	}

	apiErr := new(errorPayload)
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)

	if opts.requiresAuth {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("transport failure", zap.String("path", path), zap.Error(err))
		c.report(opts, "API Request Failed", "No response from server")
		return &NetworkError{Err: err}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Detail
		if message == "" {
			message = statusFallbackMessage(resp.StatusCode())
		}
		c.logger.Warn("request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", message))
		c.report(opts, "API Request Failed", message)
		return &RequestError{Status: resp.StatusCode(), Message: message}
	}

	return nil
}

func (c *Client) report(opts callOptions, title, message string) {
	if opts.quiet {
		return
	}
	c.notifyError(title, message)
}

func (c *Client) notifyError(title, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Error(title, message)
}

// Register creates a new account. It does not authenticate it.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	out := new(MessageResponse)
	return c.do(ctx, http.MethodPost, "/register", body, out, callOptions{})
}

// LoginToken exchanges credentials for a session token. The token endpoint is
// form-encoded, not JSON, and never carries a bearer header.
func (c *Client) LoginToken(ctx context.Context, email, password string) (string, error) {
	apiErr := new(errorPayload)
	out := new(tokenResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetError(apiErr).
		SetResult(out).
		Post("/token")
	if err != nil {
		c.logger.Warn("transport failure", zap.String("path", "/token"), zap.Error(err))
		c.notifyError("Login Failed", "No response from server")
		return "", &NetworkError{Err: err}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Detail
		if message == "" {
			message = statusFallbackMessage(resp.StatusCode())
		}
		c.logger.Warn("login rejected", zap.Int("status", resp.StatusCode()), zap.String("message", message))
		c.notifyError("Login Failed", message)
		return "", &RequestError{Status: resp.StatusCode(), Message: message}
	}

	return out.AccessToken, nil
}

// GetOverview fetches the dashboard monthly revenue series. Quiet: the
// dashboard loader owns failure surfacing.
func (c *Client) GetOverview(ctx context.Context) ([]models.MonthlyRevenue, error) {
	out := new(overviewResponse)
	err := c.do(ctx, http.MethodGet, "/dashboard/overview", nil, out, callOptions{requiresAuth: true, quiet: true})
	if err != nil {
		return nil, err
	}
	return out.MonthlyRevenue, nil
}

// GetFundAllocations fetches the allocation list.
func (c *Client) GetFundAllocations(ctx context.Context) ([]models.FundAllocation, error) {
	out := new(allocationsResponse)
	err := c.do(ctx, http.MethodGet, "/investors/fund-allocation", nil, out, callOptions{requiresAuth: true, quiet: true})
	if err != nil {
		return nil, err
	}
	return out.FundAllocations, nil
}

// AddFundAllocation records a new allocation.
func (c *Client) AddFundAllocation(ctx context.Context, req models.NewAllocationRequest) error {
	out := new(MessageResponse)
	return c.do(ctx, http.MethodPost, "/investors/fund-allocation", req, out, callOptions{requiresAuth: true})
}

// GetSales fetches the sale list.
func (c *Client) GetSales(ctx context.Context) ([]models.SaleRecord, error) {
	out := new(salesResponse)
	err := c.do(ctx, http.MethodGet, "/sales/revenue", nil, out, callOptions{requiresAuth: true, quiet: true})
	if err != nil {
		return nil, err
	}
	return out.Sales, nil
}

// AddSale records a new sale.
func (c *Client) AddSale(ctx context.Context, req models.NewSaleRequest) error {
	out := new(MessageResponse)
	return c.do(ctx, http.MethodPost, "/sales/revenue", req, out, callOptions{requiresAuth: true})
}

// GetReports fetches the report list.
func (c *Client) GetReports(ctx context.Context) ([]models.Report, error) {
	out := new(reportsResponse)
	err := c.do(ctx, http.MethodGet, "/reports", nil, out, callOptions{requiresAuth: true, quiet: true})
	if err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// AddReport creates a new report draft.
func (c *Client) AddReport(ctx context.Context, req models.NewReportRequest) error {
	out := new(MessageResponse)
	return c.do(ctx, http.MethodPost, "/reports", req, out, callOptions{requiresAuth: true})
}
