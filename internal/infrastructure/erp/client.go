package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/sync"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response
	// pageLimit is the page size used when following paginated listings
	pageLimit = 1000
	// defaultTimeout is the per-call timeout applied when none is configured
	defaultTimeout = 45 * time.Second
)

// Config holds the connection settings for the remote ERP.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is the HTTP implementation of the sync.Gateway port. Every call is
// written to the audit logger, request and outcome; audit failures never
// reach the caller (zap sinks swallow their own write errors).
type Client struct {
	config     Config
	httpClient *http.Client
	audit      *zap.Logger
}

// NewClient creates a new ERP client. The audit logger may not be nil; pass
// zap.NewNop() to disable auditing.
func NewClient(config Config, audit *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		audit:      audit,
	}
}

// listEnvelope is the common shape of ERP listing responses.
type listEnvelope struct {
	Data       []json.RawMessage `json:"data"`
	Pagination *struct {
		NextPage *int `json:"nextPage"`
	} `json:"pagination"`
}

// do sends one authenticated JSON request and returns the raw response body.
// Credentials are checked before any network attempt. A status >= 400 maps
// to *sync.RemoteError with the decoded body preserved for the audit trail.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	if c.config.BaseURL == "" || c.config.Token == "" {
		c.audit.Error("api credentials are not set")
		return nil, sync.ErrCredentialsMissing
	}

	requestURL := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + endpoint

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("erp: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("erp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	c.audit.Debug("sending api request",
		zap.String("method", method),
		zap.String("url", requestURL),
		zap.Any("body", body),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.audit.Error("transport failure during api request", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", sync.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.audit.Error("failed reading api response", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", sync.ErrTransport, err)
	}

	if resp.StatusCode >= 400 {
		c.audit.Error("api returned an error code",
			zap.Int("response_code", resp.StatusCode),
			zap.Any("request_body", body),
			zap.ByteString("response_body", raw),
		)
		return nil, &sync.RemoteError{Status: resp.StatusCode, Body: string(raw)}
	}

	c.audit.Debug("api request successful",
		zap.Int("response_code", resp.StatusCode),
		zap.ByteString("response_body", raw),
	)
	return raw, nil
}

// paginate follows a paginated listing, requesting pages from 1 upward while
// the response signals a nextPage. It returns whatever was accumulated when
// a page errors or comes back empty: a paginated fetch degrades silently to
// the records fetched so far rather than failing the caller.
func (c *Client) paginate(ctx context.Context, endpoint string, query url.Values) []json.RawMessage {
	var records []json.RawMessage
	page := 1
	for {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("limit", fmt.Sprintf("%d", pageLimit))
		q.Set("page", fmt.Sprintf("%d", page))

		raw, err := c.do(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
		if err != nil {
			return records
		}
		var envelope listEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Data) == 0 {
			return records
		}
		records = append(records, envelope.Data...)

		if envelope.Pagination == nil || envelope.Pagination.NextPage == nil {
			return records
		}
		page++
	}
}

// search issues a filtered GET and returns the data entries.
func (c *Client) search(ctx context.Context, endpoint, filter string) ([]json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint+"?filter="+url.QueryEscape(filter), nil)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erp: decode search response: %w", err)
	}
	return envelope.Data, nil
}

// ---------------------------------------------------------------------------
// Partner Operations
// ---------------------------------------------------------------------------

// FindPartnersByPhone searches partners by the mobile field and falls back
// to the phone field when the first search yields nothing.
func (c *Client) FindPartnersByPhone(ctx context.Context, phone string) ([]sync.RemotePartner, error) {
	records, err := c.search(ctx, "resources/partner", "mobile*"+phone)
	if err == nil && len(records) > 0 {
		return decodePartners(records)
	}
	records, err = c.search(ctx, "resources/partner", "phone*"+phone)
	if err != nil {
		return nil, err
	}
	return decodePartners(records)
}

// FindPartnersByEmail searches partners by email substring.
func (c *Client) FindPartnersByEmail(ctx context.Context, email string) ([]sync.RemotePartner, error) {
	records, err := c.search(ctx, "resources/partner", "email*"+email)
	if err != nil {
		return nil, err
	}
	return decodePartners(records)
}

func decodePartners(records []json.RawMessage) ([]sync.RemotePartner, error) {
	partners := make([]sync.RemotePartner, 0, len(records))
	for _, record := range records {
		var p sync.RemotePartner
		if err := json.Unmarshal(record, &p); err != nil {
			return nil, fmt.Errorf("erp: decode partner record: %w", err)
		}
		partners = append(partners, p)
	}
	return partners, nil
}

// CreatePartner creates a partner and extracts the new id from the response.
func (c *Client) CreatePartner(ctx context.Context, draft sync.PartnerDraft) (int, error) {
	raw, err := c.do(ctx, http.MethodPost, "resources/partner", draft)
	if err != nil {
		return 0, err
	}
	id, ok := extractID(raw)
	if !ok {
		c.audit.Error("could not extract id from partner create response",
			zap.ByteString("response", raw))
		return 0, sync.ErrCreateResponseUnparseable
	}
	return id, nil
}

// idExtractor attempts to read a created-resource id from one response shape.
type idExtractor func(json.RawMessage) (int, bool)

// idExtractors are tried in order; the first success wins. The remote is
// known to answer with a bare number, {"id":N} or {"data":{"id":N}}
// depending on the resource and version.
var idExtractors = []idExtractor{
	func(raw json.RawMessage) (int, bool) {
		var id int
		if err := json.Unmarshal(raw, &id); err == nil {
			return id, true
		}
		return 0, false
	},
	func(raw json.RawMessage) (int, bool) {
		var body struct {
			ID *int `json:"id"`
		}
		if err := json.Unmarshal(raw, &body); err == nil && body.ID != nil {
			return *body.ID, true
		}
		return 0, false
	},
	func(raw json.RawMessage) (int, bool) {
		var body struct {
			Data struct {
				ID *int `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &body); err == nil && body.Data.ID != nil {
			return *body.Data.ID, true
		}
		return 0, false
	},
}

func extractID(raw json.RawMessage) (int, bool) {
	for _, extract := range idExtractors {
		if id, ok := extract(raw); ok {
			return id, true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// FindProductsBySKU searches products whose default_code contains the SKU.
// The remote filter is a substring match; callers own exact disambiguation.
func (c *Client) FindProductsBySKU(ctx context.Context, sku string) ([]sync.RemoteProduct, error) {
	records, err := c.search(ctx, "inventory/product", "default_code*"+sku)
	if err != nil {
		return nil, err
	}
	products := make([]sync.RemoteProduct, 0, len(records))
	for _, record := range records {
		var p sync.RemoteProduct
		if err := json.Unmarshal(record, &p); err != nil {
			return nil, fmt.Errorf("erp: decode product record: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// UpdateProduct pushes price/description changes for the given SKU.
func (c *Client) UpdateProduct(ctx context.Context, sku string, update sync.ProductUpdate) error {
	_, err := c.do(ctx, http.MethodPost, "inventory/product?sku="+url.QueryEscape(sku), update)
	return err
}

// ---------------------------------------------------------------------------
// POS Operations
// ---------------------------------------------------------------------------

// CreateSession opens a POS session for the given config template.
func (c *Client) CreateSession(ctx context.Context, configID int) (int, error) {
	raw, err := c.do(ctx, http.MethodPost, "pos/session", map[string]int{"configId": configID})
	if err != nil {
		return 0, err
	}
	id, ok := extractID(raw)
	if !ok {
		return 0, fmt.Errorf("erp: unexpected session create response: %s", string(raw))
	}
	return id, nil
}

// CreateOrder submits the order and returns the remote POS reference, or
// sync.NoReference when the response carries none.
func (c *Client) CreateOrder(ctx context.Context, draft sync.OrderDraft) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "pos/order", draft)
	if err != nil {
		return "", err
	}
	var body []struct {
		POSReference string `json:"pos_reference"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body) == 0 || body[0].POSReference == "" {
		return sync.NoReference, nil
	}
	return body[0].POSReference, nil
}

// ---------------------------------------------------------------------------
// Listing Operations
// ---------------------------------------------------------------------------

// ListCompanies lists remote branches.
func (c *Client) ListCompanies(ctx context.Context) ([]sync.Company, error) {
	raw, err := c.do(ctx, http.MethodGet, "resources/company", nil)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erp: decode company response: %w", err)
	}
	companies := make([]sync.Company, 0, len(envelope.Data))
	for _, record := range envelope.Data {
		var company sync.Company
		if err := json.Unmarshal(record, &company); err != nil {
			return nil, fmt.Errorf("erp: decode company record: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, nil
}

// ListPOSConfigs lists all POS session templates, following pagination.
func (c *Client) ListPOSConfigs(ctx context.Context) ([]sync.POSConfig, error) {
	records := c.paginate(ctx, "pos/config", url.Values{})
	configs := make([]sync.POSConfig, 0, len(records))
	for _, record := range records {
		var cfg sync.POSConfig
		if err := json.Unmarshal(record, &cfg); err != nil {
			return nil, fmt.Errorf("erp: decode pos config record: %w", err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// ListPaymentMethods lists payment methods, optionally filtered by company,
// following pagination.
func (c *Client) ListPaymentMethods(ctx context.Context, companyID int) ([]sync.PaymentMethod, error) {
	query := url.Values{}
	if companyID > 0 {
		query.Set("filter", fmt.Sprintf("company_id=%d", companyID))
	}
	records := c.paginate(ctx, "pos/payment-method", query)
	methods := make([]sync.PaymentMethod, 0, len(records))
	for _, record := range records {
		var method sync.PaymentMethod
		if err := json.Unmarshal(record, &method); err != nil {
			return nil, fmt.Errorf("erp: decode payment method record: %w", err)
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// TestConnection issues a minimal authenticated request to verify the
// configured credentials.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "resources/partner?limit=1", nil)
	return err
}

var _ sync.Gateway = (*Client)(nil)
