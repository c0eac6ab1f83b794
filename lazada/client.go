package lazada

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	signMethod       = "sha256"
	defaultPartnerID = "lazop-sdk-go"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 1 << 20
)

// Client performs signed calls against the Lazada Open Platform.
type Client struct {
	serverURL  string
	appKey     string
	appSecret  string
	partnerID  string
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout. The client is copied first so a
// shared *http.Client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

func WithPartnerID(id string) Option {
	return func(c *Client) { c.partnerID = id }
}

// WithClock overrides the timestamp source used for signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a client for serverURL, e.g. https://auth.lazada.com/rest.
func NewClient(serverURL, appKey, appSecret string, opts ...Option) *Client {
	c := &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		appKey:     appKey,
		appSecret:  appSecret,
		partnerID:  defaultPartnerID,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request is a single API call. Method defaults to POST.
type Request struct {
	APIName string
	Method  string
	params  map[string]string
}

func NewRequest(apiName string) *Request {
	return &Request{
		APIName: apiName,
		Method:  http.MethodPost,
		params:  make(map[string]string),
	}
}

// AddParam attaches an application-level parameter.
func (r *Request) AddParam(key, value string) {
	r.params[key] = value
}

// Response is the decoded envelope of an API reply. Body keeps the raw JSON
// exactly as the provider sent it.
type Response struct {
	Code       string
	Type       string
	Message    string
	RequestID  string
	Body       json.RawMessage
	ReceivedAt time.Time
}

// APIError is returned when the provider answers with a non-zero code.
type APIError struct {
	Code      string
	Type      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("lazada api error %s", e.Code)
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " [request_id=" + e.RequestID + "]"
	}
	return msg
}

// Sign computes the request signature: parameters sorted by key, concatenated
// as key+value after the API name, HMAC-SHA256 with the app secret, upper hex.
func Sign(secret, apiName string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(apiName)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// Execute signs and sends req. accessToken may be empty for calls that do not
// act on behalf of a seller.
func (c *Client) Execute(ctx context.Context, req *Request, accessToken string) (*Response, error) {
	params := map[string]string{
		"app_key":     c.appKey,
		"sign_method": signMethod,
		"timestamp":   strconv.FormatInt(c.now().UnixMilli(), 10),
		"partner_id":  c.partnerID,
	}
	if accessToken != "" {
		params["access_token"] = accessToken
	}
	for k, v := range req.params {
		params[k] = v
	}
	params["sign"] = Sign(c.appSecret, req.APIName, params)

	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}

	endpoint := c.serverURL + req.APIName
	var (
		httpReq *http.Request
		err     error
	)
	if req.Method == http.MethodGet {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", req.APIName, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", req.APIName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.APIName, err)
	}

	var envelope *struct {
		Code      json.RawMessage `json:"code"`
		Type      string          `json:"type"`
		Message   string          `json:"message"`
		RequestID string          `json:"request_id"`
	}
	decodeErr := json.Unmarshal(body, &envelope)

	code := ""
	if decodeErr == nil && envelope != nil {
		if raw := string(envelope.Code); raw != "null" {
			code = strings.Trim(raw, `"`)
		}
	}
	if code != "" && code != "0" {
		return nil, &APIError{
			Code:      code,
			Type:      envelope.Type,
			Message:   envelope.Message,
			RequestID: envelope.RequestID,
		}
	}

	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("%s returned status %d: %s", req.APIName, resp.StatusCode, strings.TrimSpace(string(body)))
	case decodeErr != nil:
		return nil, fmt.Errorf("decode %s response: %w", req.APIName, decodeErr)
	case envelope == nil:
		return nil, fmt.Errorf("decode %s response: empty body", req.APIName)
	case code == "":
		return nil, fmt.Errorf("decode %s response: missing code", req.APIName)
	}

	return &Response{
		Code:       code,
		Type:       envelope.Type,
		Message:    envelope.Message,
		RequestID:  envelope.RequestID,
		Body:       json.RawMessage(body),
		ReceivedAt: c.now(),
	}, nil
}
