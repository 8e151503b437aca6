package lightning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LNDClient — реализация Client поверх REST API ноды LND.
// Аутентификация — hex-кодированный macaroon в заголовке Grpc-Metadata-macaroon.
type LNDClient struct {
	baseURL  string
	macaroon string
	http     *http.Client
}

// NewLNDClient создаёт клиент LND REST.
// baseURL — адрес REST-прокси ноды (например, https://lnd:8080),
// macaroon — hex-строка admin/invoice macaroon.
func NewLNDClient(baseURL, macaroon string, timeout time.Duration) *LNDClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &LNDClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		macaroon: macaroon,
		http:     &http.Client{Timeout: timeout},
	}
}

// Connect устанавливает соединение с пиром (pubkey@host:port).
func (c *LNDClient) Connect(ctx context.Context, peer string) error {
	const op = "lightning.LNDClient.Connect"

	pubkey, host, ok := strings.Cut(peer, "@")
	if !ok {
		return fmt.Errorf("%s: malformed peer %q", op, peer)
	}

	body := map[string]any{
		"addr": map[string]string{"pubkey": pubkey, "host": host},
	}

	if err := c.do(ctx, http.MethodPost, "/v1/peers", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DepositAddress запрашивает новый ончейн-адрес.
func (c *LNDClient) DepositAddress(ctx context.Context) (string, error) {
	const op = "lightning.LNDClient.DepositAddress"

	var resp struct {
		Address string `json:"address"`
	}

	if err := c.do(ctx, http.MethodGet, "/v1/newaddress", nil, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return resp.Address, nil
}

// Pay оплачивает payment request синхронно.
func (c *LNDClient) Pay(ctx context.Context, invoice string) (*PaymentResult, error) {
	const op = "lightning.LNDClient.Pay"

	body := map[string]string{"payment_request": invoice}

	var resp struct {
		PaymentError    string `json:"payment_error"`
		PaymentPreimage string `json:"payment_preimage"`
		PaymentHash     string `json:"payment_hash"`
		PaymentRoute    *struct {
			TotalFees string `json:"total_fees"`
			TotalAmt  string `json:"total_amt"`
			Hops      []any  `json:"hops"`
		} `json:"payment_route"`
	}

	if err := c.do(ctx, http.MethodPost, "/v1/channels/transactions", body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.PaymentError != "" {
		if strings.Contains(strings.ToLower(resp.PaymentError), "route") {
			return nil, fmt.Errorf("%s: %s: %w", op, resp.PaymentError, ErrNoRoute)
		}

		return nil, fmt.Errorf("%s: %s: %w", op, resp.PaymentError, ErrPaymentFailed)
	}

	result := &PaymentResult{
		Preimage:    base64ToHex(resp.PaymentPreimage),
		PaymentHash: base64ToHex(resp.PaymentHash),
	}

	if resp.PaymentRoute != nil {
		fees := parseInt(resp.PaymentRoute.TotalFees)
		result.FeePaid = fees
		result.Route = &Route{
			TotalAmount: parseInt(resp.PaymentRoute.TotalAmt),
			TotalFees:   fees,
			Hops:        len(resp.PaymentRoute.Hops),
		}
	}

	return result, nil
}

// CreateInvoice выпускает инвойс на приём средств.
func (c *LNDClient) CreateInvoice(ctx context.Context, amount int64, description string, expiry time.Duration) (*Invoice, error) {
	const op = "lightning.LNDClient.CreateInvoice"

	body := map[string]any{
		"value":  strconv.FormatInt(amount, 10),
		"memo":   description,
		"expiry": strconv.FormatInt(int64(expiry/time.Second), 10),
	}

	var resp struct {
		PaymentRequest string `json:"payment_request"`
		RHash          string `json:"r_hash"`
	}

	if err := c.do(ctx, http.MethodPost, "/v1/invoices", body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Invoice{
		PaymentRequest: resp.PaymentRequest,
		PaymentHash:    base64ToHex(resp.RHash),
		Amount:         amount,
		Description:    description,
		Timestamp:      time.Now().UTC(),
		Expiry:         expiry,
	}, nil
}

// DecodeInvoice расшифровывает payment request без оплаты.
func (c *LNDClient) DecodeInvoice(ctx context.Context, invoice string) (*Invoice, error) {
	const op = "lightning.LNDClient.DecodeInvoice"

	var resp struct {
		Destination string `json:"destination"`
		PaymentHash string `json:"payment_hash"`
		NumSatoshis string `json:"num_satoshis"`
		Timestamp   string `json:"timestamp"`
		Expiry      string `json:"expiry"`
		Description string `json:"description"`
	}

	if err := c.do(ctx, http.MethodGet, "/v1/payreq/"+url.PathEscape(invoice), nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	return &Invoice{
		PaymentRequest: invoice,
		PaymentHash:    resp.PaymentHash,
		Destination:    resp.Destination,
		Amount:         parseInt(resp.NumSatoshis),
		Description:    resp.Description,
		Timestamp:      time.Unix(parseInt(resp.Timestamp), 0).UTC(),
		Expiry:         time.Duration(parseInt(resp.Expiry)) * time.Second,
	}, nil
}

// QueryRoute ищет маршрут до получателя на заданную сумму.
func (c *LNDClient) QueryRoute(ctx context.Context, destination string, amount int64) (*Route, error) {
	const op = "lightning.LNDClient.QueryRoute"

	path := fmt.Sprintf("/v1/graph/routes/%s/%d", url.PathEscape(destination), amount)

	var resp struct {
		Routes []struct {
			TotalFees string `json:"total_fees"`
			TotalAmt  string `json:"total_amt"`
			Hops      []any  `json:"hops"`
		} `json:"routes"`
	}

	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRoute)
	}

	best := resp.Routes[0]
	return &Route{
		TotalAmount: parseInt(best.TotalAmt),
		TotalFees:   parseInt(best.TotalFees),
		Hops:        len(best.Hops),
	}, nil
}

// InvoiceStatus возвращает состояние инвойса по payment hash (hex).
func (c *LNDClient) InvoiceStatus(ctx context.Context, paymentHash string) (InvoiceState, error) {
	const op = "lightning.LNDClient.InvoiceStatus"

	var resp struct {
		Settled bool   `json:"settled"`
		State   string `json:"state"`
	}

	if err := c.do(ctx, http.MethodGet, "/v1/invoice/"+url.PathEscape(paymentHash), nil, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case resp.Settled || resp.State == "SETTLED":
		return InvoiceSettled, nil
	case resp.State == "CANCELED":
		return InvoiceCanceled, nil
	default:
		return InvoiceOpen, nil
	}
}

// PaymentStatus возвращает состояние исходящего платежа по payment hash.
func (c *LNDClient) PaymentStatus(ctx context.Context, paymentHash string) (PaymentState, error) {
	const op = "lightning.LNDClient.PaymentStatus"

	var resp struct {
		Payments []struct {
			PaymentHash string `json:"payment_hash"`
			Status      string `json:"status"`
		} `json:"payments"`
	}

	if err := c.do(ctx, http.MethodGet, "/v1/payments?include_incomplete=true", nil, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range resp.Payments {
		if p.PaymentHash != paymentHash {
			continue
		}

		switch p.Status {
		case "SUCCEEDED":
			return PaymentSucceeded, nil
		case "FAILED":
			return PaymentFailed, nil
		default:
			return PaymentInFlight, nil
		}
	}

	return PaymentFailed, nil
}

// Info возвращает сводку о ноде.
func (c *LNDClient) Info(ctx context.Context) (*NodeInfo, error) {
	const op = "lightning.LNDClient.Info"

	var resp struct {
		IdentityPubkey string `json:"identity_pubkey"`
		Alias          string `json:"alias"`
		BlockHeight    uint32 `json:"block_height"`
		NumPeers       int    `json:"num_peers"`
		SyncedToChain  bool   `json:"synced_to_chain"`
		Version        string `json:"version"`
	}

	if err := c.do(ctx, http.MethodGet, "/v1/getinfo", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &NodeInfo{
		Pubkey:        resp.IdentityPubkey,
		Alias:         resp.Alias,
		BlockHeight:   resp.BlockHeight,
		NumPeers:      resp.NumPeers,
		SyncedToChain: resp.SyncedToChain,
		Version:       resp.Version,
	}, nil
}

// do выполняет HTTP-запрос к REST API ноды и декодирует JSON-ответ в out.
func (c *LNDClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if c.macaroon != "" {
		req.Header.Set("Grpc-Metadata-macaroon", c.macaroon)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("node responded %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// base64ToHex переводит base64-байты из ответов LND в hex-строку.
// Если вход не base64 (уже hex или пусто) — возвращает его как есть.
func base64ToHex(s string) string {
	if s == "" {
		return s
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}

	return hex.EncodeToString(raw)
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

var _ Client = (*LNDClient)(nil)
