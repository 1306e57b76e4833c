package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"creditpool/internal/domain/errs"
	walletDomain "creditpool/internal/domain/wallet"

	"github.com/shopspring/decimal"
)

// Client talks to the chat platform's wallet API. Transfers are keyed by
// the caller's idempotency key, which the platform deduplicates, so a
// retried call moves tokens at most once.
type Client struct {
	baseURL     string
	botID       string
	minTransfer decimal.Decimal
	http        *http.Client
}

var _ walletDomain.Gateway = (*Client)(nil)

func NewClient(baseURL, botID string, minTransfer decimal.Decimal, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		botID:       botID,
		minTransfer: minTransfer,
		http:        &http.Client{Timeout: timeout},
	}
}

type transferRequest struct {
	FromID         string          `json:"from_id"`
	ToID           string          `json:"to_id"`
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotency_key"`
	Note           string          `json:"note,omitempty"`
}

type transferResponse struct {
	TransactionID string           `json:"transaction_id"`
	BalanceAfter  *decimal.Decimal `json:"balance_after,omitempty"`
	Error         string           `json:"error,omitempty"`
}

func (c *Client) TransferUserToBot(ctx context.Context, fromPlatformID string, amount decimal.Decimal, idemKey string) (*walletDomain.TransferResult, error) {
	return c.transfer(ctx, transferRequest{
		FromID:         fromPlatformID,
		ToID:           c.botID,
		Amount:         amount,
		IdempotencyKey: idemKey,
		Note:           "Transfer to bot with idempotency key: " + idemKey,
	})
}

func (c *Client) TransferBotToUser(ctx context.Context, toPlatformID string, amount decimal.Decimal, idemKey string) (*walletDomain.TransferResult, error) {
	return c.transfer(ctx, transferRequest{
		FromID:         c.botID,
		ToID:           toPlatformID,
		Amount:         amount,
		IdempotencyKey: idemKey,
		Note:           "Bot payout with idempotency key: " + idemKey,
	})
}

func (c *Client) transfer(ctx context.Context, body transferRequest) (*walletDomain.TransferResult, error) {
	// guard before any network I/O
	if body.Amount.LessThan(c.minTransfer) {
		return nil, errs.Validation("minimum transfer amount is %s", c.minTransfer.StringFixed(0))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transfers", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet transfer: %w", err)
	}
	defer resp.Body.Close()

	var out transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("wallet transfer: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		reason := out.Error
		if reason == "" {
			reason = resp.Status
		}
		return nil, fmt.Errorf("wallet transfer: %s", reason)
	}
	return &walletDomain.TransferResult{
		ExternalTxID: out.TransactionID,
		BalanceAfter: out.BalanceAfter,
	}, nil
}

type balanceResponse struct {
	Balance *decimal.Decimal `json:"balance"`
}

// UserBalance returns BalanceUnknown (nil error) whenever the platform
// cannot report a figure; callers skip their check in that case.
func (c *Client) UserBalance(ctx context.Context, platformID string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users/"+platformID+"/balance", nil)
	if err != nil {
		return walletDomain.BalanceUnknown, nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return walletDomain.BalanceUnknown, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return walletDomain.BalanceUnknown, nil
	}
	var out balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Balance == nil {
		return walletDomain.BalanceUnknown, nil
	}
	return *out.Balance, nil
}
