package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/user"
)

func TestRegisterUserHandler(t *testing.T) {
	t.Run("missing platform id", func(t *testing.T) {
		v := newEnv()
		c, rec := v.request(http.MethodPost, "/users", `{"username":"someone"}`)
		if err := v.custodyH.RegisterUser(c); err != nil {
			t.Fatalf("RegisterUser: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want 400", rec.Code)
		}
	})

	t.Run("reposting returns the existing account", func(t *testing.T) {
		v := newEnv()
		v.users.GetByPlatformIDFn = func(context.Context, string) (*user.User, error) {
			return borrowerUser(), nil
		}
		v.users.CreateFn = func(context.Context, *user.User) error {
			t.Fatal("an existing account must not be recreated")
			return nil
		}
		c, rec := v.request(http.MethodPost, "/users", `{"platform_id":"platform-borrower"}`)
		if err := v.custodyH.RegisterUser(c); err != nil {
			t.Fatalf("RegisterUser: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["user_id"] != testBorrowerID {
			t.Fatalf("body = %v", body)
		}
	})
}

func TestWithdrawHandler(t *testing.T) {
	v := newEnv()
	v.users.GetByUserIDFn = func(context.Context, string) (*user.User, error) {
		return borrowerUser(), nil
	}
	c, rec := v.request(http.MethodPost, "/withdrawals",
		`{"user_id":"`+testBorrowerID+`","amount":"2000"}`)
	if err := v.custodyH.Withdraw(c); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["type"] != string(transaction.TypeWithdraw) {
		t.Fatalf("body = %v", body)
	}
}

func TestDepositWebhookHandler(t *testing.T) {
	payload := `{"transaction_id":"plat-tx-1","user_id":"platform-borrower","amount":"3000","status":"completed"}`

	t.Run("non-final status is acknowledged with 202", func(t *testing.T) {
		v := newEnv()
		c, rec := v.request(http.MethodPost, "/webhooks/deposit",
			`{"transaction_id":"plat-tx-1","user_id":"platform-borrower","amount":"3000","status":"pending"}`)
		if err := v.custodyH.DepositWebhook(c); err != nil {
			t.Fatalf("DepositWebhook: %v", err)
		}
		if rec.Code != http.StatusAccepted {
			t.Fatalf("code = %d, want 202", rec.Code)
		}
	})

	t.Run("completed deposit is recorded", func(t *testing.T) {
		v := newEnv()
		v.users.GetByPlatformIDFn = func(context.Context, string) (*user.User, error) {
			return borrowerUser(), nil
		}
		var rec2 *transaction.Transaction
		v.txs.CreateFn = func(_ context.Context, tr *transaction.Transaction) error {
			rec2 = tr
			return nil
		}
		c, rec := v.request(http.MethodPost, "/webhooks/deposit", payload)
		if err := v.custodyH.DepositWebhook(c); err != nil {
			t.Fatalf("DepositWebhook: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		if rec2 == nil || rec2.ExternalTxID != "plat-tx-1" {
			t.Fatalf("record = %+v", rec2)
		}
	})

	t.Run("unknown platform account is 404", func(t *testing.T) {
		v := newEnv()
		c, rec := v.request(http.MethodPost, "/webhooks/deposit", payload)
		if err := v.custodyH.DepositWebhook(c); err != nil {
			t.Fatalf("DepositWebhook: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("code = %d, want 404", rec.Code)
		}
	})
}

func TestHistoryHandler(t *testing.T) {
	v := newEnv()
	v.txs.ListByUserIDFn = func(_ context.Context, uid string, limit int) ([]transaction.Transaction, error) {
		return []transaction.Transaction{
			{TxID: "t1", UserID: uid, Type: transaction.TypeDeposit, Amount: dec("2000")},
		}, nil
	}
	c, rec := v.request(http.MethodGet, "/users/"+testBorrowerID+"/transactions", "")
	c.SetPath("/users/:user_id/transactions")
	c.SetParamNames("user_id")
	c.SetParamValues(testBorrowerID)
	if err := v.custodyH.History(c); err != nil {
		t.Fatalf("History: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0]["tx_id"] != "t1" {
		t.Fatalf("out = %v", out)
	}
}
