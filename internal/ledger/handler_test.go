package ledger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupTestAPI(t *testing.T) (*fiber.App, *Engine) {
	t.Helper()
	engine := NewEngine()
	h := NewHandler(engine)

	app := fiber.New()
	app.Post("/wallets", h.CreateWallet)
	app.Get("/wallets/:walletId", h.GetWallet)
	app.Get("/wallets/:walletId/balance", h.Balance)
	app.Post("/wallets/:walletId/deposits", h.Deposit)
	app.Post("/wallets/:walletId/withdrawals", h.Withdraw)
	app.Post("/transfers", h.Transfer)
	app.Get("/wallets/:walletId/transactions", h.History)
	app.Get("/balance", h.TotalBalance)

	return app, engine
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	decoded := map[string]any{}
	if len(payload) > 0 && strings.HasPrefix(strings.TrimSpace(string(payload)), "{") {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("decode %s: %v", payload, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestHandlerCreateWallet(t *testing.T) {
	app, _ := setupTestAPI(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/wallets",
		`{"id":"hot_001","address":"0x1234","kind":"hot"}`)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if body["id"] != "hot_001" || body["kind"] != "hot" {
		t.Fatalf("unexpected response %v", body)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/wallets",
		`{"id":"hot_001","address":"0x5678","kind":"cold"}`)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate id, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/wallets",
		`{"id":"warm_001","address":"0x9999","kind":"warm"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", status)
	}
}

func TestHandlerDepositAndBalance(t *testing.T) {
	app, _ := setupTestAPI(t)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"hot_001","address":"0x1234","kind":"hot"}`)

	status, body := doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/deposits", `{"amount":"10.5"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["balance"] != "10.5" {
		t.Fatalf("expected balance 10.5, got %v", body["balance"])
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/deposits", `{"amount":"-1"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative amount, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/wallets/ghost/deposits", `{"amount":"1"}`)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown wallet, got %d", status)
	}
}

func TestHandlerTransfer(t *testing.T) {
	app, _ := setupTestAPI(t)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"hot_001","address":"0x1234","kind":"hot"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"cold_001","address":"0x5678","kind":"cold"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/deposits", `{"amount":"100"}`)

	status, body := doJSON(t, app, fiber.MethodPost, "/transfers",
		`{"from_id":"hot_001","to_id":"cold_001","amount":"30"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["from_balance"] != "70" || body["to_balance"] != "30" {
		t.Fatalf("unexpected balances %v", body)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/transfers",
		`{"from_id":"hot_001","to_id":"cold_001","amount":"1000"}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for insufficient balance, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/transfers",
		`{"from_id":"hot_001","to_id":"hot_001","amount":"1"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for same wallet, got %d", status)
	}
}

func TestHandlerHistory(t *testing.T) {
	app, _ := setupTestAPI(t)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"hot_001","address":"0x1234","kind":"hot"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/deposits", `{"amount":"10"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/withdrawals", `{"amount":"3"}`)

	status, body := doJSON(t, app, fiber.MethodGet, "/wallets/hot_001/transactions", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	records, ok := body["records"].([]any)
	if !ok || len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", body["records"])
	}

	status, _ = doJSON(t, app, fiber.MethodGet, "/wallets/ghost/transactions", "")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown wallet, got %d", status)
	}
}

func TestHandlerTotalBalance(t *testing.T) {
	app, _ := setupTestAPI(t)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"hot_001","address":"0x1234","kind":"hot"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets", `{"id":"cold_001","address":"0x5678","kind":"cold"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets/hot_001/deposits", `{"amount":"10.5"}`)
	doJSON(t, app, fiber.MethodPost, "/wallets/cold_001/deposits", `{"amount":"100"}`)

	status, body := doJSON(t, app, fiber.MethodGet, "/balance", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["total_balance"] != "110.5" {
		t.Fatalf("expected total 110.5, got %v", body["total_balance"])
	}
}
