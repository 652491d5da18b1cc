package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/securevault/securevault/internal/wallet"
)

// Handler exposes the ledger engine over HTTP.
type Handler struct {
	engine *Engine
}

// NewHandler builds a ledger HTTP handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

type createWalletRequest struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Kind    string `json:"kind"`
}

type walletResponse struct {
	ID      string          `json:"id"`
	Address string          `json:"address"`
	Kind    wallet.Kind     `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	FromID string          `json:"from_id"`
	ToID   string          `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateWallet registers a new wallet.
func (h *Handler) CreateWallet(c *fiber.Ctx) error {
	var req createWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "wallet id is required")
	}
	kind, err := wallet.ParseKind(req.Kind)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.engine.CreateWallet(req.ID, req.Address, kind)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toWalletResponse(w))
}

// GetWallet returns wallet metadata and its current balance.
func (h *Handler) GetWallet(c *fiber.Ctx) error {
	w, err := h.engine.Wallet(c.Params("walletId"))
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(toWalletResponse(w))
}

// ListWallets returns every registered wallet.
func (h *Handler) ListWallets(c *fiber.Ctx) error {
	wallets := h.engine.Wallets()
	out := make([]walletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toWalletResponse(w))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallets": out, "count": len(out)})
}

// Balance returns the balance of one wallet.
func (h *Handler) Balance(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	balance, err := h.engine.BalanceOf(walletID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id": walletID,
		"balance":   balance,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// TotalBalance returns the sum over all wallets.
func (h *Handler) TotalBalance(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total_balance": h.engine.TotalBalance(),
		"wallet_count":  h.engine.WalletCount(),
	})
}

// Deposit credits a wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.engine.Deposit(walletID, req.Amount); err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	balance, err := h.engine.BalanceOf(walletID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallet_id": walletID, "balance": balance})
}

// Withdraw debits a wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.engine.Withdraw(walletID, req.Amount); err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	balance, err := h.engine.BalanceOf(walletID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallet_id": walletID, "balance": balance})
}

// Transfer moves funds between two wallets.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.engine.Transfer(req.FromID, req.ToID, req.Amount); err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	fromBalance, err := h.engine.BalanceOf(req.FromID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	toBalance, err := h.engine.BalanceOf(req.ToID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"from_id":      req.FromID,
		"to_id":        req.ToID,
		"amount":       req.Amount,
		"from_balance": fromBalance,
		"to_balance":   toBalance,
	})
}

// History returns the audit records for one wallet in insertion order.
func (h *Handler) History(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	records, err := h.engine.HistoryOf(walletID)
	if err != nil {
		return fiber.NewError(statusFromError(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wallet_id": walletID, "records": records})
}

// AllHistory returns the full audit log in insertion order.
func (h *Handler) AllHistory(c *fiber.Ctx) error {
	records := h.engine.AllHistory()
	return c.Status(http.StatusOK).JSON(fiber.Map{"records": records, "count": len(records)})
}

func toWalletResponse(w wallet.Wallet) walletResponse {
	return walletResponse{ID: w.ID, Address: w.Address, Kind: w.Kind, Balance: w.Balance}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, wallet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, wallet.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
