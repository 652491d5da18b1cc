package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/securevault/securevault/internal/ledger"
)

// RegisterLedgerRoutes wires balance mutation and audit trail endpoints.
func RegisterLedgerRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/wallets/:walletId/deposits", h.Deposit)
	r.Post("/wallets/:walletId/withdrawals", h.Withdraw)
	r.Post("/transfers", h.Transfer)
	r.Get("/wallets/:walletId/transactions", h.History)
	r.Get("/transactions", h.AllHistory)
	r.Get("/balance", h.TotalBalance)
}
