package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/securevault/securevault/internal/ledger"
)

// RegisterWalletRoutes wires wallet registry endpoints.
func RegisterWalletRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/wallets", h.CreateWallet)
	r.Get("/wallets", h.ListWallets)
	r.Get("/wallets/:walletId", h.GetWallet)
	r.Get("/wallets/:walletId/balance", h.Balance)
}
