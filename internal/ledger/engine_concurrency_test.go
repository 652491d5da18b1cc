package ledger

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConcurrentTransfersPreserveConservation(t *testing.T) {
	e := newTestEngine(t)
	SeedBalance(e, "hot_001", dec(100000))
	SeedBalance(e, "cold_001", dec(100000))

	const workers = 16
	amount := dec(250)

	// Transfers run in both directions over the same wallet pair.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				err = e.Transfer("hot_001", "cold_001", amount)
			} else {
				err = e.Transfer("cold_001", "hot_001", amount)
			}
			if err != nil {
				t.Errorf("transfer %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if total := e.TotalBalance(); !total.Equal(dec(200000)) {
		t.Fatalf("total balance drifted under concurrency: %s", total)
	}
	if got := len(e.AllHistory()); got != workers*2 {
		t.Fatalf("expected %d records, got %d", workers*2, got)
	}
	for _, w := range e.Wallets() {
		if w.Balance.IsNegative() {
			t.Fatalf("wallet %s went negative: %s", w.ID, w.Balance)
		}
	}
}

func TestConcurrentDepositsAllRecorded(t *testing.T) {
	e := newTestEngine(t)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.Deposit("hot_001", decimal.NewFromInt(1)); err != nil {
				t.Errorf("deposit: %v", err)
			}
		}()
	}
	wg.Wait()

	balance, err := e.BalanceOf("hot_001")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(workers)) {
		t.Fatalf("expected balance %d, got %s", workers, balance)
	}
	history, err := e.HistoryOf("hot_001")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != workers {
		t.Fatalf("expected %d records, got %d", workers, len(history))
	}
}
