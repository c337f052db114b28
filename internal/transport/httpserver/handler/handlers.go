package handler

import (
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/expenses"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/ledger"
)

type Handlers struct {
	Common   *common.Handlers
	Expenses *expenses.Handlers
	Ledger   *ledger.Handlers
}

func New(commonHandlers *common.Handlers, expenseHandlers *expenses.Handlers, ledgerHandlers *ledger.Handlers) *Handlers {
	return &Handlers{
		Common:   commonHandlers,
		Expenses: expenseHandlers,
		Ledger:   ledgerHandlers,
	}
}
