package expenses

import (
	"context"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
	expensesdomain "github.com/saurabhsolanke/expensify-be/internal/domain/expenses"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type ExpenseService interface {
	ListExpenses(ctx context.Context, userID string, filter expensesdomain.ListFilter) ([]expensesdomain.Expense, int64, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*expensesdomain.Expense, error)
	CreateExpense(ctx context.Context, input expensesdomain.CreateExpenseInput) (*expensesdomain.Expense, error)
	UpdateExpense(ctx context.Context, input expensesdomain.UpdateExpenseInput) (*expensesdomain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

type CategoryService interface {
	ListCategories(ctx context.Context, userID string) ([]categorydomain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*categorydomain.Category, error)
	CreateCategory(ctx context.Context, input categorydomain.CreateInput) (*categorydomain.Category, error)
	UpdateCategory(ctx context.Context, input categorydomain.UpdateInput) (*categorydomain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
	SetupDefaults(ctx context.Context, userID string) ([]categorydomain.Category, error)
}

type AnalyticsService interface {
	ExpenseSummary(ctx context.Context, userID string, r analyticsdomain.DateRange) (analyticsdomain.ExpenseSummary, error)
}

type Handlers struct {
	Expenses   ExpenseService
	Categories CategoryService
	Analytics  AnalyticsService
	pagination config.PaginationConfig
	log        logger.Logger
}

func New(expenses ExpenseService, categories CategoryService, analytics AnalyticsService, pagination config.PaginationConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses:   expenses,
		Categories: categories,
		Analytics:  analytics,
		pagination: pagination,
		log:        log,
	}
}
