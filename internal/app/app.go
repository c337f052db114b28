package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/db"
	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	borroweddomain "github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
	creditcarddomain "github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
	expensesdomain "github.com/saurabhsolanke/expensify-be/internal/domain/expenses"
	paymentdomain "github.com/saurabhsolanke/expensify-be/internal/domain/payment"
	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
	"github.com/saurabhsolanke/expensify-be/internal/repository/inmemory"
	analyticsrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/analytics"
	borrowedrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/borrowed"
	categoryrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/category"
	creditcardrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/creditcard"
	expensesrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/expenses"
	paymentrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/payment"
	userrepo "github.com/saurabhsolanke/expensify-be/internal/repository/postgres/user"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	expenseshandler "github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/expenses"
	ledgerhandler "github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/ledger"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: running migrations")
		if err := db.Migrate(dbConn, log); err != nil {
			closeDB(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	log.Info("app: initializing router")
	router, err := NewRouter(cfg, dbConn, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewRouter wires repositories, services and handlers on top of an open
// database connection.
func NewRouter(cfg config.Config, dbConn *gorm.DB, log logger.Logger) (http.Handler, error) {
	sqlDB, err := dbConn.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	users := userdomain.NewServiceWithCache(userrepo.NewPostgres(dbConn), inmemory.NewInMemoryUsersCache(), cfg.UsersCacheTTL)
	categories := categorydomain.NewServiceWithCache(categoryrepo.NewPostgres(dbConn), inmemory.NewInMemoryCategoriesCache(), cfg.CategoriesCacheTTL)
	cards := creditcarddomain.NewService(creditcardrepo.NewPostgres(dbConn))
	borrowed := borroweddomain.NewService(borrowedrepo.NewPostgres(dbConn))
	payments := paymentdomain.NewService(paymentrepo.NewPostgres(dbConn), cards, borrowed)
	expenses := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn), categories, cards, borrowed)
	analytics := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn))

	handlers := handler.New(
		common.New(users, sqlDB, log),
		expenseshandler.New(expenses, categories, analytics, cfg.Pagination, log),
		ledgerhandler.New(cards, borrowed, payments, analytics, cfg.Pagination, log),
	)

	return httpserver.NewRouter(cfg, handlers, users, log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
