package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanbook/internal/adapter/http"
	"loanbook/internal/adapter/middleware"
	"loanbook/internal/adapter/repository/mysql"
	"loanbook/internal/config"
	domainAccount "loanbook/internal/domain/account"
	domainCustomer "loanbook/internal/domain/customer"
	domainLoan "loanbook/internal/domain/loan"
	"loanbook/internal/infrastructure/cache"
	"loanbook/internal/infrastructure/db"
	accountUC "loanbook/internal/usecase/account"
	customerUC "loanbook/internal/usecase/customer"
	decisionUC "loanbook/internal/usecase/decision"
	loanUC "loanbook/internal/usecase/loan"
	paymentUC "loanbook/internal/usecase/payment"
	"loanbook/pkg/clock"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&domainCustomer.Customer{},
		&domainAccount.Account{},
		&domainLoan.Loan{},
		&domainLoan.Installment{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	accountRepo := mysql.NewAccountRepository(gdb)
	customerRepo := mysql.NewCustomerRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	customers := customerUC.NewUsecase(customerRepo)
	accounts := accountUC.NewUsecase(accountRepo, customerRepo, uow)
	loans := loanUC.NewUsecase(loanRepo, accountRepo, customerRepo, clock.Real{})
	decisions := decisionUC.NewUsecase(uow)
	payments := paymentUC.NewUsecase(uow)

	h := httpadp.NewHandler()
	customerH := httpadp.NewCustomerHandler(customers)
	accountH := httpadp.NewAccountHandler(accounts)
	loanH := httpadp.NewLoanHandler(loans)
	decisionH := httpadp.NewDecisionHandler(decisions)
	paymentH := httpadp.NewPaymentHandler(payments)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	e.POST("/customers", customerH.RegisterCustomer)
	e.GET("/customers/:customer_id", customerH.GetCustomer)

	e.POST("/accounts", accountH.OpenAccount)
	e.GET("/accounts/:account_id", accountH.GetAccount)
	e.POST("/accounts/:account_id/deposits", accountH.Deposit)

	// Mutating loan routes replay on retries instead of re-running.
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	loanRoutes := e.Group("/loans", idemp)
	loanRoutes.POST("", loanH.CreateLoan)
	loanRoutes.GET("/:loan_id", loanH.GetLoan)
	loanRoutes.GET("/:loan_id/schedule", loanH.GetSchedule)
	loanRoutes.POST("/:loan_id/approve", decisionH.ApproveLoan)
	loanRoutes.POST("/:loan_id/deny", decisionH.DenyLoan)
	loanRoutes.POST("/:loan_id/payments", paymentH.PayInstallment)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
