package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/shivkr/transfer-service/internal/core/ports/services"
	"github.com/shivkr/transfer-service/internal/dto"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) error {
	if err := registerCustomValidations(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	transferHandler := newTransferHandler(services.Transfer)
	r.POST("/moneytransfers", transferHandler.transfer)

	registerAccountRoutes(r, services.Account)

	return nil
}

// registerAccountRoutes configures the admin account seeding/readback routes.
func registerAccountRoutes(r *gin.Engine, accountService portssvc.AccountSvcFacade) {
	accountHandler := newAccountHandler(accountService)

	accounts := r.Group("/accounts")
	{
		accounts.POST("/", accountHandler.createAccount)
		accounts.GET("/:routingCode/:accountNumber", accountHandler.getAccount)
		accounts.GET("/:routingCode/:accountNumber/transactions", accountHandler.listAccountTransactions)
	}
}

// registerCustomValidations wires the amountscale binding tag into gin's
// validator engine.
func registerCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return dto.RegisterAmountScale(v)
}
