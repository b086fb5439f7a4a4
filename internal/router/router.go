package router

import (
	"net/http"

	"github.com/land-deals/backend/internal/http/handlers/api"
	"github.com/land-deals/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// New builds the HTTP engine with all routes and middleware attached.
func New(container *provider.Container) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), Logger(), CORS(container.Config.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler := api.NewHandler(container)

	v1 := engine.Group("/api/v1")
	v1.POST("/auth/login", LoginRateLimit(container.Config.Security.LoginRateLimit), handler.Login)

	authed := v1.Group("")
	authed.Use(JWTAuth(container.AuthService), RequireAccess(container.Authz))
	{
		authed.GET("/auth/me", handler.Profile)
		authed.PUT("/auth/password", handler.ChangePassword)

		deals := authed.Group("/deals")
		{
			deals.POST("", handler.CreateDeal)
			deals.GET("", handler.ListDeals)
			deals.GET("/:id", handler.GetDeal)
			deals.PUT("/:id", handler.UpdateDeal)
			deals.DELETE("/:id", handler.DeleteDeal)
			deals.POST("/:id/expenses", handler.AddDealExpense)
			deals.POST("/:id/payments", handler.CreateDealPayment)
			deals.GET("/:id/payments", handler.ListDealPayments)
			deals.POST("/:id/documents", handler.UploadDealDocument)
			deals.GET("/:id/documents/:doc_id", handler.DownloadDealDocument)
			deals.DELETE("/:id/documents/:doc_id", handler.DeleteDealDocument)
		}

		payments := authed.Group("/payments")
		{
			payments.GET("/ledger", handler.Ledger)
			payments.GET("/ledger.csv", handler.LedgerCSV)
			payments.GET("/ledger.xlsx", handler.LedgerXLSX)
			payments.GET("/ledger.pdf", handler.LedgerPDF)

			payments.GET("/:id", handler.GetPayment)
			payments.PUT("/:id", handler.UpdatePayment)
			payments.DELETE("/:id", handler.DeletePayment)
			payments.POST("/:id/parties", handler.AddPaymentParty)
			payments.PUT("/:id/parties/:party_id", handler.UpdatePaymentParty)
			payments.DELETE("/:id/parties/:party_id", handler.DeletePaymentParty)
			payments.POST("/:id/proofs", handler.UploadPaymentProof)
			payments.GET("/:id/proofs/:proof_id", handler.DownloadPaymentProof)
			payments.DELETE("/:id/proofs/:proof_id", handler.DeletePaymentProof)
		}
	}

	return engine
}
