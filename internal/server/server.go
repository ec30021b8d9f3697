package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rainadr/veripass/config"
	"github.com/rainadr/veripass/internal/handlers"
	"github.com/rainadr/veripass/internal/inspection"
	"github.com/rainadr/veripass/internal/middleware"
	"github.com/rainadr/veripass/internal/token"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	signingCfg, err := config.LoadSigningConfig()
	if err != nil {
		return fmt.Errorf("failed to load signing config: %v", err)
	}

	issuer, err := token.NewIssuer(signingCfg.PrivateKeySeed)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %v", err)
	}

	verifier, err := token.NewVerifier(signingCfg.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to load verification key: %v", err)
	}

	executor := inspection.NewExecutor(
		inspection.NewTicketStore(db),
		inspection.NewLedger(db),
		inspection.NewGate(db),
	)
	reconciler := inspection.NewReconciler(
		inspection.NewLedger(db),
		inspection.NewBatchAuthorizer(db),
	)

	r := gin.Default()

	setupRoutes(r, db, issuer, verifier, executor, reconciler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, issuer *token.Issuer, verifier *token.Verifier, executor *inspection.Executor, reconciler *inspection.Reconciler) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.SigningMiddleware(issuer, verifier))
	r.Use(middleware.InspectionMiddleware(executor, reconciler))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.GET("/events", handlers.ListActiveEvents)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		tickets := protected.Group("/tickets")
		{
			tickets.POST("/:id/token", handlers.IssueTicketToken)
			tickets.GET("/:id/qr", handlers.GetTicketQR)
		}

		inspections := protected.Group("/inspections")
		{
			inspections.POST("/inspect", handlers.InspectTicket)
			inspections.POST("/check-in", handlers.CheckInTicket)
			inspections.POST("/offline-batch", handlers.ReconcileOffline)
			inspections.GET("/:ticketId/history", handlers.GetInspectionHistory)
		}
	}
}
