package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divvly/divvly/internal/auth"
	"github.com/divvly/divvly/internal/payments"
	"github.com/divvly/divvly/internal/service"
)

// RouterDeps holds everything the router needs. Rail may be nil when
// settlements are record-only; the wallet endpoints are then not mounted.
type RouterDeps struct {
	AuthSvc       *service.AuthService
	GroupSvc      *service.GroupService
	LedgerSvc     *service.LedgerService
	SettlementSvc *service.SettlementService
	JWTManager    *auth.JWTManager
	Rail          *payments.LocalRail
	Mode          string // gin mode: debug, release, test
}

// SetupRouter initialises the gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	r.Use(Recovery())
	r.Use(RequestLogger())
	r.Use(Metrics())
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthSvc)
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	authed := v1.Group("", RequireAuth(deps.JWTManager))

	groupHandler := NewGroupHandler(deps.GroupSvc)
	billHandler := NewBillHandler(deps.LedgerSvc)
	debtHandler := NewDebtHandler(deps.LedgerSvc)
	settlementHandler := NewSettlementHandler(deps.SettlementSvc)

	groups := authed.Group("/groups")
	{
		groups.POST("", groupHandler.Create)
		groups.GET("", groupHandler.List)
		groups.GET("/:id", groupHandler.Get)
		groups.GET("/:id/members", groupHandler.Members)
		groups.GET("/:id/members/:index", groupHandler.Member)

		groups.POST("/:id/bills", billHandler.Create)
		groups.GET("/:id/bills", billHandler.List)
		groups.GET("/:id/bills/:index", billHandler.Get)
		groups.GET("/:id/bills/:index/participants/:pindex", billHandler.Participant)

		groups.GET("/:id/debt", debtHandler.Get)
		groups.GET("/:id/debts", debtHandler.List)
		groups.GET("/:id/totals", debtHandler.Totals)
		groups.GET("/:id/balances", debtHandler.Balances)

		groups.POST("/:id/settlements", settlementHandler.Create)
		groups.GET("/:id/settlements", settlementHandler.List)
	}

	if deps.Rail != nil {
		walletHandler := NewWalletHandler(deps.Rail)
		wallet := authed.Group("/wallet")
		{
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.POST("/approve", walletHandler.Approve)
			wallet.GET("/balance", walletHandler.Balance)
		}
	}

	return r
}
