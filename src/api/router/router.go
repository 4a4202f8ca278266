package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ProjectsTask/EasySwapMarket/src/api/middleware"
	v1 "github.com/ProjectsTask/EasySwapMarket/src/api/v1"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.ForceConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))

	// 注册 address 等自定义参数验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			panic(err)
		}
	}

	loadV1(r, svcCtx)

	return r
}

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api/v1")

	market := apiV1.Group("/market")
	{
		market.POST("/listings", v1.ListNftHandler(svcCtx))
		market.GET("/listings", v1.GetListingsHandler(svcCtx))
		market.GET("/listings/:id", v1.GetListingHandler(svcCtx))
		market.DELETE("/listings/:id", v1.CancelListingHandler(svcCtx))

		market.POST("/listings/:id/buy", v1.BuyNftHandler(svcCtx))
		market.POST("/listings/:id/bids", v1.PlaceBidHandler(svcCtx))
		market.POST("/listings/:id/release", v1.ReleaseNftHandler(svcCtx))

		market.POST("/withdrawals", v1.WithdrawHandler(svcCtx))
		market.GET("/activities", v1.ActivityHandler(svcCtx))
		market.GET("/treasury", v1.TreasuryDataHandler(svcCtx))
	}

	user := apiV1.Group("/user")
	{
		user.GET("/:address/blocked", v1.BlockStatusHandler(svcCtx))
		user.GET("/:address/locks", v1.GetUserLocksHandler(svcCtx))
	}

	admin := apiV1.Group("/admin")
	{
		admin.POST("/block", v1.BlockUserHandler(svcCtx))
		admin.POST("/unblock", v1.UnblockUserHandler(svcCtx))
		admin.POST("/treasury", v1.SetTreasuryHandler(svcCtx))
		admin.POST("/treasury/seller-fee", v1.SetTreasurySellerFeeHandler(svcCtx))
		admin.POST("/treasury/buyer-fee", v1.SetTreasuryBuyerFeeHandler(svcCtx))
		admin.POST("/ownership", v1.TransferOwnershipHandler(svcCtx))
		admin.GET("/treasury", v1.TreasuryDataHandler(svcCtx))
	}
}
