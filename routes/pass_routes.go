package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lfreelance/Bhimsons/controllers/pass_controller"
	middleware "github.com/lfreelance/Bhimsons/middlewares"
)

// RegisterPassRoutes registers the public pass catalogue routes.
func RegisterPassRoutes(router *gin.Engine, pc *pass_controller.PassController, rdb *redis.Client) {
	passes := router.Group("/passes")
	{
		passes.GET("",
			middleware.NewRateLimiter(rdb, "60-1m", "listPasses"),
			pc.ListPasses)
		passes.GET("/:id",
			middleware.NewRateLimiter(rdb, "60-1m", "getPass"),
			pc.GetPass)
	}
}
