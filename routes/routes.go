package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"seapass-backend/controllers"
	"seapass-backend/middleware"
)

// SetupRouter wires the HTTP surface. origins comes from CORS_ORIGINS;
// a wildcard disables credentialed requests.
func SetupRouter(
	rc *controllers.ReservationController,
	uc *controllers.UserController,
	origins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"mensagem": "Backend SeaPass conectado com sucesso!"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", rc.Health)
		api.GET("/passageiros", rc.ListPassengers)
		api.GET("/hoteis", rc.ListHotels)

		reservas := api.Group("/reservas")
		{
			reservas.GET("", rc.ListReservations)
			reservas.POST("", rc.CreateReservation)
		}

		api.POST("/usuario", uc.CreateUser)
	}

	return r
}
