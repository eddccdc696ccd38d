package internal

import (
	"chatstat/internal/controllers"
	"chatstat/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/periods", http.HandlerFunc(apiController.GetPeriods))
	routers.Get("/month", http.HandlerFunc(apiController.GetMonth))
	routers.Get("/year", http.HandlerFunc(apiController.GetYear))
	routers.Get("/chart/month", http.HandlerFunc(apiController.GetMonthChart))
	routers.Get("/chart/year", http.HandlerFunc(apiController.GetYearChart))
	return routers
}
