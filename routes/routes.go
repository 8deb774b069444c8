package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/handlers"
	"github.com/tripexpense/tripexpense-backend/services"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	balanceService := services.NewBalanceService()

	authHandler := handlers.NewAuthHandler(services.NewAuthService())
	userHandler := handlers.NewUserHandler(services.NewUserService(), balanceService)
	tripHandler := handlers.NewTripHandler(services.NewTripService(), balanceService)
	expenseHandler := handlers.NewExpenseHandler(services.NewExpenseService(), balanceService)
	settlementHandler := handlers.NewSettlementHandler(services.NewSettlementService())
	excelHandler := handlers.NewExcelHandler(services.NewExcelService())

	api := router.Group("/api")

	// Public endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/trips/invite/:token", tripHandler.GetInviteInfo)

	// Everything else requires a bearer token
	auth := api.Group("")
	auth.Use(handlers.RequireAuth())
	{
		auth.POST("/auth/change-password", authHandler.ChangePassword)
		auth.GET("/auth/me", userHandler.GetMe)

		auth.GET("/users", userHandler.ListUsers)
		auth.GET("/users/:id", userHandler.GetUser)
		auth.PUT("/users/:id", userHandler.UpdateUser)
		auth.DELETE("/users/:id", userHandler.DeleteUser)

		auth.GET("/trips", tripHandler.ListTrips)
		auth.POST("/trips", tripHandler.CreateTrip)
		auth.GET("/trips/user/dashboard", userHandler.GetDashboard)
		auth.POST("/trips/join", tripHandler.JoinTrip)
		auth.GET("/trips/:id", tripHandler.GetTrip)
		auth.PUT("/trips/:id", tripHandler.UpdateTrip)
		auth.GET("/trips/:id/details", tripHandler.GetTripDetails)
		auth.GET("/trips/:id/balances", tripHandler.GetBalances)
		auth.POST("/trips/:id/members", tripHandler.AddMember)
		auth.DELETE("/trips/:id/members/:userId", tripHandler.RemoveMember)
		auth.POST("/trips/:id/invite", tripHandler.GenerateInvite)
		auth.DELETE("/trips/:id/invite", tripHandler.DeactivateInvite)
		auth.GET("/trips/:id/invite/status", tripHandler.GetInviteStatus)
		auth.GET("/trips/:id/export", excelHandler.ExportTrip)

		auth.GET("/expenses", expenseHandler.ListExpenses)
		auth.POST("/expenses", expenseHandler.CreateExpense)
		auth.GET("/expenses/member/:userId/trip/:tripId/breakdown", expenseHandler.GetMemberBreakdown)
		auth.GET("/expenses/:id", expenseHandler.GetExpense)
		auth.PUT("/expenses/:id", expenseHandler.UpdateExpense)
		auth.DELETE("/expenses/:id", expenseHandler.DeleteExpense)
		auth.PATCH("/expenses/:id/participants", expenseHandler.UpdateParticipants)
		auth.GET("/expenses/:id/participants", expenseHandler.GetParticipants)

		auth.GET("/settlements", settlementHandler.GetSettlements)
		auth.POST("/settlements", settlementHandler.CreateSettlement)
		auth.GET("/settlements/user/:userId", settlementHandler.GetUserSettlements)
		auth.GET("/settlements/suggestions/:tripId", settlementHandler.GetSuggestions)
		auth.DELETE("/settlements/:id", settlementHandler.DeleteSettlement)
	}
}
