package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"smartlib/app"
	"smartlib/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.NewSrv(a)
	authCtl := controllers.NewAuthController(s)
	bookCtl := controllers.NewBookController(s)
	cartCtl := controllers.NewCartController(s)
	borrowCtl := controllers.NewBorrowingController(s)
	reportCtl := controllers.NewReportController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(a.AppSessions(), a.Users)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(a.Users, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth (public + protected)
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/whoami", authCtl.Whoami)
		authed.PUT("/profile", authCtl.UpdateProfile)
	}

	// ------------------------------
	// Catalog (members browse, admins manage)
	// ------------------------------
	books := r.Group("/api/books", authMW, seenMW)
	{
		books.GET("", bookCtl.ListBooks) // ?q=&genre=
		books.GET("/:id", bookCtl.GetBook)
	}
	booksAdmin := r.Group("/api/books", authMW, adminMW)
	{
		booksAdmin.POST("", bookCtl.CreateBook)
		booksAdmin.PUT("/:id", bookCtl.UpdateBook)
		booksAdmin.PUT("/:id/stock", bookCtl.SetStock)
		booksAdmin.DELETE("/:id", bookCtl.DeleteBook)
	}

	// ------------------------------
	// Cart (session-scoped, dies with the session)
	// ------------------------------
	carts := r.Group("/api/cart", authMW, seenMW)
	{
		carts.GET("", cartCtl.GetCart)
		carts.POST("", cartCtl.AddToCart)
		carts.PUT("/:bookId", cartCtl.UpdateQuantity)
		carts.DELETE("/:bookId", cartCtl.RemoveFromCart)
	}

	// ------------------------------
	// Borrowing lifecycle
	// ------------------------------
	borrow := r.Group("/api/borrowings", authMW, seenMW)
	{
		borrow.POST("/checkout", borrowCtl.Checkout)
		borrow.GET("", borrowCtl.ListMine)
		borrow.POST("/:id/return-request", borrowCtl.RequestReturn)
	}
	borrowAdmin := r.Group("/api/borrowings", authMW, adminMW)
	{
		borrowAdmin.GET("/all", borrowCtl.ListAll) // ?status=
		borrowAdmin.POST("/scan", borrowCtl.Scan)
		borrowAdmin.POST("/:id/confirm", borrowCtl.Confirm)
		borrowAdmin.POST("/:id/confirm-return", borrowCtl.ConfirmReturn)
	}

	// ------------------------------
	// Reports + audit trail (admin)
	// ------------------------------
	reports := r.Group("/api/reports", authMW, adminMW)
	{
		reports.GET("/dashboard", reportCtl.Dashboard)
	}
	r.GET("/api/activities", authMW, adminMW, reportCtl.ListActivities)

	// ------------------------------
	// User management (admin)
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}
}
