package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/config"
	"github.com/example/bookhive/internal/handlers"
	"github.com/example/bookhive/internal/middleware"
	"github.com/example/bookhive/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer services.EmailSender) {
	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	userHandler := handlers.NewUserHandler(db)
	bookHandler := handlers.NewBookHandler(db)
	borrowHandler := handlers.NewBorrowHandler(db, cfg)
	pyqHandler := handlers.NewPYQHandler(db)

	authRequired := middleware.AuthMiddleware(db, cfg)
	adminOnly := middleware.AdminOnly()

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/otp-verification", authHandler.VerifyOTP)
	auth.Post("/login", authHandler.Login)
	auth.Get("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Post("/password/forgot", authHandler.ForgotPassword)
	auth.Put("/password/reset/:token", authHandler.ResetPassword)
	auth.Put("/password/update", authRequired, authHandler.UpdatePassword)

	// User administration
	user := api.Group("/user", authRequired)
	user.Get("/all", adminOnly, userHandler.ListUsers)
	user.Post("/add/new-admin", adminOnly, userHandler.AddNewAdmin)

	// Book catalog
	book := api.Group("/book", authRequired)
	book.Get("/all", bookHandler.ListBooks)
	book.Post("/admin/add", adminOnly, bookHandler.AddBook)
	book.Delete("/delete/:id", adminOnly, bookHandler.DeleteBook)

	// Borrowing
	borrow := api.Group("/borrow", authRequired)
	borrow.Post("/record-borrow-book/:id", adminOnly, borrowHandler.RecordBorrow)
	borrow.Put("/return-borrowed-book/:id", adminOnly, borrowHandler.ReturnBorrow)
	borrow.Get("/my-borrowed-books", borrowHandler.MyBorrowedBooks)
	borrow.Get("/borrowed-books-by-users", adminOnly, borrowHandler.AllBorrowedBooks)

	// PYQ documents
	pyq := api.Group("/pyq", authRequired)
	pyq.Get("/all", pyqHandler.ListPYQs)
	pyq.Post("/admin/add", adminOnly, pyqHandler.AddPYQ)
	pyq.Delete("/delete/:id", adminOnly, pyqHandler.DeletePYQ)
}
