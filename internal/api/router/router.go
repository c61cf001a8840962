package router

import (
	"context"

	"alumni_portal_service/internal/api/handlers"
	messagingapp "alumni_portal_service/internal/messaging/app"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// Handlers 彙整 portal 所有的 HTTP handler
type Handlers struct {
	Member   *handlers.MemberHandler
	Message  *handlers.MessageHandler
	Post     *handlers.PostHandler
	Gallery  *handlers.GalleryHandler
	Job      *handlers.JobHandler
	Feedback *handlers.FeedbackHandler
	Media    *handlers.MediaHandler
	WS       *messagingapp.MessagingWebsocketHandler
}

// RegisterRoutes 注册 portal 相关的路由
// @title Alumni Portal Service API
// @version 1.0
// @description API documentation for Alumni Portal Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", h.Member.Register)
	authRoutes.Post("/verify", h.Member.Verify)
	authRoutes.Post("/resend", h.Member.ResendVerification)
	authRoutes.Post("/login", h.Member.Login)
	authRoutes.Post("/forgot-password", h.Member.ForgotPassword)
	authRoutes.Post("/reset-password", h.Member.ResetPassword)

	authRoutes.Use(middlewares.JWTMiddleware())
	authRoutes.Post("/logout", h.Member.Logout)

	userRoutes := app.Group("/users", middlewares.JWTMiddleware())
	userRoutes.Get("/me", h.Member.Me)
	userRoutes.Put("/me", h.Member.UpdateMe)
	userRoutes.Get("/search", h.Member.Search)
	userRoutes.Get("/:id", h.Member.GetProfile)

	messageRoutes := app.Group("/messages", middlewares.JWTMiddleware())
	messageRoutes.Get("/conversations", h.Message.Conversations)
	messageRoutes.Post("/", h.Message.Send)
	messageRoutes.Get("/:userId", h.Message.History)
	messageRoutes.Post("/:userId/read", h.Message.MarkRead)

	postRoutes := app.Group("/posts", middlewares.JWTMiddleware())
	postRoutes.Get("/", h.Post.Feed)
	postRoutes.Post("/", h.Post.Create)
	postRoutes.Get("/:id", h.Post.Get)
	postRoutes.Delete("/:id", h.Post.Delete)
	postRoutes.Post("/:id/reactions", h.Post.React)
	postRoutes.Delete("/:id/reactions", h.Post.Unreact)
	postRoutes.Post("/:id/comments", h.Post.Comment)

	galleryRoutes := app.Group("/gallery", middlewares.JWTMiddleware())
	galleryRoutes.Get("/", h.Gallery.List)
	galleryRoutes.Post("/", h.Gallery.Upload)
	galleryRoutes.Get("/:id/download", h.Gallery.Download)
	galleryRoutes.Delete("/:id", h.Gallery.Delete)
	galleryRoutes.Post("/:id/reactions", h.Gallery.React)
	galleryRoutes.Delete("/:id/reactions", h.Gallery.Unreact)

	jobRoutes := app.Group("/jobs", middlewares.JWTMiddleware())
	jobRoutes.Get("/", h.Job.List)
	jobRoutes.Post("/", h.Job.Create)
	jobRoutes.Get("/:id", h.Job.Get)
	jobRoutes.Delete("/:id", h.Job.Delete)

	feedbackRoutes := app.Group("/feedback", middlewares.JWTMiddleware())
	feedbackRoutes.Post("/", h.Feedback.Submit)
	feedbackRoutes.Get("/", h.Feedback.ListPublic)
	feedbackRoutes.Get("/all", h.Feedback.ListAll)

	app.Get("/media/:object", middlewares.JWTMiddleware(), h.Media.Serve)

	app.Get("/ws", middlewares.JWTMiddleware(), websocket.New(func(c *websocket.Conn) {
		h.WS.HandleConnection(context.Background(), c)
	}))
}
