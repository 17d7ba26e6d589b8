package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/handlers"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
	chatws "github.com/kumarharsh15334/alumni-connect-backend/internal/websocket"
)

func RegisterRoutes(app *fiber.App, db *pgxpool.Pool) {
	profileRepo := repository.NewProfileRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	qnaRepo := repository.NewQnaRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	profileService := services.NewProfileService(profileRepo)
	catalogService := services.NewCatalogService(serviceRepo, profileRepo)
	bookingService := services.NewBookingService(db, bookingRepo, profileRepo, serviceRepo)
	messagingService := services.NewMessagingService(db, messageRepo, profileRepo)
	qnaService := services.NewQnAService(qnaRepo, profileRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, profileRepo)

	chatHub := chatws.NewHub()
	go chatHub.Run()

	profileHandler := handlers.NewProfileHandler(profileService)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	messageHandler := handlers.NewMessageHandler(messagingService, chatHub)
	qnaHandler := handlers.NewQnaHandler(qnaService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	profiles := app.Group("/profiles")
	profiles.Post("", profileHandler.Upsert)
	profiles.Get("/search", profileHandler.Search)
	profiles.Get("/:identity", profileHandler.Get)
	profiles.Patch("/:identity/availability", profileHandler.SetAvailability)
	profiles.Patch("/:identity/dark-mode", profileHandler.SetDarkMode)
	profiles.Delete("/:identity", profileHandler.Delete)

	app.Get("/alumni", profileHandler.ListAlumni)

	servicesGroup := app.Group("/services")
	servicesGroup.Get("/alumni/:identity", serviceHandler.ListByAlumni)
	servicesGroup.Post("/alumni/:identity", serviceHandler.Create)
	servicesGroup.Patch("/:id", serviceHandler.Update)
	servicesGroup.Delete("/:id", serviceHandler.Delete)

	bookings := app.Group("/bookings")
	bookings.Post("", bookingHandler.CreateBooking)
	bookings.Get("/alumni/:identity", bookingHandler.ListForAlumni)
	bookings.Get("/student/:identity", bookingHandler.ListForStudent)

	messages := app.Group("/messages")
	messages.Get("/:role/:identity/threads", messageHandler.ListThreads)
	messages.Get("/:role/:identity/threads/:peer", messageHandler.OpenThread)
	messages.Post("/:role/:identity/threads/:peer", messageHandler.SendMessage)

	qna := app.Group("/qna")
	qna.Get("", qnaHandler.List)
	qna.Post("", qnaHandler.Ask)
	qna.Post("/:id/answer", qnaHandler.Answer)

	dashboard := app.Group("/dashboard")
	dashboard.Get("/alumni/overview/:identity", dashboardHandler.AlumniOverview)
	dashboard.Get("/student/overview/:identity", dashboardHandler.StudentOverview)

	app.Use("/ws", messageHandler.RequireSocketUpgrade)
	app.Get("/ws", websocket.New(messageHandler.HandleSocket))
}
