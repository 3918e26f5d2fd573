package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-optimizer/internal/handlers"
	"alfredoptarigan/resume-optimizer/internal/services"
	"alfredoptarigan/resume-optimizer/internal/views"
	"alfredoptarigan/resume-optimizer/internal/workflow"
)

const Version = "1.0.0"

type WebOptions struct {
	Flow          *workflow.Flow
	Registry      services.SessionRegistry
	SessionTTL    time.Duration
	MaxUploadSize int64
	BodyLimit     int
	Secure        bool
}

// NewWebApp builds the browser-facing application.
func NewWebApp(opts WebOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Optimizer Pro",
		Views:        views.New(),
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	useCommonMiddleware(app)

	store := session.New(session.Config{
		Expiration:     opts.SessionTTL,
		CookieHTTPOnly: true,
		CookieSecure:   opts.Secure,
		CookieSameSite: "Lax",
	})
	sessions := handlers.NewSessionResolver(store, opts.Registry)

	pageHandler := handlers.NewPageHandler(sessions)
	uploadHandler := handlers.NewUploadHandler(sessions, opts.Flow, opts.MaxUploadSize)
	analyzeHandler := handlers.NewAnalyzeHandler(sessions, opts.Flow)
	healthHandler := handlers.NewHealthHandler("AI Resume Optimizer Pro", Version, opts.Registry)

	app.Get("/", pageHandler.HandleIndex)
	app.Post("/upload", uploadHandler.HandleUpload)
	app.Post("/analyze", analyzeHandler.HandleAnalyze)
	app.Get("/api/health", healthHandler.HandleHealth)

	return app
}

// NewStubApp builds the development stand-in for the analysis backend.
func NewStubApp(pdfParser services.PDFParserService, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Optimizer Pro API (stub)",
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	useCommonMiddleware(app)

	stubHandler := handlers.NewStubAnalysisHandler(pdfParser)
	healthHandler := handlers.NewHealthHandler("AI Resume Optimizer Pro API", Version, nil)

	api := app.Group("/api/resume")
	api.Post("/analyze-with-upload", stubHandler.HandleAnalyzeWithUpload)
	api.Get("/health", healthHandler.HandleHealth)

	return app
}

func useCommonMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
