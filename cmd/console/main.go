package main

import (
	"context"
	"crypto/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/docs"
	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
	"github.com/jhoicas/medicare-console/internal/infrastructure/filestore"
	"github.com/jhoicas/medicare-console/internal/infrastructure/medapi"
	"github.com/jhoicas/medicare-console/internal/infrastructure/memstore"
	"github.com/jhoicas/medicare-console/internal/infrastructure/metrics"
	"github.com/jhoicas/medicare-console/internal/infrastructure/pdf"
	"github.com/jhoicas/medicare-console/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medicare-console/internal/interfaces/http"
	"github.com/jhoicas/medicare-console/pkg/config"
	"github.com/jhoicas/medicare-console/pkg/jwt"
	"github.com/jhoicas/medicare-console/pkg/logger"
)

const purgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Msg("iniciando consola")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cookies firmadas
	secret := []byte(cfg.Cookie.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal().Err(err).Msg("generar secreto de cookies")
		}
		log.Warn().Msg("COOKIE_SECRET vacío: se usa un secreto aleatorio, las sesiones no sobreviven a un reinicio")
	}
	signer, err := jwt.NewSigner(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador de cookies")
	}
	deviceTTL := time.Duration(cfg.Cookie.DeviceDays) * 24 * time.Hour

	// Almacenamiento durable de sesiones
	var durable session.PersistenceFactory
	switch cfg.Session.Backend {
	case config.BackendFile:
		fs, err := filestore.New(cfg.Session.FileDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Session.FileDir).Msg("almacenamiento de sesiones en archivos")
		}
		durable = fs
	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones de PostgreSQL")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewSessionRepository(pool)
		go purgeSessions(ctx, repo, deviceTTL, log.Component("purge"))
		durable = repo
	default:
		durable = memstore.New()
	}

	// Métricas
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var registry *session.Registry
	collector := metrics.NewCollector(promReg, func() int {
		if registry == nil {
			return 0
		}
		return registry.Len()
	})

	// API remota
	client := medapi.New(cfg.API.BaseURL, cfg.API.Timeout,
		medapi.WithMaxRetries(cfg.API.MaxRetries),
		medapi.WithObserver(collector),
		medapi.WithLogger(log.Component("medapi")),
	)

	registry, err = session.NewRegistry(client, durable, cfg.Session.CacheSize,
		session.WithLogger(log.Component("session")),
		session.WithRecorder(collector),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de sesiones")
	}

	ucLog := log.Component("usecase")
	dashboardUC := usecase.NewDashboardUseCase(client, ucLog)
	patientUC := usecase.NewPatientUseCase(client)
	caretakerUC := usecase.NewCaretakerUseCase(client, ucLog)
	donationUC := usecase.NewDonationUseCase(client, ucLog)
	reportUC := usecase.NewReportUseCase(client, pdf.NewAnalyticsRenderer())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(promReg)))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Console: httpRouter.ConsoleConfig{
			Registry:  registry,
			Signer:    signer,
			Secure:    cfg.Cookie.Secure,
			Domain:    cfg.Cookie.Domain,
			DeviceTTL: deviceTTL,
			Log:       log.Component("console"),
		},
		Gate:        collector,
		LoginPerMin: cfg.HTTP.LoginRatePerMinute,
		DashboardUC: dashboardUC,
		PatientUC:   patientUC,
		CaretakerUC: caretakerUC,
		DonationUC:  donationUC,
		ReportUC:    reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}

// purgeSessions borra periódicamente las sesiones durables de dispositivos
// cuya cookie ya expiró.
func purgeSessions(ctx context.Context, repo *postgres.SessionRepo, ttl time.Duration, log zerolog.Logger) {
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := repo.PurgeBefore(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("sesiones vencidas purgadas")
			}
		}
	}
}
