package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/calmasana/calmasana-backend/internal/db"
	"github.com/calmasana/calmasana-backend/internal/data/repos"
	"github.com/calmasana/calmasana-backend/internal/handlers"
	"github.com/calmasana/calmasana-backend/internal/platform/envutil"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/poses"
	"github.com/calmasana/calmasana-backend/internal/server"
	"github.com/calmasana/calmasana-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Pose catalog
	log.Info("Loading pose catalog from main...")
	catalog, err := poses.Load()
	if err != nil {
		log.Error("Could not load pose catalog", "error", err)
		os.Exit(1)
	}
	log.Info("Pose catalog loaded", "poses", catalog.Len())

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userProfileRepo := repos.NewUserProfileRepo(thePG, log)
	practiceSessionRepo := repos.NewPracticeSessionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	profileService := services.NewProfileService(thePG, log, catalog, userProfileRepo)
	practiceService := services.NewPracticeService(thePG, log, catalog, practiceSessionRepo)
	reportService := services.NewReportService(thePG, log, practiceSessionRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	questionnaireHandler := handlers.NewQuestionnaireHandler(log, profileService)
	poseHandler := handlers.NewPoseHandler(catalog)
	practiceHandler := handlers.NewPracticeHandler(log, practiceService)
	reportHandler := handlers.NewReportHandler(log, reportService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		QuestionnaireHandler: questionnaireHandler,
		PoseHandler:          poseHandler,
		PracticeHandler:      practiceHandler,
		ReportHandler:        reportHandler,
	})

	port := envutil.String("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
