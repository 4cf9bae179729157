package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nyralei/scribeq/internal/config"
	"github.com/nyralei/scribeq/internal/files"
	"github.com/nyralei/scribeq/internal/job"
	"github.com/nyralei/scribeq/internal/storage/postgres"
	"github.com/nyralei/scribeq/internal/transcribe"
	"github.com/nyralei/scribeq/internal/worker"
	"github.com/nyralei/scribeq/middleware"
)

func main() {
	log.Println("Starting scribeq...")

	ctx := context.Background()

	appCfg, err := config.LoadAppConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load app config:", err)
	}

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load db config:", err)
	}

	db, err := postgres.ConnectDB(ctx, dbCfg)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	fileStore, err := files.NewStore(appCfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to create upload dir:", err)
	}

	repo := postgres.NewJobRepository(db)
	adapter := transcribe.NewAdapter(transcribe.NewWhisperXEngine(appCfg.WhisperXBin))

	w := worker.NewWorker(repo, adapter, fileStore, appCfg.PollInterval)
	w.Start()

	svc := job.NewJobService(repo, fileStore)
	handler := job.NewJobHandler(svc, w)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.ErrorHandler())

	group := r.Group("/v1/audio/transcriptions")
	group.POST("/jobs", handler.Create)
	group.GET("/jobs", handler.List)
	group.GET("/jobs/:id", handler.Get)
	group.DELETE("/jobs/:id", handler.Delete)
	group.GET("/worker", handler.WorkerStatus)

	srv := &http.Server{Addr: ":" + appCfg.Port, Handler: r}

	go func() {
		log.Printf("Listening on :%s", appCfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, appCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("HTTP shutdown error:", err)
	}

	w.Stop(appCfg.ShutdownTimeout)
	log.Println("Shutdown complete.")
}
