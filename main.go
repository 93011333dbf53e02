package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/cppla/civicreport/config"
	"github.com/cppla/civicreport/controllers"
	"github.com/cppla/civicreport/models"
	"github.com/cppla/civicreport/repository"
	"github.com/cppla/civicreport/routes"
	"github.com/cppla/civicreport/services"
	"github.com/cppla/civicreport/storage"
	"github.com/cppla/civicreport/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger early
	logger, err := utils.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.AdminSecretKey == "" {
		logger.Warn("ADMIN_SECRET_KEY is empty, the review dashboard will refuse every request")
	}

	db, err := config.InitDatabase(cfg, &models.Submission{})
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	sink, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	logger.Info("media storage ready", zap.String("backend", sink.Backend()))

	var cache services.ListCache
	if rc := utils.NewRedisClient(cfg); rc != nil {
		cache = utils.NewRedisCache(rc, time.Duration(cfg.ListCacheSeconds)*time.Second)
	}

	repo := repository.NewSubmissionRepository(db)
	submitter := services.NewSubmissionService(repo, sink, cache, logger, cfg.CleanupOrphanedMedia)
	lister := services.NewListingService(repo, cache, logger)

	r := routes.SetupRouter(cfg, routes.Handlers{
		Submissions: controllers.NewSubmissionController(submitter, logger),
		Admin:       controllers.NewAdminController(lister),
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
