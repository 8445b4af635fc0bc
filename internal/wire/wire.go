package wire

import (
	"Credify/internal/api"
	"Credify/internal/api/config"
	"Credify/internal/api/handler"
	"Credify/internal/job"
	"Credify/internal/pkg/cron"
	"Credify/internal/pkg/kafka"
	"Credify/internal/pkg/mongo"
	"Credify/internal/pkg/youtube"
	"Credify/internal/repository"
	"Credify/internal/service"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cfg *config.Config) (*ApplicationContainer, error) {
	snapshotRepo := repository.NewSnapshotRepository(db)
	latestMetricRepo := repository.NewLatestMetricRepository(db)
	creatorMetricRepo := repository.NewCreatorMetricRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	creditRepo := repository.NewProjectCreditRepository(db)

	ingestLogRepo := mongo.NewIngestLogRepo(mongoDB)
	youtubeClient := youtube.NewClient(cfg.YouTube)

	ingestService := service.NewIngestService(snapshotRepo, ingestLogRepo)
	latestMetricService := service.NewLatestMetricService(latestMetricRepo, snapshotRepo)
	creatorMetricService := service.NewCreatorMetricService(creatorMetricRepo, creditRepo, latestMetricService)
	projectService := service.NewProjectService(projectRepo, creditRepo, ingestService, latestMetricService, youtubeClient)

	handlers := &api.HandlersGroup{
		ProjectHandler:       handler.NewProjectHandler(projectService),
		CreatorMetricHandler: handler.NewCreatorMetricHandler(creatorMetricService),
		IngestHandler:        handler.NewIngestHandler(ingestService, creditRepo, ingestLogRepo),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, ingestService, creditRepo)
	if err != nil {
		return nil, err
	}

	metricFetchJob := job.NewMetricFetchJob(projectRepo, creditRepo, ingestService, creatorMetricService, youtubeClient)
	creatorMetricJob := job.NewCreatorMetricJob(creatorMetricService)
	cronMgr := cron.NewCronManager(metricFetchJob, creatorMetricJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
