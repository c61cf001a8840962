package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"alumni_portal_service/internal/api/handlers"
	"alumni_portal_service/internal/api/router"
	communityapp "alumni_portal_service/internal/community/app"
	communityrepo "alumni_portal_service/internal/community/repository"
	feedbackapp "alumni_portal_service/internal/feedback/app"
	feedbackrepo "alumni_portal_service/internal/feedback/repository"
	galleryapp "alumni_portal_service/internal/gallery/app"
	gallerydomain "alumni_portal_service/internal/gallery/domain"
	galleryrepo "alumni_portal_service/internal/gallery/repository"
	jobapp "alumni_portal_service/internal/job/app"
	jobrepo "alumni_portal_service/internal/job/repository"
	memberapp "alumni_portal_service/internal/member/app"
	memberdomain "alumni_portal_service/internal/member/domain"
	memberrepo "alumni_portal_service/internal/member/repository"
	messagingapp "alumni_portal_service/internal/messaging/app"
	messagingrepo "alumni_portal_service/internal/messaging/repository"
	"alumni_portal_service/pkg/config"
	"alumni_portal_service/pkg/database"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.PortalService, config.EnvConfig.PortalServiceLogPath)

	cfg := config.LoadConfig[config.Portal](config.EnvConfig.PortalService, config.EnvConfig.PortalServiceYAMLPath)

	// 1. postgreSQL 連線（pgx 給手寫 SQL，gorm 給 AutoMigrate 模組）
	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", sqlParams)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect gorm postgreSQL", zap.Error(err))
	}
	postRepo := communityrepo.NewPostRepository(gormDB)
	galleryRepo := galleryrepo.NewGalleryRepository(gormDB)
	jobRepo := jobrepo.NewJobRepository(gormDB)
	feedbackRepo := feedbackrepo.NewFeedbackRepository(gormDB)
	for _, migrate := range []func() error{
		postRepo.AutoMigrate, galleryRepo.AutoMigrate, jobRepo.AutoMigrate, feedbackRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Log.Fatal("AutoMigrate failed", zap.Error(err))
		}
	}

	// 2. redis（session 存放與通知 pub/sub 共用同一組 sentinel）
	masterName, sentinel := config.GetRedisSetting()
	sessionRepo, err := database.NewRedisRepository[memberdomain.MemberSession](masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis pubsub err : %v", err))
	}

	// 3. minio 相簿物件儲存
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: cfg.MinIO.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect MinIO after retries", zap.Error(err))
	}

	// 4. rabbitMQ 寄信佇列
	rabbitParams := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    rabbitParams,
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: cfg.RabbitMQ.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect RabbitMQ after retries", zap.Error(err))
	}
	defer rabbitConn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.RabbitMQ.RetryCount, cfg.RabbitMQ.RetryInterval)
	if err != nil {
		logger.Log.Fatal("Unable to open RabbitMQ channel", zap.Error(err))
	}
	defer rabbitCh.Close()

	mail, err := mailer.NewRabbitMailer(database.NewRabbitRepository(rabbitCh))
	if err != nil {
		logger.Log.Fatal("Unable to init mailer", zap.Error(err))
	}

	// 5. kafka 活動事件
	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: cfg.Kafka.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect Kafka after retries", zap.Error(err))
	}
	defer kafkaWriter.Close()

	// 6. usecase 組裝
	memberUC := memberapp.NewMemberUseCase(memberrepo.NewMemberRepository(pool), cfg.SessionTTL*time.Minute, sessionRepo, mail)
	messageUC := messagingapp.NewMessageUseCase(
		messagingrepo.NewMessageRepository(pool),
		memberUC,
		messagingrepo.NewRedisPubSub(redisClient),
	)
	postUC := communityapp.NewPostUseCase(postRepo, communityrepo.NewKafkaActivityPublisher(kafkaWriter))
	galleryUC := galleryapp.NewGalleryUseCase(galleryRepo, minioClient, cfg.MinIO.PresignTTL)
	jobUC := jobapp.NewJobUseCase(jobRepo)
	feedbackUC := feedbackapp.NewFeedbackUseCase(feedbackRepo, mail, cfg.AdminEmail)

	// 7. fiber app 與路由
	r := fiber.New(fiber.Config{
		BodyLimit: int(gallerydomain.MaxUploadSize) + 1<<20,
	})

	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.PortalServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, router.Handlers{
		Member:   handlers.NewMemberHandler(memberUC),
		Message:  handlers.NewMessageHandler(messageUC),
		Post:     handlers.NewPostHandler(postUC),
		Gallery:  handlers.NewGalleryHandler(galleryUC),
		Job:      handlers.NewJobHandler(jobUC),
		Feedback: handlers.NewFeedbackHandler(feedbackUC),
		Media:    handlers.NewMediaHandler(minioClient),
		WS:       messagingapp.NewMessagingWebsocketHandler(messageUC),
	})

	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
