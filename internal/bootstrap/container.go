package bootstrap

import (
	"context"
	"log"

	"agency-site-be/internal/config"
	"agency-site-be/internal/controller"
	"agency-site-be/internal/handler"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/pkg/mailer"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/implementation"
	"agency-site-be/internal/repository/memory"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/internal/service"
	"agency-site-be/internal/websocket"
	"agency-site-be/pkg/events"

	pktNats "agency-site-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PostController   controller.IPostController
	JobController    controller.IJobController
	LeadController   controller.ILeadController
	GlobalController controller.IGlobalController
	RenderController controller.IRenderController
	AdminController  controller.IAdminController

	// Background services, started by main
	WarmupService       service.IWarmupService
	NotificationService *service.NotificationService // nil without NATS

	// Live preview
	PreviewHandler *handler.PreviewHandler
	WebSocketHub   *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Warmup queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	// NATS is optional: without it leads are still stored, just not mailed.
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// Render caches, fastest first
	caches := []contract.RenderCache{memory.NewRenderCache(cfg.Render.CacheTTL)}
	if rdb != nil {
		caches = append(caches, implementation.NewRedisRenderCache(rdb, cfg.Render.CacheTTL, sysLogger))
	}

	mediaURLs, err := service.NewMediaURLBuilder(cfg.Media)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize media URLs: %v", err)
	}

	// WebSocket hub for live preview
	previewLogger := logger.NewIsolatedLogger(cfg.App.PreviewLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, previewLogger)

	// 4. Services
	renderService := service.NewRenderService(uowFactory, mediaURLs, cfg.Render, sysLogger, caches...)
	publisherService := service.NewPublisherService(cfg.App.WarmupTopic, pubSub)
	c.WarmupService = service.NewWarmupService(pubSub, cfg.App.WarmupTopic, uowFactory, renderService, sysLogger)

	postService := service.NewPostService(uowFactory, renderService, mediaURLs, publisherService, eventPublisher, sysLogger)
	jobService := service.NewJobService(uowFactory, renderService, publisherService, eventPublisher, sysLogger)
	leadService := service.NewLeadService(uowFactory, eventPublisher, sysLogger)
	globalService := service.NewGlobalService(uowFactory, renderService, publisherService, sysLogger)
	authService := service.NewAuthService(uowFactory, sysLogger)

	if natsSub != nil {
		c.NotificationService = service.NewNotificationService(natsSub, emailService, cfg.SMTP.LeadInbox, c.WebSocketHub, previewLogger)
	}

	// 5. Controllers
	c.PostController = controller.NewPostController(postService)
	c.JobController = controller.NewJobController(jobService)
	c.LeadController = controller.NewLeadController(leadService)
	c.GlobalController = controller.NewGlobalController(globalService)
	c.RenderController = controller.NewRenderController(renderService)
	c.AdminController = controller.NewAdminController(authService, postService, jobService, leadService, globalService, sysLogger)
	c.PreviewHandler = handler.NewPreviewHandler(c.WebSocketHub, renderService, previewLogger)

	return c
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.WarmupService.Consume(ctx); err != nil {
		return err
	}
	if c.NotificationService != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}

// connectRedis returns nil when redis is unreachable; callers then run on the
// in-process cache alone.
func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}
