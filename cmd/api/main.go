package main

import (
	billboardhandler "billboardbids/internal/billboards/handler"
	billboardrepo "billboardbids/internal/billboards/repository"
	billboardservice "billboardbids/internal/billboards/service"
	billboardvalidator "billboardbids/internal/billboards/validator"
	bookinghandler "billboardbids/internal/bookings/handler"
	bookingrepo "billboardbids/internal/bookings/repository"
	bookingservice "billboardbids/internal/bookings/service"
	bookingvalidator "billboardbids/internal/bookings/validator"
	"billboardbids/internal/notifications"
	paymenthandler "billboardbids/internal/payments/handler"
	paymentservice "billboardbids/internal/payments/service"
	"billboardbids/internal/pricing"
	uploadhandler "billboardbids/internal/uploads/handler"
	"billboardbids/pkg/app"
	"billboardbids/pkg/config"
	"billboardbids/pkg/kafka"
	kafkaconfig "billboardbids/pkg/kafka/config"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "billboardbids-api"

// apiHandler aggregates all domain handlers behind a single route registry.
type apiHandler struct {
	billboards *billboardhandler.BillboardHandler
	bookings   *bookinghandler.BookingHandler
	pricing    *pricing.Handler
	payments   *paymenthandler.PaymentHandler
	uploads    *uploadhandler.UploadHandler
}

func (h *apiHandler) RegisterRoutes(router *httprouter.Router) {
	h.billboards.RegisterRoutes(router)
	h.bookings.RegisterRoutes(router)
	h.pricing.RegisterRoutes(router)
	h.payments.RegisterRoutes(router)
	h.uploads.RegisterRoutes(router)
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err.Error())
		}
	}()

	cfg.Log.Info("Starting BillboardBids API")
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, publisher))
	serverApp.Run()
}

func initPublisher(cfg *config.Config) kafka.Publisher {
	kafkaCfg := kafkaconfig.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return kafka.NoopPublisher{}
	}

	kafkaCfg.LogConfiguration(cfg.Log.Info)
	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingEventsTopic, kafkaCfg.BookingEventsDLQ, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err.Error())
	}

	cfg.Log.Info("Kafka producer initialized", "topic", kafkaCfg.BookingEventsTopic)
	return producer
}

func initHandlers(cfg *config.Config, publisher kafka.Publisher) *apiHandler {
	billboardRepo := billboardrepo.NewMongoBillboardRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)

	billboardService := billboardservice.NewBillboardService(
		billboardRepo,
		billboardvalidator.NewBillboardValidator(cfg.Log),
		bookingRepo,
		cfg,
	)

	notifier := notifications.NewEmailNotifier(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		billboardService,
		notifier,
		publisher,
		cfg,
	)

	pricingService := pricing.NewService(
		pricing.NewEngine(),
		billboardService,
		bookingRepo,
		bookingRepo,
		cfg,
	)

	paymentService := paymentservice.NewPaymentService(bookingService, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return &apiHandler{
		billboards: billboardhandler.NewBillboardHandler(billboardService, cfg.Log),
		bookings:   bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		pricing:    pricing.NewHandler(pricingService, cfg.Log),
		payments:   paymenthandler.NewPaymentHandler(paymentService, cfg.Log),
		uploads:    uploadhandler.NewUploadHandler(cfg),
	}
}
