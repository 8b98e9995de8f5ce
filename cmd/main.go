package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/iNiketan/Tenent-Management-App/internal/app"
	"github.com/iNiketan/Tenent-Management-App/internal/config"
	"github.com/iNiketan/Tenent-Management-App/internal/controllers"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/routes"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.AppName)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize service:", err)
	}
	defer application.Close()

	buildingRepo := repositories.NewBuildingRepository(application.DB)
	floorRepo := repositories.NewFloorRepository(application.DB)
	roomRepo := repositories.NewRoomRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	readingRepo := repositories.NewMeterReadingRepository(application.DB)
	invoiceRepo := repositories.NewInvoiceRepository(application.DB)
	paymentRepo := repositories.NewRentPaymentRepository(application.DB)
	settingRepo := repositories.NewSettingRepository(application.DB)

	billingService := services.NewBillingService(roomRepo, readingRepo, leaseRepo, settingRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, paymentRepo, leaseRepo, roomRepo, tenantRepo, settingRepo, billingService)
	occupancyService := services.NewOccupancyService(leaseRepo, roomRepo, tenantRepo, invoiceService)
	propertyService := services.NewPropertyService(buildingRepo, floorRepo, roomRepo, tenantRepo, leaseRepo)
	schedulerService := services.NewInvoiceSchedulerService(leaseRepo, invoiceService)

	if cfg.SeedDemoData {
		if err := app.SeedDemoData(
			context.Background(),
			propertyService,
			occupancyService,
			billingService,
			invoiceService,
			settingRepo,
			buildingRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo data")
		}
		utils.Logger.Info("Seeded demo data successfully")
	}

	healthController := controllers.NewHealthController(application)
	buildingController := controllers.NewBuildingController(propertyService)
	roomController := controllers.NewRoomController(propertyService, invoiceService)
	tenantController := controllers.NewTenantController(propertyService)
	leaseController := controllers.NewLeaseController(occupancyService, invoiceService)
	readingController := controllers.NewReadingController(billingService, readingRepo)
	billingController := controllers.NewBillingController(billingService)
	invoiceController := controllers.NewInvoiceController(invoiceService, invoiceRepo)
	paymentController := controllers.NewPaymentController(invoiceService, paymentRepo)
	settingController := controllers.NewSettingController(settingRepo)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.BuildingsBase, buildingController.CreateBuildingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingsBase, buildingController.ListBuildingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingByID, buildingController.GetBuildingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingByID, buildingController.UpdateBuildingHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.BuildingByID, buildingController.DeleteBuildingHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.BuildingFloors, buildingController.ListFloorsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.FloorsBase, buildingController.CreateFloorHandler).Methods(http.MethodPost)

	// Snapshots before the {roomID} routes so mux does not swallow
	// "snapshots" as an ID.
	router.HandleFunc(routes.RoomSnapshots, roomController.ListRoomSnapshotsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.RoomsBase, roomController.CreateRoomHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.RoomsBase, roomController.ListRoomsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.RoomByID, roomController.GetRoomHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.RoomByID, roomController.UpdateRoomHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.RoomByID, roomController.DeleteRoomHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.RoomSnapshot, roomController.GetRoomSnapshotHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.TenantsBase, tenantController.CreateTenantHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TenantsBase, tenantController.ListTenantsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TenantByID, tenantController.GetTenantHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TenantByID, tenantController.UpdateTenantHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.TenantByID, tenantController.DeleteTenantHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.LeasesBase, leaseController.CreateLeaseHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LeasesBase, leaseController.ListLeasesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeaseByID, leaseController.GetLeaseHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeaseByID, leaseController.UpdateLeaseHandler).Methods(http.MethodPatch)
	router.HandleFunc(routes.LeaseByID, leaseController.DeleteLeaseHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.LeaseEnd, leaseController.EndLeaseHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LeaseBalance, leaseController.GetLeaseBalanceHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeasePayments, paymentController.ListLeasePaymentsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.ReadingsBulk, readingController.CreateReadingsBulkHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ReadingsBase, readingController.CreateReadingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ReadingsBase, readingController.ListReadingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ReadingByID, readingController.DeleteReadingHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.RoomBill, billingController.CalcMonthBillHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.RoomBillTotal, billingController.GetRoomBillingSummaryHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.InvoicesElectricity, invoiceController.CreateElectricityInvoiceHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.InvoicesRent, invoiceController.CreateRentInvoiceHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.InvoicesCombined, invoiceController.CreateCombinedInvoiceHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.InvoicesBase, invoiceController.ListInvoicesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.InvoiceByID, invoiceController.GetInvoiceHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.InvoiceStatus, invoiceController.SetInvoiceStatusHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.InvoicePDF, invoiceController.SetInvoicePDFHandler).Methods(http.MethodPut)

	router.HandleFunc(routes.PaymentsBase, paymentController.RecordPaymentHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PaymentByID, paymentController.UpdatePaymentHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.PaymentByID, paymentController.DeletePaymentHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.SettingsBase, settingController.ListSettingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SettingsBase, settingController.UpsertSettingHandler).Methods(http.MethodPut)

	c := cron.New()
	_, cronErr := c.AddFunc(cfg.RentCronSpec, func() {
		if _, e := schedulerService.GenerateDueRentInvoices(context.Background(), time.Now()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled rent invoice run failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule rent invoice cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Service failed to start:", err)
	}
}
