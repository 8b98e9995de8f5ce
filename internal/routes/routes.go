package routes

const (
	// Health
	Health = "/health"

	// Property catalog
	BuildingsBase  = "/api/v1/buildings"
	BuildingByID   = "/api/v1/buildings/{buildingID}"
	BuildingFloors = "/api/v1/buildings/{buildingID}/floors"
	FloorsBase     = "/api/v1/floors"

	RoomsBase     = "/api/v1/rooms"
	RoomSnapshots = "/api/v1/rooms/snapshots"
	RoomByID      = "/api/v1/rooms/{roomID}"
	RoomSnapshot  = "/api/v1/rooms/{roomID}/snapshot"

	TenantsBase = "/api/v1/tenants"
	TenantByID  = "/api/v1/tenants/{tenantID}"

	// Occupancy
	LeasesBase    = "/api/v1/leases"
	LeaseByID     = "/api/v1/leases/{leaseID}"
	LeaseEnd      = "/api/v1/leases/{leaseID}/end"
	LeaseBalance  = "/api/v1/leases/{leaseID}/balance"
	LeasePayments = "/api/v1/leases/{leaseID}/payments"

	// Metering
	ReadingsBase  = "/api/v1/readings"
	ReadingsBulk  = "/api/v1/readings/bulk"
	ReadingByID   = "/api/v1/readings/{readingID}"
	RoomBill      = "/api/v1/billing/rooms/{roomID}/bill"
	RoomBillTotal = "/api/v1/billing/rooms/{roomID}/summary"

	// Invoicing and payments
	InvoicesElectricity = "/api/v1/invoices/electricity"
	InvoicesRent        = "/api/v1/invoices/rent"
	InvoicesCombined    = "/api/v1/invoices/combined"
	InvoicesBase        = "/api/v1/invoices"
	InvoiceByID         = "/api/v1/invoices/{invoiceID}"
	InvoiceStatus       = "/api/v1/invoices/{invoiceID}/status"
	InvoicePDF          = "/api/v1/invoices/{invoiceID}/pdf"

	PaymentsBase = "/api/v1/payments"
	PaymentByID  = "/api/v1/payments/{paymentID}"

	SettingsBase = "/api/v1/settings"
)
