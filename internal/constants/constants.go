package constants

const (
	// Settings keys consulted by billing and invoicing.
	SettingElectricityRatePerUnit = "electricity_rate_per_unit"
	SettingCurrencySymbol         = "currency_symbol"
	SettingOrgName                = "org_name"

	DefaultCurrencySymbol = "₹"

	// Invoice due-date policy: invoices fall due this many days after
	// the first of their billing month, and the warning badge kicks in
	// this many days before that.
	InvoiceDueDays    = 5
	DueSoonWindowDays = 3

	// SetInvoiceStatus "partial" records this fraction of the total.
	PartialPaymentDivisor = 2

	// Billing day must leave room for short months.
	MinBillingDay = 1
	MaxBillingDay = 28
)

// Room payment badges shown on the dashboard grid.
const (
	BadgeVacant      = "Vacant"
	BadgeMaintenance = "Maintenance"
	BadgeOK          = "OK"
	BadgeDueSoon     = "Due Soon"
	BadgeOverdue     = "Overdue"
)
