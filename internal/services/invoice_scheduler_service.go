package services

import (
	"context"
	"time"

	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// InvoiceSchedulerService drives the recurring rent run. It is wired
// to a cron entry in main but takes the date as a parameter so runs
// can be replayed for any day.
type InvoiceSchedulerService struct {
	leaseRepo  repositories.LeaseRepository
	invoiceSvc *InvoiceService
}

func NewInvoiceSchedulerService(leaseRepo repositories.LeaseRepository, invoiceSvc *InvoiceService) *InvoiceSchedulerService {
	return &InvoiceSchedulerService{leaseRepo: leaseRepo, invoiceSvc: invoiceSvc}
}

// GenerateDueRentInvoices creates the current month's rent invoice for
// every active lease whose billing day has arrived. CreateRentInvoice
// is idempotent, so running the job daily only ever bills each lease
// once per month. Per-lease failures are logged and do not stop the
// sweep; the count of invoices actually created is returned.
func (s *InvoiceSchedulerService) GenerateDueRentInvoices(ctx context.Context, today time.Time) (int, error) {
	leases, err := s.leaseRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, lease := range leases {
		if today.Day() < int(lease.BillingDay) {
			continue
		}
		_, wasCreated, err := s.invoiceSvc.CreateRentInvoice(ctx, lease.ID, today.Year(), int(today.Month()))
		if err != nil {
			utils.Logger.WithError(err).Warnf("Rent invoice for lease %s not created", lease.ID)
			continue
		}
		if wasCreated {
			created++
		}
	}

	utils.Logger.Infof("Rent invoice run for %s: %d of %d active leases billed",
		today.Format("2006-01-02"), created, len(leases))
	return created, nil
}
