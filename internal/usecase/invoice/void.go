package invoice

import (
	"context"

	"github.com/clinagenda/clinic-api/internal/audit"
	domain "github.com/clinagenda/clinic-api/internal/domain/invoice"
)

type VoidInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewVoidInvoice(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *VoidInvoice {
	return &VoidInvoice{
		repo:  repo,
		audit: audit,
	}
}

// Execute flips an active invoice to voided. A missing or already
// voided invoice reports false rather than an error; linked
// appointments keep their statuses (voiding does not cascade).
func (uc *VoidInvoice) Execute(
	ctx context.Context,
	userID uint,
	invoiceID uint,
) (bool, error) {

	voided, err := uc.repo.VoidInvoice(ctx, invoiceID)
	if err != nil {
		return false, err
	}

	if voided {
		uc.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "invoice_voided",
			Entity:   "invoice",
			EntityID: &invoiceID,
		})
	}

	return voided, nil
}
