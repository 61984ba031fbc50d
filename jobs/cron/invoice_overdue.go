package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

// InvoiceOverdueJob promotes sent and partially paid invoices past
// their due date to overdue. There is no other writer of that
// transition; the API only reads the resulting status.
type InvoiceOverdueJob struct {
}

func (j *InvoiceOverdueJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Hour().Do(promoteOverdueInvoices)
	<-s.Start()
}

func promoteOverdueInvoices() {
	var invoices []*models.Invoice

	result := config.DataBase.
		Where("status IN ?", []types.InvoiceStatus{types.InvoiceStatusSent, types.InvoiceStatusPartial}).
		Where("due_date IS NOT NULL AND due_date < ?", time.Now()).
		Find(&invoices)
	if result.Error != nil {
		config.Logger.Errorf("Failed to load due invoices: %v", result.Error)
		return
	}

	touched_orgs := make(map[int64]bool)
	promoted := 0

	for _, invoice := range invoices {
		if err := invoice.Apply(types.ActionOverdue, decimal.Zero, time.Now()); err != nil {
			continue
		}

		if result := config.DataBase.Model(invoice).Update("status", invoice.Status); result.Error != nil {
			config.Logger.Errorf("Failed to mark invoice %d overdue: %v", invoice.ID, result.Error)
			continue
		}

		touched_orgs[invoice.OrgID] = true
		promoted++
	}

	for org_id := range touched_orgs {
		if err := config.Redis.InvalidateTag(org_id); err != nil {
			config.Logger.Errorf("Failed to invalidate cache tag for org %d: %v", org_id, err)
		}
	}

	if promoted > 0 {
		config.Logger.Infof("Promoted %d invoices to overdue", promoted)
	}
}
