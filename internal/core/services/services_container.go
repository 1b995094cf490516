package services

import (
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.LedgerRepo, repos.AccountRepo)

	// The payment engine is built before the prepayment and credit services
	// since both delegate their apply operations to it.
	container.Payment = NewPaymentService(
		repos.DocumentRepo,
		repos.PrepaymentRepo,
		repos.CreditRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
	)

	container.Prepayment = NewPrepaymentService(repos.PrepaymentRepo, repos.LedgerRepo, repos.AccountRepo, container.Payment)
	container.Credit = NewCreditService(repos.CreditRepo, repos.LedgerRepo, repos.AccountRepo, container.Payment)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade     = (*ledgerService)(nil)
	_ portssvc.DocumentSvcFacade   = (*documentService)(nil)
	_ portssvc.PrepaymentSvcFacade = (*prepaymentService)(nil)
	_ portssvc.CreditSvcFacade     = (*creditService)(nil)
	_ portssvc.PaymentSvc          = (*paymentService)(nil)
	_ portssvc.ReportingService    = (*reportingService)(nil)
)
