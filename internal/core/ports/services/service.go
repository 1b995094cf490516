package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing engine functionality.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Ledger     LedgerSvcFacade
	Document   DocumentSvcFacade
	Prepayment PrepaymentSvcFacade
	Credit     CreditSvcFacade
	Payment    PaymentSvc
	Reporting  ReportingService
}
