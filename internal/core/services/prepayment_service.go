package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var ErrAmountNotPositive = errors.New("amount must be positive with at most two decimal places")

// prepaymentService manages money received or paid ahead of any document.
// Applying a prepayment is delegated to the payment engine so the settlement
// path stays single.
type prepaymentService struct {
	BaseService
	prepaymentRepo portsrepo.PrepaymentRepositoryFacade
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	paymentSvc     portssvc.PaymentSvc
}

// NewPrepaymentService creates a new prepayment service.
func NewPrepaymentService(prepaymentRepo portsrepo.PrepaymentRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, paymentSvc portssvc.PaymentSvc) portssvc.PrepaymentSvcFacade {
	return &prepaymentService{
		prepaymentRepo: prepaymentRepo,
		ledgerRepo:     ledgerRepo,
		accountRepo:    accountRepo,
		paymentSvc:     paymentSvc,
	}
}

// Ensure prepaymentService implements the portssvc.PrepaymentSvcFacade interface
var _ portssvc.PrepaymentSvcFacade = (*prepaymentService)(nil)

// CreatePrepayment records money moved before any document exists and posts
// the cash movement.
// Customer: debit the deposit account, credit the prepayment liability.
// Vendor: debit the prepayment asset, credit the deposit account.
func (s *prepaymentService) CreatePrepayment(ctx context.Context, orgID string, req dto.CreatePrepaymentRequest, userID string) (*domain.Prepayment, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !utils.IsPositive2dp(req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive.Error())
	}

	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch account configuration: %w", err)
	}

	role := domain.RoleCustomerPrepayments
	if req.Kind == domain.KindVendor {
		role = domain.RoleVendorPrepayments
	}
	holdingAccountID, ok := config.AccountFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotConfigured, role)
	}

	accountIDs := []string{req.DepositAccountID, holdingAccountID}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for prepayment", "org_id", orgID)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found || acc.OrgID != orgID {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	prepaymentID := uuid.NewString()
	transactionID := uuid.NewString()
	currencyCode := accountsMap[req.DepositAccountID].CurrencyCode

	// Customer money arrives into the deposit account; vendor money leaves it.
	debit, credit := req.DepositAccountID, holdingAccountID
	if req.Kind == domain.KindVendor {
		debit, credit = holdingAccountID, req.DepositAccountID
	}

	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     debit,
			Amount:        req.Amount,
			EntryType:     domain.Debit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     credit,
			Amount:        req.Amount,
			EntryType:     domain.Credit,
			CurrencyCode:  currencyCode,
			AuditFields:   audit,
		},
	}

	balanceChanges, err := calculateBalanceChanges(entries, accountsMap)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OrgID:         orgID,
		Date:          req.Date,
		Description:   fmt.Sprintf("Prepayment from party %s", req.PartyID),
		CurrencyCode:  currencyCode,
		Status:        domain.Posted,
		Source: domain.DocumentRef{
			DocumentType: domain.DocPrepayment,
			DocumentID:   prepaymentID,
		},
		AuditFields: audit,
	}
	if req.Kind == domain.KindVendor {
		txn.Description = fmt.Sprintf("Prepayment to party %s", req.PartyID)
	}

	prepayment := domain.Prepayment{
		PrepaymentID:     prepaymentID,
		OrgID:            orgID,
		Kind:             req.Kind,
		PartyID:          req.PartyID,
		Amount:           req.Amount,
		RemainingBalance: req.Amount,
		Status:           domain.PrepaymentAvailable,
		CurrencyCode:     currencyCode,
		DepositAccountID: req.DepositAccountID,
		Date:             req.Date,
		Description:      req.Description,
		TransactionID:    transactionID,
		AuditFields:      audit,
	}

	tx, err := s.prepaymentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.prepaymentRepo.Rollback(ctx, tx)
	}()

	if err := s.ledgerRepo.SaveTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post prepayment transaction", "prepayment_id", prepaymentID)
		return nil, fmt.Errorf("failed to post prepayment transaction: %w", err)
	}
	if err := s.prepaymentRepo.SavePrepaymentInTx(ctx, tx, prepayment); err != nil {
		s.LogError(ctx, err, "Failed to save prepayment", "prepayment_id", prepaymentID)
		return nil, err
	}

	if err := s.prepaymentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Prepayment created", "prepayment_id", prepaymentID, "party_id", req.PartyID, "amount", req.Amount.String())
	return &prepayment, nil
}

// ApplyPrepayment applies part of a prepayment to a document through the
// payment engine, with no new cash involved.
func (s *prepaymentService) ApplyPrepayment(ctx context.Context, orgID string, prepaymentID string, documentID string, amount decimal.Decimal, userID string) (*dto.PaymentResult, error) {
	return s.paymentSvc.RecordPayment(ctx, orgID, dto.RecordPaymentRequest{
		DocumentID:  documentID,
		CashAmount:  decimal.Zero,
		PaymentDate: time.Now().UTC(),
		Prepayment: &dto.PrepaymentPortion{
			PrepaymentID: prepaymentID,
			Amount:       amount,
		},
	}, userID)
}

// GetPrepaymentByID retrieves a specific prepayment.
func (s *prepaymentService) GetPrepaymentByID(ctx context.Context, orgID string, prepaymentID string) (*domain.Prepayment, error) {
	prepayment, err := s.prepaymentRepo.FindPrepaymentByID(ctx, prepaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find prepayment by ID", "prepayment_id", prepaymentID)
		}
		return nil, err
	}

	if prepayment.OrgID != orgID {
		// Obscure existence of prepayments from other orgs.
		return nil, apperrors.ErrNotFound
	}

	return prepayment, nil
}

// ListPrepaymentsByParty retrieves the prepayments of one party.
func (s *prepaymentService) ListPrepaymentsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.Prepayment, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	prepayments, token, err := s.prepaymentRepo.ListPrepaymentsByParty(ctx, orgID, partyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list prepayments", "org_id", orgID, "party_id", partyID)
		return nil, nil, fmt.Errorf("failed to retrieve prepayments: %w", err)
	}

	return prepayments, token, nil
}

// GetApplications retrieves the application history of a prepayment.
func (s *prepaymentService) GetApplications(ctx context.Context, orgID string, prepaymentID string) ([]domain.PrepaymentApplication, error) {
	if _, err := s.GetPrepaymentByID(ctx, orgID, prepaymentID); err != nil {
		return nil, err
	}

	applications, err := s.prepaymentRepo.FindApplicationsByPrepaymentID(ctx, prepaymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch prepayment applications", "prepayment_id", prepaymentID)
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}
	return applications, nil
}
