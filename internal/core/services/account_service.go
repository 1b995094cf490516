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
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCategory   = errors.New("unknown account category")
	ErrCodeOutOfBand     = errors.New("account code is outside the category band")
	ErrCodeBandExhausted = errors.New("no free account codes remain in the category band")
	ErrSystemAccount     = errors.New("system accounts cannot be deactivated")
	ErrAccountHasBalance = errors.New("accounts with a non-zero balance cannot be deactivated")
)

// createRetries bounds how often CreateAccount retries auto-assignment after
// losing a code race to a concurrent creation.
const createRetries = 3

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. When no code is supplied, the lowest
// unused code in the category band is assigned.
func (s *accountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	band, ok := domain.BandFor(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, req.Category)
	}

	if req.Code != nil && !band.Contains(*req.Code) {
		return nil, fmt.Errorf("%w: code %d does not belong to the %s band %d-%d",
			ErrCodeOutOfBand, *req.Code, req.Category, band.Low, band.High)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        orgID,
		Name:         req.Name,
		Category:     req.Category,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		IsSystem:     false,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.Code != nil {
		account.Code = *req.Code
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to save account", "org_id", orgID, "code", account.Code)
			return nil, err
		}
		s.LogInfo(ctx, "Account created", "account_id", account.AccountID, "code", account.Code)
		return &account, nil
	}

	// Auto-assignment can race with a concurrent creation taking the same
	// code; on a duplicate we re-read the used codes and try again.
	for attempt := 0; attempt < createRetries; attempt++ {
		code, err := s.nextFreeCode(ctx, orgID, band)
		if err != nil {
			return nil, err
		}

		account.Code = code
		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			s.LogInfo(ctx, "Account created", "account_id", account.AccountID, "code", account.Code)
			return &account, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", "org_id", orgID, "code", account.Code)
			return nil, err
		}
		s.LogDebug(ctx, "Lost code assignment race, retrying", "code", code, "attempt", attempt+1)
	}

	return nil, fmt.Errorf("%w: could not assign a code in band %d-%d", apperrors.ErrDuplicate, band.Low, band.High)
}

// nextFreeCode finds the lowest unused code inside a band.
func (s *accountService) nextFreeCode(ctx context.Context, orgID string, band domain.CodeBand) (int, error) {
	used, err := s.accountRepo.FindUsedCodes(ctx, orgID, band.Low, band.High)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch used account codes", "org_id", orgID)
		return 0, fmt.Errorf("failed to fetch used account codes: %w", err)
	}

	// Used codes arrive ascending, so the first gap is the answer.
	candidate := band.Low
	for _, code := range used {
		if code > candidate {
			break
		}
		candidate = code + 1
	}
	if candidate > band.High {
		return 0, ErrCodeBandExhausted
	}
	return candidate, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", "account_id", accountID)
		}
		return nil, err
	}

	if account.OrgID != orgID {
		// Obscure existence of accounts from other orgs.
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

// GetAccountByIDs retrieves multiple accounts by their IDs, all of which must
// belong to the org.
func (s *accountService) GetAccountByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", "org_id", orgID)
		return nil, err
	}

	for id, acc := range accounts {
		if acc.OrgID != orgID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	return accounts, nil
}

// ListAccounts retrieves a paginated list of active accounts in an org.
func (s *accountService) ListAccounts(ctx context.Context, orgID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, orgID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", "org_id", orgID)
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	return accounts, nil
}

// GetConfiguration retrieves the org's system-role account mapping.
func (s *accountService) GetConfiguration(ctx context.Context, orgID string) (*domain.AccountConfiguration, error) {
	config, err := s.accountRepo.FindConfiguration(ctx, orgID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch account configuration", "org_id", orgID)
		}
		return nil, err
	}
	return config, nil
}

// UpdateAccount updates an account's name and description. Code, category,
// currency and the system flag are immutable after creation.
func (s *accountService) UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, orgID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", "account_id", accountID)
	return account, nil
}

// DeactivateAccount marks an account as inactive. System accounts are refused,
// as are accounts still carrying a balance; the balance has to be transferred
// off first so no amount is orphaned outside the active chart.
func (s *accountService) DeactivateAccount(ctx context.Context, orgID string, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, orgID, accountID)
	if err != nil {
		return err
	}

	if account.IsSystem {
		return fmt.Errorf("%w: account %s", ErrSystemAccount, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s holds %s: %s",
			apperrors.ErrStateGuard, accountID, account.Balance.String(), ErrAccountHasBalance.Error())
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", "account_id", accountID)
		return err
	}

	s.LogInfo(ctx, "Account deactivated", "account_id", accountID)
	return nil
}
