package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	"github.com/openbooks/books_backend/internal/models"
	"github.com/openbooks/books_backend/internal/utils/mapping"
	"github.com/openbooks/books_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const creditColumns = `credit_id, org_id, kind, credit_type, party_id, doc_number, date, currency_code, total, remaining_balance, status, reason, related_document_type, related_document_id, credit_account_id, transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for credit memo / vendor credit data.
func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryFacade {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryFacade
var _ portsrepo.CreditRepositoryFacade = (*PgxCreditRepository)(nil)

func scanCredit(row pgx.Row) (*models.CreditMemo, error) {
	var m models.CreditMemo
	var relatedType, relatedID, creditAccountID sql.NullString

	err := row.Scan(
		&m.CreditID,
		&m.OrgID,
		&m.Kind,
		&m.CreditType,
		&m.PartyID,
		&m.DocNumber,
		&m.Date,
		&m.CurrencyCode,
		&m.Total,
		&m.RemainingBalance,
		&m.Status,
		&m.Reason,
		&relatedType,
		&relatedID,
		&creditAccountID,
		&m.TransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.RelatedDocumentType = relatedType.String
	m.RelatedDocumentID = relatedID.String
	m.CreditAccountID = creditAccountID.String
	return &m, nil
}

// SaveCreditInTx persists a new credit and its lines within a caller-owned transaction.
func (r *PgxCreditRepository) SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.CreditMemo, lines []domain.CreditLine) error {
	m := mapping.ToModelCredit(credit)

	query := `
		INSERT INTO credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		m.CreditID,
		m.OrgID,
		m.Kind,
		m.CreditType,
		m.PartyID,
		m.DocNumber,
		m.Date,
		m.CurrencyCode,
		m.Total,
		m.RemainingBalance,
		m.Status,
		m.Reason,
		nullString(m.RelatedDocumentType),
		nullString(m.RelatedDocumentID),
		nullString(m.CreditAccountID),
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: credit number %s already exists in org %s", apperrors.ErrDuplicate, m.DocNumber, m.OrgID)
		}
		return apperrors.NewAppError(500, "failed to insert credit "+m.CreditID, err)
	}

	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO credit_lines (line_id, credit_id, product_id, name, quantity, unit_price, account_id, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		ml := mapping.ToModelCreditLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.CreditID,
			nullString(ml.ProductID),
			ml.Name,
			ml.Quantity,
			ml.UnitPrice,
			ml.AccountID,
			ml.LineTotal,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for credit "+m.CreditID, err)
	}

	return nil
}

// FindCreditByID retrieves a credit by its ID.
func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.CreditMemo, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1;`

	m, err := scanCredit(r.Pool.QueryRow(ctx, query, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find credit by ID "+creditID, err)
	}

	domainCredit := mapping.ToDomainCredit(*m)
	return &domainCredit, nil
}

// FindCreditByIDForUpdate selects a credit and locks its row within a transaction.
func (r *PgxCreditRepository) FindCreditByIDForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.CreditMemo, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1 FOR UPDATE;`

	m, err := scanCredit(tx.QueryRow(ctx, query, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock credit "+creditID, err)
	}

	domainCredit := mapping.ToDomainCredit(*m)
	return &domainCredit, nil
}

// FindLinesByCreditID retrieves the lines of an ITEM_BASED credit.
func (r *PgxCreditRepository) FindLinesByCreditID(ctx context.Context, creditID string) ([]domain.CreditLine, error) {
	query := `
		SELECT line_id, credit_id, product_id, name, quantity, unit_price, account_id, line_total
		FROM credit_lines
		WHERE credit_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for credit "+creditID, err)
	}
	defer rows.Close()

	lines := []domain.CreditLine{}
	for rows.Next() {
		var m models.CreditLine
		var productID sql.NullString
		err := rows.Scan(
			&m.LineID,
			&m.CreditID,
			&productID,
			&m.Name,
			&m.Quantity,
			&m.UnitPrice,
			&m.AccountID,
			&m.LineTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for credit "+creditID, err)
		}
		m.ProductID = productID.String
		lines = append(lines, mapping.ToDomainCreditLine(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for credit "+creditID, err)
	}

	return lines, nil
}

// UpdateCreditBalanceInTx writes a new remaining balance and status for a locked credit.
func (r *PgxCreditRepository) UpdateCreditBalanceInTx(ctx context.Context, tx pgx.Tx, creditID string, remaining decimal.Decimal, status domain.CreditStatus, userID string) error {
	query := `
		UPDATE credits
		SET remaining_balance = $2, status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE credit_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query, creditID, remaining, string(status), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for credit "+creditID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SaveApplicationInTx persists an immutable credit application within a caller-owned transaction.
func (r *PgxCreditRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.CreditApplication) error {
	m := mapping.ToModelCreditApplication(application)

	query := `
		INSERT INTO credit_applications (application_id, credit_id, document_id, amount_applied, transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.ApplicationID,
		m.CreditID,
		m.DocumentID,
		m.AmountApplied,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert credit application "+m.ApplicationID, err)
	}

	return nil
}

// SaveRefundInTx persists an immutable refund row within a caller-owned transaction.
func (r *PgxCreditRepository) SaveRefundInTx(ctx context.Context, tx pgx.Tx, refund domain.Refund) error {
	m := mapping.ToModelRefund(refund)

	query := `
		INSERT INTO refunds (refund_id, org_id, credit_id, refund_amount, refund_account_id, refund_date, method, transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.RefundID,
		m.OrgID,
		m.CreditID,
		m.RefundAmount,
		m.RefundAccountID,
		m.RefundDate,
		m.Method,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert refund "+m.RefundID, err)
	}

	return nil
}

// FindApplicationsByCreditID retrieves the application history of a credit.
func (r *PgxCreditRepository) FindApplicationsByCreditID(ctx context.Context, creditID string) ([]domain.CreditApplication, error) {
	query := `
		SELECT application_id, credit_id, document_id, amount_applied, transaction_id, created_at, created_by, last_updated_at, last_updated_by
		FROM credit_applications
		WHERE credit_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications for credit "+creditID, err)
	}
	defer rows.Close()

	applications := []domain.CreditApplication{}
	for rows.Next() {
		var m models.CreditApplication
		err := rows.Scan(
			&m.ApplicationID,
			&m.CreditID,
			&m.DocumentID,
			&m.AmountApplied,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application row for credit "+creditID, err)
		}
		applications = append(applications, mapping.ToDomainCreditApplication(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating application rows for credit "+creditID, err)
	}

	return applications, nil
}

// FindRefundsByCreditID retrieves the refunds issued against a credit.
func (r *PgxCreditRepository) FindRefundsByCreditID(ctx context.Context, creditID string) ([]domain.Refund, error) {
	query := `
		SELECT refund_id, org_id, credit_id, refund_amount, refund_account_id, refund_date, method, transaction_id, created_at, created_by, last_updated_at, last_updated_by
		FROM refunds
		WHERE credit_id = $1
		ORDER BY refund_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query refunds for credit "+creditID, err)
	}
	defer rows.Close()

	refunds := []domain.Refund{}
	for rows.Next() {
		var m models.Refund
		err := rows.Scan(
			&m.RefundID,
			&m.OrgID,
			&m.CreditID,
			&m.RefundAmount,
			&m.RefundAccountID,
			&m.RefundDate,
			&m.Method,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan refund row for credit "+creditID, err)
		}
		refunds = append(refunds, mapping.ToDomainRefund(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating refund rows for credit "+creditID, err)
	}

	return refunds, nil
}

// ListCreditsByParty retrieves the credits of one party, newest first.
func (r *PgxCreditRepository) ListCreditsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.CreditMemo, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + creditColumns + ` FROM credits`
	filterClause := `WHERE org_id = $1 AND party_id = $2`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{orgID, partyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (date, created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query credits for party "+partyID, err)
	}
	defer rows.Close()

	modelCredits := make([]models.CreditMemo, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCredit(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan credit row for party "+partyID, scanErr)
		}
		modelCredits = append(modelCredits, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating credit rows for party "+partyID, err)
	}

	var nextTokenVal *string
	results := modelCredits
	if len(modelCredits) > limit {
		last := modelCredits[limit-1]
		newToken := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelCredits[:limit]
	}

	return mapping.ToDomainCreditSlice(results), nextTokenVal, nil
}
