package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	"github.com/openbooks/books_backend/internal/models"
	"github.com/openbooks/books_backend/internal/utils/mapping"
	"github.com/openbooks/books_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const prepaymentColumns = `prepayment_id, org_id, kind, party_id, amount, remaining_balance, status, currency_code, deposit_account_id, date, description, transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxPrepaymentRepository struct {
	BaseRepository
}

// newPgxPrepaymentRepository creates a new repository for prepayment data.
func newPgxPrepaymentRepository(pool *pgxpool.Pool) portsrepo.PrepaymentRepositoryFacade {
	return &PgxPrepaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPrepaymentRepository implements portsrepo.PrepaymentRepositoryFacade
var _ portsrepo.PrepaymentRepositoryFacade = (*PgxPrepaymentRepository)(nil)

func scanPrepayment(row pgx.Row) (*models.Prepayment, error) {
	var m models.Prepayment
	err := row.Scan(
		&m.PrepaymentID,
		&m.OrgID,
		&m.Kind,
		&m.PartyID,
		&m.Amount,
		&m.RemainingBalance,
		&m.Status,
		&m.CurrencyCode,
		&m.DepositAccountID,
		&m.Date,
		&m.Description,
		&m.TransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePrepaymentInTx persists a new prepayment within a caller-owned transaction.
func (r *PgxPrepaymentRepository) SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.Prepayment) error {
	m := mapping.ToModelPrepayment(prepayment)

	query := `
		INSERT INTO prepayments (` + prepaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.PrepaymentID,
		m.OrgID,
		m.Kind,
		m.PartyID,
		m.Amount,
		m.RemainingBalance,
		m.Status,
		m.CurrencyCode,
		m.DepositAccountID,
		m.Date,
		m.Description,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert prepayment "+m.PrepaymentID, err)
	}

	return nil
}

// FindPrepaymentByID retrieves a prepayment by its ID.
func (r *PgxPrepaymentRepository) FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.Prepayment, error) {
	query := `SELECT ` + prepaymentColumns + ` FROM prepayments WHERE prepayment_id = $1;`

	m, err := scanPrepayment(r.Pool.QueryRow(ctx, query, prepaymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find prepayment by ID "+prepaymentID, err)
	}

	domainPrepayment := mapping.ToDomainPrepayment(*m)
	return &domainPrepayment, nil
}

// FindPrepaymentByIDForUpdate selects a prepayment and locks its row within a transaction.
func (r *PgxPrepaymentRepository) FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.Prepayment, error) {
	query := `SELECT ` + prepaymentColumns + ` FROM prepayments WHERE prepayment_id = $1 FOR UPDATE;`

	m, err := scanPrepayment(tx.QueryRow(ctx, query, prepaymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock prepayment "+prepaymentID, err)
	}

	domainPrepayment := mapping.ToDomainPrepayment(*m)
	return &domainPrepayment, nil
}

// UpdatePrepaymentBalanceInTx writes a new remaining balance and derived status for a locked prepayment.
func (r *PgxPrepaymentRepository) UpdatePrepaymentBalanceInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, remaining decimal.Decimal, status domain.PrepaymentStatus, userID string) error {
	query := `
		UPDATE prepayments
		SET remaining_balance = $2, status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE prepayment_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query, prepaymentID, remaining, string(status), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for prepayment "+prepaymentID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SaveApplicationInTx persists an immutable prepayment application within a caller-owned transaction.
func (r *PgxPrepaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, application domain.PrepaymentApplication) error {
	m := mapping.ToModelPrepaymentApplication(application)

	query := `
		INSERT INTO prepayment_applications (application_id, prepayment_id, document_id, applied_amount, transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.ApplicationID,
		m.PrepaymentID,
		m.DocumentID,
		m.AppliedAmount,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert prepayment application "+m.ApplicationID, err)
	}

	return nil
}

// FindApplicationsByPrepaymentID retrieves the application history of a prepayment.
func (r *PgxPrepaymentRepository) FindApplicationsByPrepaymentID(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error) {
	query := `
		SELECT application_id, prepayment_id, document_id, applied_amount, transaction_id, created_at, created_by, last_updated_at, last_updated_by
		FROM prepayment_applications
		WHERE prepayment_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, prepaymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications for prepayment "+prepaymentID, err)
	}
	defer rows.Close()

	applications := []domain.PrepaymentApplication{}
	for rows.Next() {
		var m models.PrepaymentApplication
		err := rows.Scan(
			&m.ApplicationID,
			&m.PrepaymentID,
			&m.DocumentID,
			&m.AppliedAmount,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application row for prepayment "+prepaymentID, err)
		}
		applications = append(applications, mapping.ToDomainPrepaymentApplication(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating application rows for prepayment "+prepaymentID, err)
	}

	return applications, nil
}

// ListPrepaymentsByParty retrieves the prepayments of one party, newest first.
func (r *PgxPrepaymentRepository) ListPrepaymentsByParty(ctx context.Context, orgID string, partyID string, limit int, nextToken *string) ([]domain.Prepayment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + prepaymentColumns + ` FROM prepayments`
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
		return nil, nil, apperrors.NewAppError(500, "failed to query prepayments for party "+partyID, err)
	}
	defer rows.Close()

	modelPrepayments := make([]models.Prepayment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPrepayment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan prepayment row for party "+partyID, scanErr)
		}
		modelPrepayments = append(modelPrepayments, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating prepayment rows for party "+partyID, err)
	}

	var nextTokenVal *string
	results := modelPrepayments
	if len(modelPrepayments) > limit {
		last := modelPrepayments[limit-1]
		newToken := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelPrepayments[:limit]
	}

	return mapping.ToDomainPrepaymentSlice(results), nextTokenVal, nil
}
