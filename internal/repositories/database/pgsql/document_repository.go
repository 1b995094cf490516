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

const documentColumns = `document_id, org_id, document_type, party_id, doc_number, date, due_date, currency_code, total, due_balance, status, is_voided, voided_at, voided_by, posting_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for invoice/bill data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	var voidedBy sql.NullString

	err := row.Scan(
		&m.DocumentID,
		&m.OrgID,
		&m.DocumentType,
		&m.PartyID,
		&m.DocNumber,
		&m.Date,
		&m.DueDate,
		&m.CurrencyCode,
		&m.Total,
		&m.DueBalance,
		&m.Status,
		&m.IsVoided,
		&m.VoidedAt,
		&voidedBy,
		&m.PostingTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.VoidedBy = voidedBy.String
	return &m, nil
}

// SaveDocumentInTx persists a document and its items within a caller-owned transaction.
func (r *PgxDocumentRepository) SaveDocumentInTx(ctx context.Context, tx pgx.Tx, doc domain.Document, items []domain.DocumentItem) error {
	m := mapping.ToModelDocument(doc)

	docQuery := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, docQuery,
		m.DocumentID,
		m.OrgID,
		m.DocumentType,
		m.PartyID,
		m.DocNumber,
		m.Date,
		m.DueDate,
		m.CurrencyCode,
		m.Total,
		m.DueBalance,
		m.Status,
		m.IsVoided,
		m.VoidedAt,
		nullString(m.VoidedBy),
		m.PostingTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document number %s already exists in org %s", apperrors.ErrDuplicate, m.DocNumber, m.OrgID)
		}
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO document_items (item_id, document_id, product_id, name, quantity, unit_price, account_id, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, item := range items {
		mi := mapping.ToModelDocumentItem(item)
		batch.Queue(itemQuery,
			mi.ItemID,
			mi.DocumentID,
			nullString(mi.ProductID),
			mi.Name,
			mi.Quantity,
			mi.UnitPrice,
			mi.AccountID,
			mi.LineTotal,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item batch for document "+m.DocumentID, err)
	}

	return nil
}

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}

	domainDoc := mapping.ToDomainDocument(*m)
	return &domainDoc, nil
}

// FindItemsByDocumentID retrieves the line items of a document.
func (r *PgxDocumentRepository) FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.DocumentItem, error) {
	query := `
		SELECT item_id, document_id, product_id, name, quantity, unit_price, account_id, line_total
		FROM document_items
		WHERE document_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for document "+documentID, err)
	}
	defer rows.Close()

	items := []domain.DocumentItem{}
	for rows.Next() {
		var m models.DocumentItem
		var productID sql.NullString
		err := rows.Scan(
			&m.ItemID,
			&m.DocumentID,
			&productID,
			&m.Name,
			&m.Quantity,
			&m.UnitPrice,
			&m.AccountID,
			&m.LineTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for document "+documentID, err)
		}
		m.ProductID = productID.String
		items = append(items, mapping.ToDomainDocumentItem(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for document "+documentID, err)
	}

	return items, nil
}

// ListDocuments retrieves a paginated list of documents of one type for an org.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, orgID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + documentColumns + ` FROM documents`
	filterClause := `WHERE org_id = $1 AND document_type = $2`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{orgID, string(docType)}

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
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for org "+orgID, err)
	}
	defer rows.Close()

	modelDocs := make([]models.Document, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row for org "+orgID, scanErr)
		}
		modelDocs = append(modelDocs, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows for org "+orgID, err)
	}

	var nextTokenVal *string
	results := modelDocs
	if len(modelDocs) > limit {
		lastDoc := modelDocs[limit-1]
		newToken := pagination.EncodeToken(lastDoc.Date, lastDoc.CreatedAt)
		nextTokenVal = &newToken
		results = modelDocs[:limit]
	}

	return mapping.ToDomainDocumentSlice(results), nextTokenVal, nil
}

// FindDocumentByIDForUpdate selects a document and locks its row within a transaction.
func (r *PgxDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 FOR UPDATE;`

	m, err := scanDocument(tx.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock document "+documentID, err)
	}

	domainDoc := mapping.ToDomainDocument(*m)
	return &domainDoc, nil
}

// UpdateDocumentSettlementInTx writes a new due balance and status for a locked document.
func (r *PgxDocumentRepository) UpdateDocumentSettlementInTx(ctx context.Context, tx pgx.Tx, documentID string, dueBalance decimal.Decimal, status domain.DocumentStatus, userID string) error {
	query := `
		UPDATE documents
		SET due_balance = $2, status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE document_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query, documentID, dueBalance, string(status), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update settlement for document "+documentID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// MarkDocumentVoidedInTx flags a document voided.
func (r *PgxDocumentRepository) MarkDocumentVoidedInTx(ctx context.Context, tx pgx.Tx, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)

	query := `
		UPDATE documents
		SET status = $2, is_voided = TRUE, voided_at = $3, voided_by = $4, due_balance = $5, last_updated_at = $6, last_updated_by = $7
		WHERE document_id = $1 AND is_voided = FALSE;
	`

	cmdTag, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.Status,
		m.VoidedAt,
		nullString(m.VoidedBy),
		m.DueBalance,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark document voided "+m.DocumentID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SavePaymentInTx persists an immutable payment row within a caller-owned transaction.
func (r *PgxDocumentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payments (payment_id, org_id, document_id, amount, payment_account_id, payment_date, method, transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.OrgID,
		m.DocumentID,
		m.Amount,
		m.PaymentAccountID,
		m.PaymentDate,
		m.Method,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	return nil
}

// FindPaymentsByDocumentID retrieves all payments recorded against a document.
func (r *PgxDocumentRepository) FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, org_id, document_id, amount, payment_account_id, payment_date, method, transaction_id, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE document_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for document "+documentID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.OrgID,
			&m.DocumentID,
			&m.Amount,
			&m.PaymentAccountID,
			&m.PaymentDate,
			&m.Method,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for document "+documentID, err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for document "+documentID, err)
	}

	return payments, nil
}
