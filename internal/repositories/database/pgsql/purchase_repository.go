package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/models"
	"github.com/perkvault/rewards_backend/internal/utils/mapping"
)

type PgxPurchaseRepository struct {
	BaseRepository
	employeeRepo portsrepo.EmployeeRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	historyRepo  portsrepo.HistoryRecorder
}

// newPgxPurchaseRepository creates a new repository for purchase data. The
// injected repositories supply the in-transaction balance, stock and audit
// primitives the workflow methods compose.
func newPgxPurchaseRepository(pool *pgxpool.Pool, employeeRepo portsrepo.EmployeeRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, historyRepo portsrepo.HistoryRecorder) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
		employeeRepo:   employeeRepo,
		productRepo:    productRepo,
		historyRepo:    historyRepo,
	}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryWithTx
var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

const purchaseColumns = `id, employee_id, product_id, product_name, quantity, diamond_cost, status, rejection_reason, approved_by, approved_at, created_at`

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.ID,
		&m.EmployeeID,
		&m.ProductID,
		&m.ProductName,
		&m.Quantity,
		&m.DiamondCost,
		&m.Status,
		&m.RejectionReason,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreatePurchase spends diamonds on a product inside one transaction: the
// employee and product rows are locked, stock and balance are validated on
// the locked values, the debit, stock decrement, pending purchase row and
// audit record all commit together.
func (r *PgxPurchaseRepository) CreatePurchase(ctx context.Context, employeeID, productID, quantity int64, now time.Time) (*domain.Purchase, int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	// Lock order is always employee then product to avoid deadlocks between
	// concurrent workflows.
	employee, err := r.employeeRepo.FindEmployeeForUpdate(ctx, tx, employeeID)
	if err != nil {
		return nil, 0, err
	}

	product, err := r.productRepo.FindProductForUpdate(ctx, tx, productID)
	if err != nil {
		return nil, 0, err
	}
	if product.IsArchived {
		return nil, 0, apperrors.NewValidationError("Product is no longer available")
	}

	totalCost, err := domain.ValidatePurchase(*employee, *product, quantity)
	if err != nil {
		return nil, 0, err
	}

	newBalance, err := r.employeeRepo.AddToBalanceInTx(ctx, tx, employeeID, -totalCost, now)
	if err != nil {
		return nil, 0, err
	}

	if err := r.productRepo.AdjustQuantityInTx(ctx, tx, productID, -quantity, now); err != nil {
		return nil, 0, err
	}

	// Snapshot name and cost so later reads never depend on catalog edits.
	m := models.Purchase{
		EmployeeID:  employeeID,
		ProductID:   productID,
		ProductName: product.Name,
		Quantity:    quantity,
		DiamondCost: totalCost,
		Status:      models.PurchaseStatus(domain.PurchaseStatusPending),
		CreatedAt:   now,
	}
	insertQuery := `
		INSERT INTO purchases (employee_id, product_id, product_name, quantity, diamond_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.EmployeeID,
		m.ProductID,
		m.ProductName,
		m.Quantity,
		m.DiamondCost,
		m.Status,
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to insert purchase", err)
	}

	record := domain.History{
		EmployeeID:   employeeID,
		EmployeeName: employee.Name,
		Type:         domain.HistoryTypePurchase,
		Action:       domain.HistoryActionCreated,
		Details:      fmt.Sprintf("Purchased %dx %s (Pending Approval)", quantity, product.Name),
		Diamonds:     -totalCost,
		CreatedAt:    now,
	}
	if err := r.historyRepo.AppendHistoryInTx(ctx, tx, record); err != nil {
		return nil, 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}

	purchase := mapping.ToDomainPurchase(m)
	return &purchase, newBalance, nil
}

// ApprovePurchase transitions pending -> accepted. The purchase row is
// locked first so concurrent approve/reject calls serialize; the loser sees
// a non-pending status and fails validation.
func (r *PgxPurchaseRepository) ApprovePurchase(ctx context.Context, purchaseID, adminID int64, adminName string, now time.Time) (*domain.Purchase, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	purchase, err := r.findPurchaseForUpdate(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.EnsurePending(); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE purchases
		SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, purchaseID, string(domain.PurchaseStatusAccepted), adminID, now); err != nil {
		return nil, fmt.Errorf("failed to update purchase status: %w", err)
	}

	ownerName, err := r.employeeName(ctx, tx, purchase.EmployeeID)
	if err != nil {
		return nil, err
	}

	record := domain.History{
		EmployeeID:   purchase.EmployeeID,
		EmployeeName: ownerName,
		Type:         domain.HistoryTypePurchase,
		Action:       domain.HistoryActionApproved,
		Details:      fmt.Sprintf("Purchase approved: %s. Approved by %s", purchase.ProductName, adminName),
		Diamonds:     0,
		CreatedAt:    now,
	}
	if err := r.historyRepo.AppendHistoryInTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	purchase.Status = domain.PurchaseStatusAccepted
	purchase.ApprovedBy = &adminID
	purchase.ApprovedAt = &now
	return purchase, nil
}

// RejectPurchase transitions pending -> rejected, refunds the full snapshot
// cost and restores the purchased quantity to stock, all in one transaction.
func (r *PgxPurchaseRepository) RejectPurchase(ctx context.Context, purchaseID, adminID int64, adminName, reason string, now time.Time) (*domain.Purchase, int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx)

	purchase, err := r.findPurchaseForUpdate(ctx, tx, purchaseID)
	if err != nil {
		return nil, 0, err
	}
	if err := purchase.EnsurePending(); err != nil {
		return nil, 0, err
	}

	employee, err := r.employeeRepo.FindEmployeeForUpdate(ctx, tx, purchase.EmployeeID)
	if err != nil {
		return nil, 0, err
	}

	refund, restock := purchase.RejectionRefund()
	newBalance, err := r.employeeRepo.AddToBalanceInTx(ctx, tx, purchase.EmployeeID, refund, now)
	if err != nil {
		return nil, 0, err
	}

	// The product row still exists: the purchases FK blocks catalog deletes.
	if _, err := r.productRepo.FindProductForUpdate(ctx, tx, purchase.ProductID); err != nil {
		return nil, 0, err
	}
	if err := r.productRepo.AdjustQuantityInTx(ctx, tx, purchase.ProductID, restock, now); err != nil {
		return nil, 0, err
	}

	updateQuery := `
		UPDATE purchases
		SET status = $2, rejection_reason = $3, approved_by = $4, approved_at = $5
		WHERE id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, purchaseID, string(domain.PurchaseStatusRejected), reason, adminID, now); err != nil {
		return nil, 0, fmt.Errorf("failed to update purchase status: %w", err)
	}

	record := domain.History{
		EmployeeID:   purchase.EmployeeID,
		EmployeeName: employee.Name,
		Type:         domain.HistoryTypePurchase,
		Action:       domain.HistoryActionRejected,
		Details:      fmt.Sprintf("Purchase rejected: %s. Reason: %s. Refunded by %s", purchase.ProductName, reason, adminName),
		Diamonds:     refund,
		CreatedAt:    now,
	}
	if err := r.historyRepo.AppendHistoryInTx(ctx, tx, record); err != nil {
		return nil, 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}

	purchase.Status = domain.PurchaseStatusRejected
	purchase.RejectionReason = reason
	purchase.ApprovedBy = &adminID
	purchase.ApprovedAt = &now
	return purchase, newBalance, nil
}

// FindPurchaseByID retrieves a purchase by primary key.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id = $1;`, purchaseColumns)

	m, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID: %w", err)
	}

	p := mapping.ToDomainPurchase(*m)
	return &p, nil
}

// ListPurchasesByEmployee retrieves an employee's purchases, newest first.
func (r *PgxPurchaseRepository) ListPurchasesByEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]domain.Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM purchases
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3;`, purchaseColumns)

	return r.queryPurchases(ctx, query, employeeID, limit, offset)
}

// ListPurchasesByStatus retrieves purchases in a given status, oldest first
// (approval queue order).
func (r *PgxPurchaseRepository) ListPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus, limit, offset int) ([]domain.Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM purchases
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3;`, purchaseColumns)

	return r.queryPurchases(ctx, query, string(status), limit, offset)
}

func (r *PgxPurchaseRepository) queryPurchases(ctx context.Context, query string, args ...any) ([]domain.Purchase, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var ms []models.Purchase
	for rows.Next() {
		m, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", err)
	}

	return mapping.ToDomainPurchaseSlice(ms), nil
}

// findPurchaseForUpdate loads a purchase row with FOR UPDATE so concurrent
// approve/reject calls on the same purchase serialize.
func (r *PgxPurchaseRepository) findPurchaseForUpdate(ctx context.Context, tx pgx.Tx, purchaseID int64) (*domain.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id = $1 FOR UPDATE;`, purchaseColumns)

	m, err := scanPurchase(tx.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Purchase not found")
		}
		return nil, fmt.Errorf("failed to lock purchase row: %w", err)
	}

	p := mapping.ToDomainPurchase(*m)
	return &p, nil
}

func (r *PgxPurchaseRepository) employeeName(ctx context.Context, tx pgx.Tx, employeeID int64) (string, error) {
	var name string
	err := tx.QueryRow(ctx, `SELECT name FROM employees WHERE id = $1;`, employeeID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("Employee not found")
		}
		return "", fmt.Errorf("failed to load employee name: %w", err)
	}
	return name, nil
}
