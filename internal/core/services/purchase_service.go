package services

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// purchaseService orchestrates the purchase lifecycle. The atomicity of
// each operation lives in the repository workflow methods; this layer does
// input validation, admin lookups, logging and event broadcasting.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	employeeRepo portsrepo.EmployeeRepositoryFacade
	broadcaster  portssvc.EventBroadcaster
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryWithTx, employeeRepo portsrepo.EmployeeRepositoryFacade, broadcaster portssvc.EventBroadcaster) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		employeeRepo: employeeRepo,
		broadcaster:  broadcaster,
	}
}

// Ensure purchaseService implements the portssvc.PurchaseSvcFacade interface
var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchase spends diamonds on a product and returns the pending
// purchase together with the employee's new balance.
func (s *purchaseService) CreatePurchase(ctx context.Context, employeeID int64, productID int64, quantity int64) (*domain.Purchase, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if quantity <= 0 {
		return nil, 0, apperrors.NewValidationError("Quantity must be greater than 0")
	}

	now := time.Now().UTC()
	purchase, newBalance, err := s.purchaseRepo.CreatePurchase(ctx, employeeID, productID, quantity, now)
	if err != nil {
		logger.Warn("Failed to create purchase", slog.Int64("product_id", productID), slog.Int64("quantity", quantity), slog.String("error", err.Error()))
		return nil, 0, err
	}

	logger.Info("Purchase created",
		slog.Int64("purchase_id", purchase.ID),
		slog.Int64("product_id", productID),
		slog.Int64("diamond_cost", purchase.DiamondCost),
		slog.Int64("new_balance", newBalance),
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("purchase.created", dto.ToPurchaseResponse(purchase))
	}
	return purchase, newBalance, nil
}

// ApprovePurchase finalizes a pending purchase. The diamonds were debited
// at creation so no balance moves here.
func (s *purchaseService) ApprovePurchase(ctx context.Context, purchaseID int64, adminID int64) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	admin, err := s.employeeRepo.FindEmployeeByID(ctx, adminID)
	if err != nil {
		logger.Error("Failed to load approving admin", slog.Int64("admin_id", adminID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	purchase, err := s.purchaseRepo.ApprovePurchase(ctx, purchaseID, adminID, admin.Name, now)
	if err != nil {
		logger.Warn("Failed to approve purchase", slog.Int64("purchase_id", purchaseID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Purchase approved", slog.Int64("purchase_id", purchaseID), slog.Int64("admin_id", adminID))

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("purchase.approved", dto.ToPurchaseResponse(purchase))
	}
	return purchase, nil
}

// RejectPurchase rejects a pending purchase, refunding the full cost and
// restoring the purchased quantity to stock.
func (s *purchaseService) RejectPurchase(ctx context.Context, purchaseID int64, adminID int64, reason string) (*domain.Purchase, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, 0, apperrors.NewValidationError("Rejection reason is required")
	}
	if utf8.RuneCountInString(reason) > 500 {
		return nil, 0, apperrors.NewValidationError("Rejection reason must be 500 characters or fewer")
	}

	admin, err := s.employeeRepo.FindEmployeeByID(ctx, adminID)
	if err != nil {
		logger.Error("Failed to load rejecting admin", slog.Int64("admin_id", adminID), slog.String("error", err.Error()))
		return nil, 0, err
	}

	now := time.Now().UTC()
	purchase, newBalance, err := s.purchaseRepo.RejectPurchase(ctx, purchaseID, adminID, admin.Name, reason, now)
	if err != nil {
		logger.Warn("Failed to reject purchase", slog.Int64("purchase_id", purchaseID), slog.String("error", err.Error()))
		return nil, 0, err
	}

	logger.Info("Purchase rejected",
		slog.Int64("purchase_id", purchaseID),
		slog.Int64("admin_id", adminID),
		slog.Int64("refunded", purchase.DiamondCost),
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("purchase.rejected", dto.ToPurchaseResponse(purchase))
	}
	return purchase, newBalance, nil
}

// GetPurchaseByID retrieves a specific purchase by its ID.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

// ListMyPurchases retrieves the employee's purchases, newest first.
func (s *purchaseService) ListMyPurchases(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.Purchase, error) {
	limit, offset = normalizePage(limit, offset)
	return s.purchaseRepo.ListPurchasesByEmployee(ctx, employeeID, limit, offset)
}

// ListPendingPurchases retrieves the approval queue, oldest first.
func (s *purchaseService) ListPendingPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	limit, offset = normalizePage(limit, offset)
	return s.purchaseRepo.ListPurchasesByStatus(ctx, domain.PurchaseStatusPending, limit, offset)
}
