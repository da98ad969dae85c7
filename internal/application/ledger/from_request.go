package ledger

import (
	"context"

	"github.com/invorya/stock-ledger/internal/application/dto"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, MovementInput).
// Usar desde handlers HTTP que ya tengan companyID y userID resueltos del token.
func (uc *LedgerUseCase) RecordMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	result, err := uc.RecordMovement(ctx, MovementInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Reason:    in.Reason,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.MovementResponse{
		MovementID: result.MovementID,
		ProductID:  result.ProductID,
		Balance:    result.Balance,
	}
	if result.Transition != nil {
		resp.Transition = &dto.AlertTransitionDTO{From: result.Transition.From, To: result.Transition.To}
	}
	return resp, nil
}
