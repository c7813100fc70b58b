package tableorder

import (
	"context"
	"fmt"

	"github.com/aquamarinepk/aqm"
)

// SubmitItemRequest is the payload accepted by the order service for one
// item. The table travels as a number on the wire.
type SubmitItemRequest struct {
	Code     int `json:"code"`
	Quantity int `json:"quantity"`
	Table    int `json:"table"`
}

// ItemDispatcher performs one item submission round trip.
type ItemDispatcher interface {
	SubmitItem(ctx context.Context, req SubmitItemRequest) error
}

// OrderDataAccess submits items to the order service. Any non-2xx response
// or transport failure surfaces as an error from the client.
type OrderDataAccess struct {
	client *aqm.ServiceClient
}

func NewOrderDataAccess(client *aqm.ServiceClient) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

func (da *OrderDataAccess) SubmitItem(ctx context.Context, req SubmitItemRequest) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}

	if _, err := da.client.Create(ctx, "item", req); err != nil {
		return err
	}
	return nil
}
