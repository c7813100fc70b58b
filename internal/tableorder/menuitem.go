package tableorder

import (
	"github.com/appetiteclub/tableorder/internal/enums/itemstatus"
)

// MenuItem combines catalog data received from the menu service with the
// order-time state tracked for the current table session. Code is the join
// key and never changes once loaded.
type MenuItem struct {
	Code     int     `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// Ordered reports whether the item is part of the current order draft.
func (m *MenuItem) Ordered() bool {
	return m.Quantity > 0
}

// Eligible reports whether the item should be dispatched on the next submit.
// Items already confirmed with an unchanged quantity are skipped.
func (m *MenuItem) Eligible() bool {
	return m.Quantity > 0 && m.Status != itemstatus.Statuses.Success.Code()
}

// Total returns the line total for the item.
func (m *MenuItem) Total() float64 {
	return float64(m.Quantity) * m.Price
}

// NormalizeStatuses resets transient or unknown statuses to idle. Terminal
// statuses survive a reload; an in-flight loading marker does not, since it
// is only meaningful within the session that dispatched it.
func NormalizeStatuses(items []MenuItem) []MenuItem {
	for i := range items {
		switch items[i].Status {
		case itemstatus.Statuses.Idle.Code(),
			itemstatus.Statuses.Success.Code(),
			itemstatus.Statuses.Error.Code():
			// keep
		default:
			items[i].Status = itemstatus.Statuses.Idle.Code()
		}
	}
	return items
}
