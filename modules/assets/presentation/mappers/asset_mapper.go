package mappers

import (
	"time"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/modules/assets/presentation/viewmodels"
)

func AssetToListItem(a asset.Asset) viewmodels.AssetListItem {
	vm := viewmodels.AssetListItem{
		ID:           a.ID().String(),
		PID:          a.PID(),
		Type:         string(a.Type()),
		Ownership:    string(a.Ownership()),
		Status:       string(a.Status()),
		Brand:        a.Brand(),
		Model:        a.Model(),
		SerialNumber: a.SerialNumber(),
		Components:   a.Components(),
		PurchasedAt:  formatDate(a.PurchasedAt()),
	}
	if p := a.Price(); p != nil {
		vm.Price = p.String()
	}
	if owner := a.AssignedTo(); owner != nil {
		vm.AssignedTo = owner.String()
	}
	if attrs := a.Attributes(); len(attrs) > 0 {
		vm.Attributes = make(map[string]string, len(attrs))
		for _, attr := range attrs {
			vm.Attributes[attr.Key] = attr.Value
		}
	}
	return vm
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
