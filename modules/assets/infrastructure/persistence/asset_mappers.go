package persistence

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
)

// dbAsset mirrors the assets table row. Attributes travel as a JSONB array of
// {key, value} objects so the bag keeps its file order.
type dbAsset struct {
	ID            uuid.UUID
	PID           string
	Type          string
	Ownership     string
	Status        string
	Brand         string
	Model         string
	SerialNumber  string
	OldTag        string
	OldUser       string
	Price         *string
	AssignedTo    *uuid.UUID
	PurchasedAt   *time.Time
	WarrantyAt    *time.Time
	AssignedAt    *time.Time
	ReturnAt      *time.Time
	MaintenanceAt *time.Time
	Components    []string
	Attributes    []byte
}

type dbAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func toDBAsset(a asset.Asset) (dbAsset, error) {
	m := dbAsset{
		ID:            a.ID(),
		PID:           a.PID(),
		Type:          string(a.Type()),
		Ownership:     string(a.Ownership()),
		Status:        string(a.Status()),
		Brand:         a.Brand(),
		Model:         a.Model(),
		SerialNumber:  a.SerialNumber(),
		OldTag:        a.OldTag(),
		OldUser:       a.OldUser(),
		AssignedTo:    a.AssignedTo(),
		PurchasedAt:   a.PurchasedAt(),
		WarrantyAt:    a.WarrantyAt(),
		AssignedAt:    a.AssignedAt(),
		ReturnAt:      a.ReturnAt(),
		MaintenanceAt: a.MaintenanceAt(),
		Components:    a.Components(),
	}
	if p := a.Price(); p != nil {
		s := p.String()
		m.Price = &s
	}
	if attrs := a.Attributes(); len(attrs) > 0 {
		out := make([]dbAttribute, 0, len(attrs))
		for _, attr := range attrs {
			out = append(out, dbAttribute{Key: attr.Key, Value: attr.Value})
		}
		raw, err := json.Marshal(out)
		if err != nil {
			return dbAsset{}, errors.Wrap(err, "failed to marshal asset attributes")
		}
		m.Attributes = raw
	}
	return m, nil
}

func scanAsset(row pgx.Row) (asset.Asset, error) {
	var (
		m                    dbAsset
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&m.ID, &m.PID, &m.Type, &m.Ownership, &m.Status,
		&m.Brand, &m.Model, &m.SerialNumber, &m.OldTag, &m.OldUser,
		&m.Price, &m.AssignedTo,
		&m.PurchasedAt, &m.WarrantyAt, &m.AssignedAt, &m.ReturnAt, &m.MaintenanceAt,
		&m.Components, &m.Attributes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return asset.Asset{}, err
	}
	return toDomainAsset(m, createdAt, updatedAt)
}

func toDomainAsset(m dbAsset, createdAt, updatedAt time.Time) (asset.Asset, error) {
	details := asset.Details{
		Type:          asset.Type(m.Type),
		Ownership:     asset.Ownership(m.Ownership),
		Status:        asset.Status(m.Status),
		Brand:         m.Brand,
		Model:         m.Model,
		SerialNumber:  m.SerialNumber,
		OldTag:        m.OldTag,
		OldUser:       m.OldUser,
		AssignedTo:    m.AssignedTo,
		PurchasedAt:   m.PurchasedAt,
		WarrantyAt:    m.WarrantyAt,
		AssignedAt:    m.AssignedAt,
		ReturnAt:      m.ReturnAt,
		MaintenanceAt: m.MaintenanceAt,
		Components:    m.Components,
	}
	if m.Price != nil {
		p, err := decimal.NewFromString(*m.Price)
		if err != nil {
			return asset.Asset{}, errors.Wrap(err, "failed to parse asset price")
		}
		details.Price = &p
	}
	if len(m.Attributes) > 0 {
		var raw []dbAttribute
		if err := json.Unmarshal(m.Attributes, &raw); err != nil {
			return asset.Asset{}, errors.Wrap(err, "failed to unmarshal asset attributes")
		}
		attrs := make([]asset.Attribute, 0, len(raw))
		for _, attr := range raw {
			attrs = append(attrs, asset.Attribute{Key: attr.Key, Value: attr.Value})
		}
		details.Attributes = attrs
	}
	return asset.Hydrate(m.ID, m.PID, details, createdAt, updatedAt), nil
}
