package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attribute is one entry of the free-form attribute bag: secondary,
// non-schematized asset properties kept in file order.
type Attribute struct {
	Key   string
	Value string
}

// Well-known attribute bag keys. The bag tolerates absence of any of them.
const (
	AttrRAM           = "RAM"
	AttrProcessor     = "Processor"
	AttrOS            = "OS"
	AttrStorage       = "Storage"
	AttrPassword      = "Password"
	AttrVendorInvoice = "VendorInvoice"
	AttrNote          = "Note"
	AttrCharger       = "Charger"
	AttrMouse         = "Mouse"
	AttrMobile        = "Mobile"
)

// Details carries everything an asset record holds besides its identity.
type Details struct {
	Type          Type
	Ownership     Ownership
	Status        Status
	Brand         string
	Model         string
	SerialNumber  string
	OldTag        string
	OldUser       string
	Price         *decimal.Decimal
	AssignedTo    *uuid.UUID
	PurchasedAt   *time.Time
	WarrantyAt    *time.Time
	AssignedAt    *time.Time
	ReturnAt      *time.Time
	MaintenanceAt *time.Time
	Components    []string
	Attributes    []Attribute
}

// Asset is a hardware inventory record. PID is the natural key: unique across
// all assets and never overwritten by an import.
type Asset struct {
	id        uuid.UUID
	pid       string
	details   Details
	createdAt time.Time
	updatedAt time.Time
}

func New(pid string, details Details) Asset {
	return Asset{
		id:      uuid.New(),
		pid:     strings.TrimSpace(pid),
		details: normalized(details),
	}
}

func Hydrate(id uuid.UUID, pid string, details Details, createdAt, updatedAt time.Time) Asset {
	return Asset{
		id:        id,
		pid:       strings.TrimSpace(pid),
		details:   normalized(details),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func normalized(d Details) Details {
	if d.Type == "" {
		d.Type = DefaultType
	}
	if d.Ownership == "" {
		d.Ownership = DefaultOwnership
	}
	if d.Status == "" {
		d.Status = DefaultStatus
	}
	d.Brand = strings.TrimSpace(d.Brand)
	d.Model = strings.TrimSpace(d.Model)
	d.SerialNumber = strings.TrimSpace(d.SerialNumber)
	d.OldTag = strings.TrimSpace(d.OldTag)
	d.OldUser = strings.TrimSpace(d.OldUser)
	return d
}

func (a Asset) ID() uuid.UUID             { return a.id }
func (a Asset) PID() string               { return a.pid }
func (a Asset) Type() Type                { return a.details.Type }
func (a Asset) Ownership() Ownership      { return a.details.Ownership }
func (a Asset) Status() Status            { return a.details.Status }
func (a Asset) Brand() string             { return a.details.Brand }
func (a Asset) Model() string             { return a.details.Model }
func (a Asset) SerialNumber() string      { return a.details.SerialNumber }
func (a Asset) OldTag() string            { return a.details.OldTag }
func (a Asset) OldUser() string           { return a.details.OldUser }
func (a Asset) Price() *decimal.Decimal   { return a.details.Price }
func (a Asset) AssignedTo() *uuid.UUID    { return a.details.AssignedTo }
func (a Asset) PurchasedAt() *time.Time   { return a.details.PurchasedAt }
func (a Asset) WarrantyAt() *time.Time    { return a.details.WarrantyAt }
func (a Asset) AssignedAt() *time.Time    { return a.details.AssignedAt }
func (a Asset) ReturnAt() *time.Time      { return a.details.ReturnAt }
func (a Asset) MaintenanceAt() *time.Time { return a.details.MaintenanceAt }
func (a Asset) Components() []string      { return a.details.Components }
func (a Asset) Attributes() []Attribute   { return a.details.Attributes }
func (a Asset) CreatedAt() time.Time      { return a.createdAt }
func (a Asset) UpdatedAt() time.Time      { return a.updatedAt }
func (a Asset) IsZero() bool              { return a.id == uuid.Nil && a.pid == "" }

// Attribute returns the bag value under key, or "" when absent.
func (a Asset) Attribute(key string) string {
	for _, attr := range a.details.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

// ParseComponents splits a comma-separated components cell into trimmed,
// non-empty entries.
func ParseComponents(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
