package asset

import "strings"

type Type string

const (
	TypeComputer Type = "COMPUTER"
	TypeLaptop   Type = "LAPTOP"
	TypeOther    Type = "OTHER"

	DefaultType = TypeOther
)

type Ownership string

const (
	OwnershipCompany  Ownership = "COMPANY"
	OwnershipEmployee Ownership = "EMPLOYEE"
	OwnershipRented   Ownership = "RENTED"

	DefaultOwnership = OwnershipCompany
)

type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusRetired     Status = "RETIRED"
	StatusLost        Status = "LOST"
	StatusInStorage   Status = "IN_STORAGE"

	DefaultStatus = StatusActive
)

var (
	knownTypes = map[Type]struct{}{
		TypeComputer: {},
		TypeLaptop:   {},
		TypeOther:    {},
	}
	knownOwnerships = map[Ownership]struct{}{
		OwnershipCompany:  {},
		OwnershipEmployee: {},
		OwnershipRented:   {},
	}
	knownStatuses = map[Status]struct{}{
		StatusActive:      {},
		StatusMaintenance: {},
		StatusRetired:     {},
		StatusLost:        {},
		StatusInStorage:   {},
	}
)

// normalizeEnum upper-cases the value and collapses whitespace runs to a
// single underscore, so "in storage" becomes "IN_STORAGE".
func normalizeEnum(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(raw))), "_")
}

// CoerceType maps free text onto a Type. Unrecognized or empty input falls
// back to the default silently: a bad enum cell never rejects a row.
func CoerceType(raw string) Type {
	v := Type(normalizeEnum(raw))
	if _, ok := knownTypes[v]; ok {
		return v
	}
	return DefaultType
}

// CoerceOwnership maps free text onto an Ownership, translating the
// single-letter shorthand C and E before the generic pass.
func CoerceOwnership(raw string) Ownership {
	switch normalizeEnum(raw) {
	case "C":
		return OwnershipCompany
	case "E":
		return OwnershipEmployee
	}
	v := Ownership(normalizeEnum(raw))
	if _, ok := knownOwnerships[v]; ok {
		return v
	}
	return DefaultOwnership
}

// CoerceStatus maps free text onto a Status with the same fallback rules.
func CoerceStatus(raw string) Status {
	v := Status(normalizeEnum(raw))
	if _, ok := knownStatuses[v]; ok {
		return v
	}
	return DefaultStatus
}
