package entity

import "time"

// AlertType classifies the condition an alert reports.
type AlertType string

// Alert types.
const (
	AlertLowStock          AlertType = "low_stock"
	AlertOutOfStock        AlertType = "out_of_stock"
	AlertQuoteExpired      AlertType = "quote_expired"
	AlertPendingOrder      AlertType = "pending_order"
	AlertManufacturerOrder AlertType = "manufacturer_order"
)

// Severity levels for alerts.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SubjectKind tags the variant of an AlertSubject.
type SubjectKind string

const (
	SubjectProduct SubjectKind = "product"
	SubjectQuote   SubjectKind = "quote"
	SubjectNone    SubjectKind = ""
)

// AlertSubject is the polymorphic reference to the entity an alert is about:
// a product SKU, a quote id, or nothing for system-wide alerts. Modeled as a
// tagged union so an alert can never carry a quote kind with a product key.
type AlertSubject struct {
	kind SubjectKind
	id   string
}

// ProductSubject references a product by SKU.
func ProductSubject(sku string) AlertSubject {
	return AlertSubject{kind: SubjectProduct, id: sku}
}

// QuoteSubject references a quote by id.
func QuoteSubject(quoteID string) AlertSubject {
	return AlertSubject{kind: SubjectQuote, id: quoteID}
}

// NoSubject marks a system-wide alert.
func NoSubject() AlertSubject {
	return AlertSubject{}
}

// SubjectFromColumns rebuilds a subject from its persisted column pair.
func SubjectFromColumns(entityType, entityID string) AlertSubject {
	return AlertSubject{kind: SubjectKind(entityType), id: entityID}
}

// Kind returns the variant tag.
func (s AlertSubject) Kind() SubjectKind { return s.kind }

// ID returns the referenced key (SKU or quote id; empty for none).
func (s AlertSubject) ID() string { return s.id }

// Columns returns the (entity_type, entity_id) pair for persistence.
func (s AlertSubject) Columns() (string, string) {
	return string(s.kind), s.id
}

// Alert is a derived notification: its existence and content are a function
// of current system state, recomputed by the derivers rather than authored.
//
// Invariant: at most one unresolved alert exists per (Type, Subject); the
// derivers update the open row in place instead of inserting duplicates.
// Resolved is a soft terminal marker for one occurrence of the condition; a
// later re-occurrence creates a fresh alert.
type Alert struct {
	ID         string
	Type       AlertType
	Severity   Severity
	Title      string
	Message    string
	Subject    AlertSubject
	Read       bool
	Resolved   bool
	ResolvedAt *time.Time
	CreatedAt  time.Time
}
