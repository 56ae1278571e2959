package models

import "github.com/shopspring/decimal"

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	StatusUnpaid InvoiceStatus = "Unpaid"
	StatusPaid   InvoiceStatus = "Paid"
)

// ParseInvoiceStatus maps a submitted form value to an InvoiceStatus.
// The second return value is false for anything outside the enumeration.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch InvoiceStatus(s) {
	case StatusUnpaid, StatusPaid:
		return InvoiceStatus(s), true
	}
	return "", false
}

// Invoice is a customer invoice owned by a single user. Date holds the
// external DD/MM/YYYY representation, validated before persisting.
type Invoice struct {
	ID              int64
	UserID          int64
	CustomerName    string
	CustomerAddress string
	Date            string
	InvoiceNo       string
	Description     string
	Total           decimal.Decimal
	Status          InvoiceStatus
}
