// Package validation turns raw form fields into typed invoice input.
// It is pure: no database access, no side effects.
package validation

import (
	"strconv"
	"strings"

	"github.com/diewo77/go-dashboard/internal/models"
)

// Violations maps a field name to the ordered list of messages recorded
// against it. An empty map means the input passed every rule.
type Violations map[string][]string

// Add records a message against a field, preserving insertion order.
func (v Violations) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Empty reports whether no violations were recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// InvoiceInput is the typed result of validating raw invoice form fields.
// Amount is in major currency units (dollars); conversion to cents happens
// at persistence time.
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     models.InvoiceStatus
}

const (
	msgSelectCustomer = "Please select a customer."
	msgValidAmount    = "Please enter a valid amount."
	msgAmountPositive = "Please enter an amount greater than $0."
	msgSelectStatus   = "Please select an invoice status."
)

// ValidateInvoice checks the customerId, amount and status fields and either
// returns a fully-typed input or the complete set of field violations. All
// fields are checked; validation never stops at the first failure.
//
// Non-numeric or missing amounts are rejected outright rather than coerced
// to zero, so a zero amount can never slip past the greater-than-zero rule.
func ValidateInvoice(fields map[string]string) (InvoiceInput, Violations) {
	var in InvoiceInput
	v := Violations{}

	in.CustomerID = strings.TrimSpace(fields["customerId"])
	if in.CustomerID == "" {
		v.Add("customerId", msgSelectCustomer)
	}

	rawAmount := strings.TrimSpace(fields["amount"])
	if rawAmount == "" {
		v.Add("amount", msgValidAmount)
	} else if amount, err := strconv.ParseFloat(rawAmount, 64); err != nil {
		v.Add("amount", msgValidAmount)
	} else if amount <= 0 {
		v.Add("amount", msgAmountPositive)
	} else {
		in.Amount = amount
	}

	status := models.InvoiceStatus(strings.TrimSpace(fields["status"]))
	if !status.Valid() {
		v.Add("status", msgSelectStatus)
	} else {
		in.Status = status
	}

	if !v.Empty() {
		return InvoiceInput{}, v
	}
	return in, v
}
