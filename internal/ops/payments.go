package ops

import (
	"strconv"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// ListPayments returns all recurring payments in insertion order.
func ListPayments(s *store.Store) ([]record.Payment, error) {
	list, err := store.LoadPayments(s)
	if err != nil {
		return nil, err
	}
	if list.Payments == nil {
		return []record.Payment{}, nil
	}
	return list.Payments, nil
}

// AddPaymentInput contains parameters for the AddPayment operation.
type AddPaymentInput struct {
	Name     string
	Amount   float64
	Category string
	Notes    string
}

// AddPayment appends a new payment. The id is the highest existing
// numeric id + 1.
func AddPayment(s *store.Store, input AddPaymentInput) (*record.Payment, error) {
	if input.Name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}
	if input.Amount <= 0 {
		return nil, errors.NewInvalidRequest("amount must be positive")
	}
	if input.Category == "" {
		return nil, errors.NewInvalidRequest("category is required")
	}

	list, err := store.LoadPayments(s)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, p := range list.Payments {
		if n, err := strconv.Atoi(p.ID); err == nil && n > maxID {
			maxID = n
		}
	}

	now := time.Now()
	payment := record.Payment{
		ID:        strconv.Itoa(maxID + 1),
		Name:      input.Name,
		Amount:    input.Amount,
		Category:  input.Category,
		Notes:     input.Notes,
		CreatedAt: &now,
	}
	list.Payments = append(list.Payments, payment)

	if err := store.SavePayments(s, list); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePaymentInput contains parameters for the UpdatePayment
// operation. All fields replace the stored values.
type UpdatePaymentInput struct {
	ID       string
	Name     string
	Amount   float64
	Category string
	Notes    string
}

// UpdatePayment replaces a payment's fields and stamps the update time.
func UpdatePayment(s *store.Store, input UpdatePaymentInput) (*record.Payment, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.Name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}
	if input.Amount <= 0 {
		return nil, errors.NewInvalidRequest("amount must be positive")
	}

	list, err := store.LoadPayments(s)
	if err != nil {
		return nil, err
	}

	for i := range list.Payments {
		if list.Payments[i].ID != input.ID {
			continue
		}
		now := time.Now()
		list.Payments[i].Name = input.Name
		list.Payments[i].Amount = input.Amount
		list.Payments[i].Category = input.Category
		list.Payments[i].Notes = input.Notes
		list.Payments[i].UpdatedAt = &now
		if err := store.SavePayments(s, list); err != nil {
			return nil, err
		}
		payment := list.Payments[i]
		return &payment, nil
	}

	return nil, errors.NewNotFound("payment", input.ID)
}

// DeletePayment removes a payment. Fails with NotFound when the id is
// absent.
func DeletePayment(s *store.Store, id string) error {
	list, err := store.LoadPayments(s)
	if err != nil {
		return err
	}

	kept := make([]record.Payment, 0, len(list.Payments))
	for _, p := range list.Payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list.Payments) {
		return errors.NewNotFound("payment", id)
	}

	list.Payments = kept
	return store.SavePayments(s, list)
}
