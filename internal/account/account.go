package account

import "errors"

var ErrNotFound = errors.New("account not found")

// Account is a money holding place: a bank account, card or wallet.
type Account struct {
	ID           int64
	Name         string
	Type         string
	Institution  string
	CurrencyCode string
}
