package pokemon

import "context"

// Repository defines the catalog storage contract.
//
// Load never fails because of a missing or corrupt backing document: such a
// catalog is reported as empty. Append and Replace rewrite the whole document.
type Repository interface {
	Load(context context.Context) ([]*Pokemon, error)
	Append(context context.Context, record *Pokemon) error
	Replace(context context.Context, records []*Pokemon) error
}
