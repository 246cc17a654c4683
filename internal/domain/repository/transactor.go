package repository

import "context"

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn take part in that transaction; any error returned
// by fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
