package ports

import (
	"context"

	"go.trai.ch/den/internal/core/domain"
)

//go:generate mockgen -source=git.go -destination=mocks/mock_git.go -package=mocks

// GitResolver fetches a repository reference into a local checkout. The
// checkout cache is content addressed, so repeated fetches of the same
// reference are cheap.
type GitResolver interface {
	Checkout(ctx context.Context, ref domain.GitReference) (domain.GitCheckout, error)
}
