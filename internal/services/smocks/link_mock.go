package smocks

import (
	"context"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Submit(ctx context.Context, owner models.OwnerKey, rawURL string) (*models.Link, bool, error) {
	args := l.Called(ctx, owner, rawURL)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Bool(1), args.Error(2) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Resolve(ctx context.Context, code string) (*models.Link, error) {
	args := l.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) ListByOwner(ctx context.Context, owner models.OwnerKey) ([]models.Link, error) {
	args := l.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Remaining(ctx context.Context, owner models.OwnerKey) (int, error) {
	args := l.Called(ctx, owner)
	return args.Int(0), args.Error(1) //nolint:wrapcheck,errcheck
}
