package smocks

import (
	"context"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/stretchr/testify/mock"
)

type RefresherMock struct {
	mock.Mock
}

func (r *RefresherMock) RefreshAll(ctx context.Context, links []models.Link) []models.Link {
	args := r.Called(ctx, links)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Link) //nolint:errcheck
}
