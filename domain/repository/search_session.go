package repository

import (
	"context"

	"yt-dashboard/domain/model"
)

// ISearchSessionStore keeps pagination sessions.
// Update applies fn atomically against the stored session; when fn returns
// an error nothing is written and the error is returned unchanged.
type ISearchSessionStore interface {
	Create(ctx context.Context, session *model.SearchSession) error
	Get(ctx context.Context, id string) (*model.SearchSession, error)
	Update(ctx context.Context, id string, fn func(s *model.SearchSession) error) (*model.SearchSession, error)
	Delete(ctx context.Context, id string) error
}
