package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
	"finsight/internal/service"
	"finsight/mocks"
)

func TestNoteCreate_Success(t *testing.T) {
	repo := new(mocks.MockNoteRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Note) bool {
		return n.ID != uuid.Nil && n.Content == "À vérifier avec la liasse fiscale" && !n.CreatedAt.IsZero()
	})).Return(nil).Once()

	svc := service.NewNoteService(repo)
	note, err := svc.Create(context.Background(), "claire", "À vérifier avec la liasse fiscale")

	require.NoError(t, err)
	assert.Equal(t, "claire", note.Author)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestNoteCreate_EmptyContent(t *testing.T) {
	repo := new(mocks.MockNoteRepo)
	svc := service.NewNoteService(repo)

	_, err := svc.Create(context.Background(), "claire", "")
	require.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestNoteList_ClampsPagination(t *testing.T) {
	repo := new(mocks.MockNoteRepo)
	repo.On("List", mock.Anything, 0, 20).Return([]domain.Note{}, 0, nil).Twice()

	svc := service.NewNoteService(repo)

	_, _, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	_, _, err = svc.List(context.Background(), 0, 500)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNoteUpdate_EmptyContent(t *testing.T) {
	repo := new(mocks.MockNoteRepo)
	svc := service.NewNoteService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), "")
	require.Error(t, err)
	repo.AssertNotCalled(t, "Update")
}

func TestNoteUpdate_ReturnsCompleteEntity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	repo := new(mocks.MockNoteRepo)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(n *domain.Note) bool {
		return n.ID == id && n.Content == "nouveau contenu"
	})).Run(func(args mock.Arguments) {
		// The repository backfills the stored row's fields.
		n := args.Get(1).(*domain.Note)
		n.Author = "claire"
		n.CreatedAt = created
	}).Return(nil).Once()

	svc := service.NewNoteService(repo)
	note, err := svc.Update(context.Background(), id, "nouveau contenu")

	require.NoError(t, err)
	assert.Equal(t, "claire", note.Author)
	assert.Equal(t, created, note.CreatedAt)
	assert.False(t, note.UpdatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestNoteUpdate_PropagatesNotFound(t *testing.T) {
	repo := new(mocks.MockNoteRepo)
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrNotFound).Once()

	svc := service.NewNoteService(repo)
	_, err := svc.Update(context.Background(), uuid.New(), "nouveau contenu")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRatingCreate_ScoreBounds(t *testing.T) {
	repo := new(mocks.MockRatingRepo)
	svc := service.NewRatingService(repo)

	for _, score := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), "Acme", score, "")
		require.Error(t, err, "score %d should be rejected", score)
	}
	repo.AssertNotCalled(t, "Create")
}

func TestRatingCreate_Success(t *testing.T) {
	repo := new(mocks.MockRatingRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
		return r.Company == "Acme" && r.Score == 4
	})).Return(nil).Once()

	svc := service.NewRatingService(repo)
	rating, err := svc.Create(context.Background(), "Acme", 4, "solide")

	require.NoError(t, err)
	assert.Equal(t, 4, rating.Score)
	repo.AssertExpectations(t)
}

func TestRatingAverages(t *testing.T) {
	repo := new(mocks.MockRatingRepo)
	repo.On("CompanyAverages", mock.Anything).
		Return(map[string]float64{"Acme": 3.5}, nil).Once()

	svc := service.NewRatingService(repo)
	averages, err := svc.Averages(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 3.5, averages["Acme"], 1e-9)
	repo.AssertExpectations(t)
}

func TestRatingCreate_MissingCompany(t *testing.T) {
	repo := new(mocks.MockRatingRepo)
	svc := service.NewRatingService(repo)

	_, err := svc.Create(context.Background(), "", 3, "")
	assert.ErrorIs(t, err, domain.ErrMissingCompany)
	repo.AssertNotCalled(t, "Create")
}
