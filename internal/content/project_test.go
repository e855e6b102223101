package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/enbat/horizon-server-go/internal/cache"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) FindAll(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *mockProjectRepo) Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, id int64, params model.UpdateProjectParams) (*model.Project, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows from repository", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		repo.On("FindAll", ctx).Return([]model.Project{{ID: 1}, {ID: 2}}, nil)

		projects, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("nil rows become an empty slice", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		repo.On("FindAll", ctx).Return([]model.Project(nil), nil)

		projects, err := svc.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})

	t.Run("repository error maps to remote query error", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		repo.On("FindAll", ctx).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRemoteQuery, apperrors.GetCode(err))
	})
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the refetched list", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		params := model.CreateProjectParams{Title: "New Project"}
		repo.On("Create", ctx, params).Return(&model.Project{ID: 3}, nil)
		repo.On("FindAll", ctx).Return([]model.Project{{ID: 3}, {ID: 1}}, nil)

		projects, err := svc.Create(ctx, params)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a missing title before touching the repository", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		_, err := svc.Create(ctx, model.CreateProjectParams{})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id yields not found", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		params := model.UpdateProjectParams{Title: "Renamed"}
		repo.On("Update", ctx, int64(99), params).Return(nil, nil)

		_, err := svc.Update(ctx, 99, params)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("returns the refetched list", func(t *testing.T) {
		repo := new(mockProjectRepo)
		svc := NewProjectService(repo, nil)

		params := model.UpdateProjectParams{Title: "Renamed"}
		repo.On("Update", ctx, int64(1), params).Return(&model.Project{ID: 1}, nil)
		repo.On("FindAll", ctx).Return([]model.Project{{ID: 1}}, nil)

		projects, err := svc.Update(ctx, 1, params)
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, nil)

	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("FindAll", ctx).Return([]model.Project{}, nil)

	projects, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, projects)
	repo.AssertExpectations(t)
}

func TestProjectService_ListCaching(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*mockProjectRepo, *cache.Lists, *ProjectService) {
		t.Helper()
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		lists := cache.NewLists(client, time.Minute)
		repo := new(mockProjectRepo)
		return repo, lists, NewProjectService(repo, lists)
	}

	t.Run("second list is served from the cache", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.On("FindAll", ctx).Return([]model.Project{{ID: 1}, {ID: 2}}, nil).Once()

		first, err := svc.List(ctx)
		require.NoError(t, err)
		second, err := svc.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertExpectations(t)
	})

	t.Run("mutation invalidates the cache and refetches", func(t *testing.T) {
		repo, lists, svc := setup(t)
		repo.On("FindAll", ctx).Return([]model.Project{{ID: 1, Title: strPtr("Old")}}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(&model.Project{ID: 2}, nil)
		repo.On("FindAll", ctx).Return([]model.Project{
			{ID: 1, Title: strPtr("Old")},
			{ID: 2, Title: strPtr("New")},
		}, nil).Once()

		projects, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)

		projects, err = svc.Create(ctx, model.CreateProjectParams{Title: "New"})
		require.NoError(t, err)
		require.Len(t, projects, 2)

		// The cache now holds the post-mutation rows, so this read
		// must not hit the repository again.
		projects, err = svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 2)

		var cached []model.Project
		hit, err := lists.Get(ctx, ProjectsTable, &cached)
		require.NoError(t, err)
		require.True(t, hit)
		assert.Equal(t, projects, cached)
		repo.AssertExpectations(t)
	})
}
