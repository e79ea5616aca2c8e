package screeninginfra

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening"
)

func newMockRepo(t *testing.T) (*PostgresRunRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresRunRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func runColumns() []string {
	return []string{
		"id", "provider", "model", "job_description",
		"results", "manifest", "summary", "created_at",
	}
}

func TestGetByIDMissingRunIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM screening_runs").
		WillReturnRows(sqlmock.NewRows(runColumns()))

	_, err := repo.GetByID(context.Background(), kernel.NewRunID("missing"))
	assert.True(t, errx.IsCode(err, screening.CodeRunNotFound))
}

func TestGetByIDInfrastructureFailureIsNotNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM screening_runs").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), kernel.NewRunID("run-1"))

	assert.True(t, errx.IsCode(err, screening.CodeRunQueryFailed))
	assert.False(t, errx.IsCode(err, screening.CodeRunNotFound))
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 500, e.HTTPStatus)
}

func TestGetByIDCorruptSnapshotIsQueryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(runColumns()).AddRow(
		"run-1", "openai", "gpt-4o", "jd",
		[]byte("{not json"), []byte("[]"), []byte("{}"), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM screening_runs").WillReturnRows(rows)

	_, err := repo.GetByID(context.Background(), kernel.NewRunID("run-1"))
	assert.True(t, errx.IsCode(err, screening.CodeRunQueryFailed))
}

func TestListCountFailureIsQueryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM screening_runs`).
		WillReturnError(errors.New("server is shutting down"))

	_, err := repo.List(context.Background(), kernel.PaginationOptions{Page: 1, PageSize: 10})

	assert.True(t, errx.IsCode(err, screening.CodeRunQueryFailed))
	assert.False(t, errx.IsCode(err, screening.CodeRunNotFound))
}

func TestListSelectFailureIsQueryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM screening_runs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM screening_runs").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), kernel.PaginationOptions{Page: 1, PageSize: 10})
	assert.True(t, errx.IsCode(err, screening.CodeRunQueryFailed))
}

func TestListReturnsArchivedRuns(t *testing.T) {
	repo, mock := newMockRepo(t)

	results, err := json.Marshal([]screening.Result{{
		CandidateName:     "Jane Doe",
		OverallMatchScore: 88,
		Recommendation:    screening.RecommendationStrongMatch,
	}})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM screening_runs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM screening_runs").
		WillReturnRows(sqlmock.NewRows(runColumns()).AddRow(
			"run-1", "gemini", "gemini-2.0-flash", "jd",
			results, []byte("[]"), []byte(`{"total":1,"succeeded":1}`), time.Now(),
		))

	paginated, err := repo.List(context.Background(), kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, paginated.Items, 1)
	assert.Equal(t, "Jane Doe", paginated.Items[0].Results[0].CandidateName)
	assert.Equal(t, 1, paginated.Page.Total)
}
