package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrivision/database"
	"agrivision/entities"
	"agrivision/pkg/advisory"
	"agrivision/pkg/soil/repository"
)

func TestSoilRepo(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "agv.db"), zap.NewNop())
	require.NoError(t, err)
	r := New(db)
	ctx := context.Background()

	s := advisory.SoilSample{Nitrogen: 50, Phosphorus: 50, Potassium: 50, PH: 6.5, TemperatureC: 25, HumidityPct: 70, RainfallMM: 100}
	field := uint(4)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, fid := range []*uint{nil, &field, &field} {
		require.NoError(t, r.Create(ctx, &entities.SoilAnalysis{
			UserID: "U1", FieldID: fid, Mode: entities.ModeQuick, Sample: s, Result: advisory.RunAdvisory(s),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := r.List(ctx, "U1", nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))

	got, err := r.FindByID(ctx, all[0].AnalysisID, "U1")
	require.NoError(t, err)
	assert.Equal(t, s, got.Sample)
	assert.Equal(t, advisory.RunAdvisory(s), got.Result, "result survives the json column")

	onField, err := r.List(ctx, "U1", &field, 0)
	require.NoError(t, err)
	assert.Len(t, onField, 2)

	limited, err := r.List(ctx, "U1", nil, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = r.FindByID(ctx, all[0].AnalysisID, "U2")
	assert.ErrorIs(t, err, repository.ErrAnalysisNotFound)
}
