package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twvotelab/recall-o-meter/internal/prediction"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func testScenario(t *testing.T, display string) prediction.ScenarioInput {
	t.Helper()
	s, err := prediction.NewScenarioInput(prediction.ScenarioInput{
		Target: prediction.Target{Display: display},
		Region: "高雄市",
	})
	require.NoError(t, err)
	return s
}

func testResult(turnout, agreement float64, willPass bool) prediction.PredictionResult {
	return prediction.PredictionResult{
		PredictedTurnout:   turnout,
		PredictedAgreement: agreement,
		WillPass:           willPass,
		Reason:             "test",
		Breakdown:          prediction.Breakdown{Intensity: 1.8},
	}
}

func TestRepositorySaveAndList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rec, err := repo.Save(ctx, testScenario(t, "韓國瑜 (2020年罷免成功)"), testResult(0.42, 0.55, true))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "韓國瑜", rec.Target)
	assert.Equal(t, "韓國瑜 (2020年罷免成功)", rec.TargetDisplay)
	assert.InDelta(t, 1.8, rec.PoliticalIntensity, 1e-9)

	_, err = repo.Save(ctx, testScenario(t, "柯文哲"), testResult(0.30, 0.45, false))
	require.NoError(t, err)

	records, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRepositoryLatestForTarget(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	latest, err := repo.LatestForTarget(ctx, "韓國瑜")
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = repo.Save(ctx, testScenario(t, "韓國瑜"), testResult(0.40, 0.52, true))
	require.NoError(t, err)
	_, err = repo.Save(ctx, testScenario(t, "韓國瑜"), testResult(0.45, 0.58, true))
	require.NoError(t, err)

	latest, err = repo.LatestForTarget(ctx, "韓國瑜")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, 0.45, latest.PredictedTurnout, 1e-9)
}

func TestRepositorySummarize(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	summary, err := repo.Summarize(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)

	_, err = repo.Save(ctx, testScenario(t, "韓國瑜"), testResult(0.40, 0.60, true))
	require.NoError(t, err)
	_, err = repo.Save(ctx, testScenario(t, "柯文哲"), testResult(0.20, 0.40, false))
	require.NoError(t, err)
	_, err = repo.Save(ctx, testScenario(t, "韓國瑜"), testResult(0.60, 0.50, false))
	require.NoError(t, err)

	summary, err = repo.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1, summary.PassCount)
	assert.Equal(t, 2, summary.DistinctTargets)
	assert.InDelta(t, 0.40, summary.MeanTurnout, 1e-9)
	assert.InDelta(t, 0.40, summary.MedianTurnout, 1e-9)
	assert.InDelta(t, 0.50, summary.MeanAgreement, 1e-9)
}
