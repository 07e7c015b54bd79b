package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:        id,
			Automaton: "demo",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			Seed:      42,
			Samples:   3,
			SelfCheck: domain.SelfCheck{Accepted: 3},
			Patterns: []domain.PatternTally{
				{Pattern: "^s$", Passed: 1, Failed: 2},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)
		report.Reference = &domain.ReferenceCheck{
			Pattern:    "^s$",
			Inputs:     2,
			Agree:      1,
			Disagree:   1,
			Mismatches: []domain.Mismatch{{Input: "x", Matcher: true}},
		}

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Seed, loaded.Seed)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, report.Patterns, loaded.Patterns)
		require.NotNil(t, loaded.Reference)
		assert.Equal(t, report.Reference.Mismatches, loaded.Reference.Mismatches)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		report := newReport(reportID)
		report.Samples = 99
		require.NoError(t, store.Save(ctx, report))

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, 99, loaded.Samples)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Patterns[0].Passed = 1000

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, 1, again.Patterns[0].Passed)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newReport(reportID)))

		err := store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		require.NoError(t, store.Save(ctx, newReport(id1)))
		require.NoError(t, store.Save(ctx, newReport(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		reports, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, reports, id1)
		assert.Contains(t, reports, id2)
	})
}
