package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func strPtr(s string) *string { return &s }

func event(id, workerID string, kind models.UnilavEventKind, start time.Time, opts ...func(*models.UnilavEvent)) models.UnilavEvent {
	ev := models.UnilavEvent{
		ID:           id,
		WorkerID:     workerID,
		Kind:         kind,
		StartDate:    start,
		ContractType: models.ContractOpenEnded,
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

func withSite(siteID string) func(*models.UnilavEvent) {
	return func(ev *models.UnilavEvent) { ev.SiteID = strPtr(siteID) }
}

func withEnd(end time.Time) func(*models.UnilavEvent) {
	return func(ev *models.UnilavEvent) { ev.EndDate = &end }
}

func withContract(ct models.ContractType) func(*models.UnilavEvent) {
	return func(ev *models.UnilavEvent) { ev.ContractType = ct }
}

func TestActiveAssignmentLatestStartWins(t *testing.T) {
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1), withSite("s1")),
		event("b", "w1", models.UnilavSiteTransfer, date(2024, time.June, 1), withSite("s2")),
	}

	got := ActiveAssignment("w1", date(2024, time.March, 1), events)
	require.NotNil(t, got)
	assert.Equal(t, "s1", *got.SiteID)

	got = ActiveAssignment("w1", date(2024, time.July, 1), events)
	require.NotNil(t, got)
	assert.Equal(t, "s2", *got.SiteID)
}

func TestActiveAssignmentNoneInEffect(t *testing.T) {
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.June, 1), withSite("s1")),
	}
	assert.Nil(t, ActiveAssignment("w1", date(2024, time.May, 31), events))
	assert.Nil(t, ActiveAssignment("w2", date(2024, time.July, 1), events))
}

func TestActiveAssignmentRespectsEndDate(t *testing.T) {
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavSecondment, date(2024, time.January, 1),
			withSite("s1"), withEnd(date(2024, time.January, 31))),
	}
	require.NotNil(t, ActiveAssignment("w1", date(2024, time.January, 31), events))
	assert.Nil(t, ActiveAssignment("w1", date(2024, time.February, 1), events))
}

func TestActiveAssignmentIgnoresStaleEndOnOpenEnded(t *testing.T) {
	// Open-ended contracts conceptually have no end date even when a stale
	// value is present on the row.
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1),
			withSite("s1"), withEnd(date(2024, time.January, 31))),
	}
	got := ActiveAssignment("w1", date(2025, time.June, 1), events)
	require.NotNil(t, got)
	assert.Equal(t, "s1", *got.SiteID)
}

func TestActiveAssignmentFixedTermHonorsEnd(t *testing.T) {
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1),
			withSite("s1"), withEnd(date(2024, time.March, 31)), withContract(models.ContractFixedTerm)),
	}
	assert.Nil(t, ActiveAssignment("w1", date(2024, time.April, 1), events))
}

func TestActiveAssignmentOverlapTieBreak(t *testing.T) {
	// Same start date: created-at then id decide deterministically.
	early := event("a", "w1", models.UnilavHire, date(2024, time.January, 1), withSite("s1"))
	early.CreatedAt = date(2024, time.January, 1)
	late := event("b", "w1", models.UnilavSiteTransfer, date(2024, time.January, 1), withSite("s2"))
	late.CreatedAt = date(2024, time.January, 2)

	got := ActiveAssignment("w1", date(2024, time.February, 1), []models.UnilavEvent{early, late})
	require.NotNil(t, got)
	assert.Equal(t, "s2", *got.SiteID)
}

func TestIsWorkerActiveTerminationBoundary(t *testing.T) {
	worker := models.Worker{ID: "w1", Role: models.RoleSiteWorker}
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1)),
		event("b", "w1", models.UnilavTermination, date(2024, time.June, 15)),
	}

	assert.True(t, IsWorkerActive(worker, events, date(2024, time.June, 14)))
	assert.False(t, IsWorkerActive(worker, events, date(2024, time.June, 15)))
	assert.False(t, IsWorkerActive(worker, events, date(2024, time.June, 16)))
}

func TestIsWorkerActiveExclusions(t *testing.T) {
	admin := models.Worker{ID: "w1", Role: models.RoleAdministrative}
	events := []models.UnilavEvent{event("a", "w1", models.UnilavHire, date(2024, time.January, 1))}
	assert.False(t, IsWorkerActive(admin, events, date(2024, time.June, 1)))

	noHistory := models.Worker{ID: "w2", Role: models.RoleSiteWorker}
	assert.False(t, IsWorkerActive(noHistory, events, date(2024, time.June, 1)))
}

func TestTerminationCutoff(t *testing.T) {
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1)),
		event("b", "w1", models.UnilavTermination, date(2024, time.June, 15)),
	}

	assert.Nil(t, TerminationCutoff("w1", events, date(2024, time.June, 14)))

	got := TerminationCutoff("w1", events, date(2024, time.June, 15))
	require.NotNil(t, got)
	assert.Equal(t, date(2024, time.June, 15), *got)

	got = TerminationCutoff("w1", events, date(2024, time.December, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2024, time.June, 15), *got)

	assert.Nil(t, TerminationCutoff("w2", events, date(2024, time.December, 1)))
}
