package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

type stubCertAlerts struct {
	alerts []CertificationDetail
}

func (s *stubCertAlerts) Expiring(_ context.Context, _ time.Time) ([]CertificationDetail, error) {
	return s.alerts, nil
}

type stubWorkerLister struct {
	workers []models.Worker
}

func (s *stubWorkerLister) ListAll(_ context.Context) ([]models.Worker, error) {
	return s.workers, nil
}

type stubEventLister struct {
	events []models.UnilavEvent
}

func (s *stubEventLister) ListAll(_ context.Context) ([]models.UnilavEvent, error) {
	return s.events, nil
}

type stubSiteLister struct {
	sites []models.Site
}

func (s *stubSiteLister) ListAll(_ context.Context) ([]models.Site, error) {
	return s.sites, nil
}

func TestDashboardOverviewComposesSections(t *testing.T) {
	today := date(2025, time.June, 10)
	certExpiry := date(2025, time.June, 5)
	contractEnd := date(2025, time.June, 20)
	siteEnd := date(2025, time.June, 15)

	certs := &stubCertAlerts{alerts: []CertificationDetail{
		{
			CertificationRecord: models.CertificationRecord{ID: "c1", WorkerID: "w1", Name: "Ponteggi", ExpiryDate: &certExpiry},
			Expiry:              ClassifyExpiry(&certExpiry, today),
		},
	}}
	workers := &stubWorkerLister{workers: []models.Worker{
		{ID: "w1", FirstName: "Mario", LastName: "Rossi", Role: models.RoleSiteWorker},
		{ID: "w2", FirstName: "Luigi", LastName: "Bianchi", Role: models.RoleSiteWorker},
	}}
	events := &stubEventLister{events: []models.UnilavEvent{
		{ID: "u1", WorkerID: "w1", Kind: models.UnilavHire, StartDate: date(2024, time.January, 1), ContractType: models.ContractOpenEnded},
		{ID: "u2", WorkerID: "w2", Kind: models.UnilavHire, StartDate: date(2025, time.January, 1), EndDate: &contractEnd, ContractType: models.ContractFixedTerm},
	}}
	sites := &stubSiteLister{sites: []models.Site{
		{ID: "s1", Name: "Via Roma 12", Status: models.SiteStatusInProgress, EndDate: &siteEnd},
		{ID: "s2", Name: "Cantiere chiuso", Status: models.SiteStatusCompleted, EndDate: &siteEnd},
	}}

	svc := NewDashboardService(DashboardServiceParams{
		Certifications: certs,
		Workers:        workers,
		Events:         events,
		Sites:          sites,
		Logger:         zap.NewNop(),
	})

	got, cached, err := svc.Overview(context.Background(), today)
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, "2025-06-10", got.ReferenceDate)

	require.Len(t, got.Certifications.Expired, 1)
	assert.Equal(t, "Mario Rossi: Ponteggi", got.Certifications.Expired[0].Label)
	assert.Equal(t, -5, got.Certifications.Expired[0].DaysRemaining)

	// The open-ended hire has no effective end and never shows up.
	require.Len(t, got.Contracts.Upcoming, 1)
	assert.Equal(t, "w2", got.Contracts.Upcoming[0].WorkerID)
	assert.Equal(t, 10, got.Contracts.Upcoming[0].DaysRemaining)
	assert.Empty(t, got.Contracts.Expired)

	// Completed sites are not deadlines anymore.
	require.Len(t, got.Sites.Upcoming, 1)
	assert.Equal(t, "Via Roma 12", got.Sites.Upcoming[0].Label)

	assert.Equal(t, 1, got.Totals.Expired)
	assert.Equal(t, 2, got.Totals.Upcoming)
}

func TestDashboardOverviewSortsByUrgency(t *testing.T) {
	today := date(2025, time.June, 10)
	in3 := today.AddDate(0, 0, 3)
	in25 := today.AddDate(0, 0, 25)

	certs := &stubCertAlerts{alerts: []CertificationDetail{
		{
			CertificationRecord: models.CertificationRecord{ID: "c1", WorkerID: "w1", Name: "Gru", ExpiryDate: &in25},
			Expiry:              ClassifyExpiry(&in25, today),
		},
		{
			CertificationRecord: models.CertificationRecord{ID: "c2", WorkerID: "w1", Name: "Visita", ExpiryDate: &in3},
			Expiry:              ClassifyExpiry(&in3, today),
		},
	}}
	svc := NewDashboardService(DashboardServiceParams{Certifications: certs, Logger: zap.NewNop()})

	got, _, err := svc.Overview(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, got.Certifications.Upcoming, 2)
	assert.Equal(t, "c2", got.Certifications.Upcoming[0].ID)
	assert.Equal(t, "c1", got.Certifications.Upcoming[1].ID)
}
