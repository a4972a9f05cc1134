package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fodapt/marrelsrl-sub002/internal/dto"
)

type fakeDashboardSrv struct {
	resp     *dto.ExpiryDashboardResponse
	hit      bool
	err      error
	lastDate time.Time
}

func (f *fakeDashboardSrv) Overview(_ context.Context, date time.Time) (*dto.ExpiryDashboardResponse, bool, error) {
	f.lastDate = date
	return f.resp, f.hit, f.err
}

func TestDashboardHandlerOverviewSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeDashboardSrv{
		resp: &dto.ExpiryDashboardResponse{ReferenceDate: "2026-03-15"},
		hit:  true,
	}
	h := NewDashboardHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/expiry?date=2026-03-15", nil)

	h.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2026, fake.lastDate.Year())
	assert.Equal(t, time.March, fake.lastDate.Month())

	var body struct {
		Data dto.ExpiryDashboardResponse `json:"data"`
		Meta map[string]interface{}      `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-15", body.Data.ReferenceDate)
	assert.Equal(t, true, body.Meta["cache_hit"])
}

func TestDashboardHandlerOverviewRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(&fakeDashboardSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/expiry?date=15-03-2026", nil)

	h.Overview(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
