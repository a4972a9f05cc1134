package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPayResidualOverDisbursed(t *testing.T) {
	pay := models.PayRecord{
		Amount: money("1000"),
		Disbursements: []models.Disbursement{
			{Amount: money("400"), Date: date(2025, time.January, 10)},
			{Amount: money("700"), Date: date(2025, time.February, 10)},
		},
	}
	balance := PayResidual(pay)
	assert.True(t, balance.Disbursed.Equal(money("1100")), "disbursed = %s", balance.Disbursed)
	assert.True(t, balance.Residual.Equal(money("-100")), "residual = %s", balance.Residual)
}

func TestPayResidualNoDisbursements(t *testing.T) {
	pay := models.PayRecord{Amount: money("1543.21")}
	balance := PayResidual(pay)
	assert.True(t, balance.Disbursed.IsZero())
	assert.True(t, balance.Residual.Equal(money("1543.21")))
}

func TestPayResidualExactSettlement(t *testing.T) {
	pay := models.PayRecord{
		Amount: money("1200.50"),
		Disbursements: []models.Disbursement{
			{Amount: money("600.25")},
			{Amount: money("600.25")},
		},
	}
	balance := PayResidual(pay)
	assert.True(t, balance.Residual.IsZero())
}
