package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func TestComputeBundleStatus(t *testing.T) {
	cases := []struct {
		name        string
		received    []bool
		wantLabel   string
		wantMissing int
	}{
		{name: "empty", received: nil, wantLabel: "no documents", wantMissing: 0},
		{name: "complete", received: []bool{true, true}, wantLabel: "complete", wantMissing: 0},
		{name: "all missing", received: []bool{false, false, false}, wantLabel: "all missing", wantMissing: 3},
		{name: "partial", received: []bool{true, false, false}, wantLabel: "2/3 missing", wantMissing: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bundle := models.DocumentBundle{}
			for _, r := range tc.received {
				bundle.Documents = append(bundle.Documents, models.DocumentItem{Received: r})
			}
			status := ComputeBundleStatus(bundle)
			assert.Equal(t, tc.wantLabel, status.Label)
			assert.Equal(t, tc.wantMissing, status.MissingCount)
			assert.Equal(t, len(tc.received), status.TotalCount)
		})
	}
}
