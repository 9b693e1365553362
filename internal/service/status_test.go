package service

import (
	"testing"

	"woodtrack/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMapProductionStatus(t *testing.T) {
	cases := map[string]string{
		model.ProductionPending:    model.TrackingPending,
		model.ProductionInProgress: model.TrackingInProduction,
		model.ProductionCompleted:  model.TrackingCompleted,
		model.ProductionHold:       model.TrackingPending,
		"Cancelled":                model.TrackingPending, // unknown degrades to pending
		"":                         model.TrackingPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapProductionStatus(in), "input %q", in)
	}
}
