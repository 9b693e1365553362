package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageDescription(t *testing.T) {
	assert.Equal(t, "Careful assembly of furniture components", StageDescription("Assembly"))
	assert.Equal(t, "Processing", StageDescription("Mystery Stage"))
	assert.Equal(t, "Processing", StageDescription(""))
}

func TestDefaultStages(t *testing.T) {
	stages := DefaultStages()
	require.Len(t, stages, 6)

	assert.Equal(t, "Material Preparation", stages[0].Name)
	assert.Equal(t, "Quality Check & Packaging", stages[5].Name)

	for i, s := range stages {
		assert.Equal(t, i+1, s.OrderSequence)
		assert.True(t, s.IsActive)
		assert.NotEmpty(t, s.Description)
		assert.Greater(t, s.DurationHours, 0)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{45, "45 minutes"},
		{59, "59 minutes"},
		{60, "1 hours"},
		{90, "1.5 hours"},
		{150, "2.5 hours"},
		{1439, "24 hours"},
		{1440, "1 days"},
		{2160, "1.5 days"},
		{2880, "2 days"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.minutes), "minutes=%v", c.minutes)
	}
}
