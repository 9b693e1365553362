package service

import (
	"math"
	"strconv"

	"woodtrack/internal/model"
)

// stageInfo is one entry of the static production stage catalog.
type stageInfo struct {
	description   string
	orderSequence int
	durationHours int
}

// The six canonical furniture production stages. Lookups are by name;
// unknown names degrade to fallbackDescription instead of failing.
var stageCatalog = map[string]stageInfo{
	"Material Preparation":          {"Selecting and preparing high-quality materials", 1, 24},
	"Cutting & Shaping":             {"Precise cutting and shaping of wood components", 2, 36},
	"Assembly":                      {"Careful assembly of furniture components", 3, 48},
	"Sanding & Surface Preparation": {"Sanding and preparing surfaces for finishing", 4, 24},
	"Finishing":                     {"Applying professional finish, stain, and polish", 5, 36},
	"Quality Check & Packaging":     {"Final quality inspection and packaging", 6, 12},
}

var stageOrder = []string{
	"Material Preparation",
	"Cutting & Shaping",
	"Assembly",
	"Sanding & Surface Preparation",
	"Finishing",
	"Quality Check & Packaging",
}

const fallbackDescription = "Processing"

// StageDescription returns the human description for a stage or process
// name, or "Processing" when the name is not in the catalog.
func StageDescription(name string) string {
	if info, ok := stageCatalog[name]; ok {
		return info.description
	}
	return fallbackDescription
}

// DefaultStages returns the catalog as persistable stage rows in canonical
// order, used to seed the production_stages table.
func DefaultStages() []model.ProductionStage {
	stages := make([]model.ProductionStage, 0, len(stageOrder))
	for _, name := range stageOrder {
		info := stageCatalog[name]
		stages = append(stages, model.ProductionStage{
			Name:          name,
			Description:   info.description,
			OrderSequence: info.orderSequence,
			DurationHours: info.durationHours,
			IsActive:      true,
		})
	}
	return stages
}

// FormatDuration renders an estimated duration in minutes as a human
// string: "45 minutes", "2.5 hours", "1.5 days". Hours and days keep at
// most one decimal place; a trailing ".0" is dropped.
func FormatDuration(minutes float64) string {
	switch {
	case minutes < 60:
		return strconv.FormatFloat(math.Round(minutes), 'f', -1, 64) + " minutes"
	case minutes < 1440:
		return strconv.FormatFloat(math.Round(minutes/60*10)/10, 'f', -1, 64) + " hours"
	default:
		return strconv.FormatFloat(math.Round(minutes/1440*10)/10, 'f', -1, 64) + " days"
	}
}
