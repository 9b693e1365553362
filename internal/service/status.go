package service

import "woodtrack/internal/model"

// trackingStatusByProduction maps production statuses to the customer-facing
// tracking status enum. Unknown statuses degrade to "pending" rather than
// failing — a new production status must never break customer tracking.
var trackingStatusByProduction = map[string]string{
	model.ProductionPending:    model.TrackingPending,
	model.ProductionInProgress: model.TrackingInProduction,
	model.ProductionCompleted:  model.TrackingCompleted,
	model.ProductionHold:       model.TrackingPending,
}

// MapProductionStatus converts a production status into a tracking status.
func MapProductionStatus(productionStatus string) string {
	if s, ok := trackingStatusByProduction[productionStatus]; ok {
		return s
	}
	return model.TrackingPending
}
