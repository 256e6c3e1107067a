package storage

import "liquidityRange/internal/model"

// Storage defines a sink for position plans.
type Storage interface {
	PutPlans(plans []model.PositionPlan) error
}
