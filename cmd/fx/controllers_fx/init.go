package controllers_fx

import (
	"go.uber.org/fx"

	"trailhub/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewLocationController),
	fx.Provide(controllers.NewInterestController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewPlanningController),
	fx.Provide(controllers.NewCommunityController),
	fx.Provide(controllers.NewSafetyController),
	fx.Provide(controllers.NewDashboardController))
