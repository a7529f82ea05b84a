package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"trailhub/internal/infra"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

var (
	essentialItems  = []string{"First Aid Kit", "Water Bottle", "Flashlight/Headlamp", "Multi-tool", "Navigation Tools"}
	personalItems   = []string{"Toiletries", "Sunscreen", "Insect Repellent", "Personal Medications"}
	coldWeatherGear = []string{"Warm Jacket", "Thermal Layers", "Gloves"}
)

// BuildPackingList assembles the checklist sections in display order.
// activityItems fills the "Activity Specific" section.
func BuildPackingList(adventureType string, duration int, season string, activityItems []string) resp.PackingList {
	clothing := []string{
		fmt.Sprintf("%d pairs of socks", duration*2),
		fmt.Sprintf("%d shirts", duration),
		"Rain Jacket",
		"Hat",
	}
	switch strings.ToLower(strings.TrimSpace(season)) {
	case "winter", "fall":
		clothing = append(clothing, coldWeatherGear...)
	}

	return resp.PackingList{
		AdventureType: adventureType,
		Duration:      duration,
		Season:        season,
		Sections: []resp.PackingSection{
			{Name: "Essentials", Items: append([]string(nil), essentialItems...)},
			{Name: "Clothing", Items: clothing},
			{Name: "Personal Items", Items: append([]string(nil), personalItems...)},
			{Name: "Activity Specific", Items: activityItems},
		},
	}
}

type PackingService interface {
	Generate(ctx context.Context, req request_models.PackingRequest) (*resp.PackingList, error)
	ListDefaults(ctx context.Context, adventureType string) ([]resp.PackingItemResponse, error)
	// ChecklistItems returns the stored default item names of one adventure type.
	ChecklistItems(ctx context.Context, adventureType string) ([]string, error)
}

type packingService struct {
	repo repositories.PackingRepository
	log  *zap.Logger
}

func NewPackingService(repo repositories.PackingRepository, log *zap.Logger) PackingService {
	return &packingService{repo: repo, log: log}
}

func (s *packingService) activityItems(ctx context.Context, adventureType string) ([]string, error) {
	rows, err := s.repo.ListDefaults(ctx, adventureType)
	if err != nil {
		s.log.Error("list packing defaults", zap.String("adventure_type", adventureType), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if len(rows) == 0 {
		return append([]string(nil), infra.DefaultActivityItems[adventureType]...), nil
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, nil
}

func (s *packingService) Generate(ctx context.Context, req request_models.PackingRequest) (*resp.PackingList, error) {
	adventureType := NormalizeAdventureType(req.AdventureType)
	if _, ok := infra.DefaultActivityItems[adventureType]; !ok {
		return nil, utils.ErrUnknownAdventureType
	}
	if req.Duration < 1 {
		return nil, utils.ErrInvalidDuration
	}

	items, err := s.activityItems(ctx, adventureType)
	if err != nil {
		return nil, err
	}
	list := BuildPackingList(adventureType, req.Duration, strings.ToLower(strings.TrimSpace(req.Season)), items)
	return &list, nil
}

func (s *packingService) ListDefaults(ctx context.Context, adventureType string) ([]resp.PackingItemResponse, error) {
	adventureType = NormalizeAdventureType(adventureType)
	if adventureType != "" {
		if _, ok := infra.DefaultActivityItems[adventureType]; !ok {
			return nil, utils.ErrUnknownAdventureType
		}
	}

	rows, err := s.repo.ListDefaults(ctx, adventureType)
	if err != nil {
		s.log.Error("list packing defaults", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]resp.PackingItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, resp.PackingItemResponse{
			ID:            r.ID.String(),
			AdventureType: r.AdventureType,
			Name:          r.Name,
			Category:      r.Category,
		})
	}
	return out, nil
}

func (s *packingService) ChecklistItems(ctx context.Context, adventureType string) ([]string, error) {
	adventureType = NormalizeAdventureType(adventureType)
	if _, ok := infra.DefaultActivityItems[adventureType]; !ok {
		return nil, utils.ErrUnknownAdventureType
	}
	return s.activityItems(ctx, adventureType)
}
