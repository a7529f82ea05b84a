package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

const DefaultExpiryWindowDays = 30

// DefaultKitItems pre-fill a kit created with defaults.
var DefaultKitItems = []string{
	"Adhesive Bandages",
	"Gauze Pads",
	"Antiseptic Wipes",
	"Pain Relievers",
	"Tweezers",
	"Elastic Bandage",
	"Blister Treatment",
	"Emergency Blanket",
}

type FirstAidService interface {
	CreateKit(ctx context.Context, userID uuid.UUID, req request_models.CreateKitRequest) (*resp.KitResponse, error)
	ListKits(ctx context.Context, userID uuid.UUID) ([]resp.KitResponse, error)
	GetKit(ctx context.Context, userID, kitID uuid.UUID) (*resp.KitResponse, error)
	DeleteKit(ctx context.Context, userID, kitID uuid.UUID) error
	AddItem(ctx context.Context, userID, kitID uuid.UUID, req request_models.AddKitItemRequest) (*resp.KitItemResponse, error)
	SetPacked(ctx context.Context, userID, itemID uuid.UUID, packed bool) (*resp.KitItemResponse, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	// Expiring lists items whose expiry date is within days from today,
	// already expired ones included.
	Expiring(ctx context.Context, userID uuid.UUID, days int) ([]resp.ExpiringItemResponse, error)
}

type firstAidService struct {
	kits  repositories.FirstAidRepository
	trips repositories.TripRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewFirstAidService(kits repositories.FirstAidRepository, trips repositories.TripRepository, log *zap.Logger) FirstAidService {
	return &firstAidService{kits: kits, trips: trips, log: log, now: time.Now}
}

func toKitItemResponse(it *db_models.FirstAidItem) resp.KitItemResponse {
	out := resp.KitItemResponse{
		ID:       it.ID.String(),
		KitID:    it.KitID.String(),
		Name:     it.Name,
		Quantity: it.Quantity,
		Packed:   it.Packed,
	}
	if it.ExpiryDate != nil {
		out.ExpiryDate = utils.FormatDate(*it.ExpiryDate)
	}
	return out
}

func toKitResponse(k *db_models.FirstAidKit) resp.KitResponse {
	out := resp.KitResponse{
		ID:    k.ID.String(),
		Name:  k.Name,
		Items: make([]resp.KitItemResponse, 0, len(k.Items)),
	}
	if k.TripID != nil {
		out.TripID = k.TripID.String()
	}
	for i := range k.Items {
		out.Items = append(out.Items, toKitItemResponse(&k.Items[i]))
	}
	return out
}

func (s *firstAidService) CreateKit(ctx context.Context, userID uuid.UUID, req request_models.CreateKitRequest) (*resp.KitResponse, error) {
	if req.TripID != nil {
		trip, err := s.trips.FindByID(ctx, *req.TripID)
		if err != nil {
			s.log.Error("find trip", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		if trip == nil || trip.UserID != userID {
			return nil, utils.ErrTripNotFound
		}
	}

	kit := &db_models.FirstAidKit{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		TripID: req.TripID,
	}
	if req.WithDefaults {
		for _, name := range DefaultKitItems {
			kit.Items = append(kit.Items, db_models.FirstAidItem{Name: name, Quantity: 1})
		}
	}
	if err := s.kits.CreateKit(ctx, kit); err != nil {
		s.log.Error("create first aid kit", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toKitResponse(kit)
	return &out, nil
}

func (s *firstAidService) ListKits(ctx context.Context, userID uuid.UUID) ([]resp.KitResponse, error) {
	rows, err := s.kits.ListKits(ctx, userID)
	if err != nil {
		s.log.Error("list first aid kits", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.KitResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toKitResponse(&rows[i]))
	}
	return out, nil
}

func (s *firstAidService) ownedKit(ctx context.Context, userID, kitID uuid.UUID) (*db_models.FirstAidKit, error) {
	kit, err := s.kits.FindKit(ctx, kitID, userID)
	if err != nil {
		s.log.Error("find first aid kit", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if kit == nil {
		return nil, utils.ErrKitNotFound
	}
	return kit, nil
}

func (s *firstAidService) GetKit(ctx context.Context, userID, kitID uuid.UUID) (*resp.KitResponse, error) {
	kit, err := s.ownedKit(ctx, userID, kitID)
	if err != nil {
		return nil, err
	}
	out := toKitResponse(kit)
	return &out, nil
}

func (s *firstAidService) DeleteKit(ctx context.Context, userID, kitID uuid.UUID) error {
	if _, err := s.ownedKit(ctx, userID, kitID); err != nil {
		return err
	}
	if err := s.kits.DeleteKit(ctx, kitID); err != nil {
		s.log.Error("delete first aid kit", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *firstAidService) AddItem(ctx context.Context, userID, kitID uuid.UUID, req request_models.AddKitItemRequest) (*resp.KitItemResponse, error) {
	if req.Quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	var expiry *time.Time
	if req.ExpiryDate != nil && strings.TrimSpace(*req.ExpiryDate) != "" {
		d, err := utils.ParseDate(*req.ExpiryDate)
		if err != nil {
			return nil, utils.ErrInvalidDate
		}
		expiry = &d
	}
	if _, err := s.ownedKit(ctx, userID, kitID); err != nil {
		return nil, err
	}

	item := &db_models.FirstAidItem{
		KitID:      kitID,
		Name:       strings.TrimSpace(req.Name),
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
	}
	if err := s.kits.AddItem(ctx, item); err != nil {
		s.log.Error("add first aid item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toKitItemResponse(item)
	return &out, nil
}

func (s *firstAidService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*db_models.FirstAidItem, error) {
	item, err := s.kits.FindItem(ctx, itemID, userID)
	if err != nil {
		s.log.Error("find first aid item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrKitItemNotFound
	}
	return item, nil
}

func (s *firstAidService) SetPacked(ctx context.Context, userID, itemID uuid.UUID, packed bool) (*resp.KitItemResponse, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.kits.SetPacked(ctx, itemID, packed); err != nil {
		s.log.Error("mark first aid item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	item.Packed = packed
	out := toKitItemResponse(item)
	return &out, nil
}

func (s *firstAidService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.kits.DeleteItem(ctx, itemID); err != nil {
		s.log.Error("delete first aid item", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *firstAidService) Expiring(ctx context.Context, userID uuid.UUID, days int) ([]resp.ExpiringItemResponse, error) {
	if days <= 0 {
		days = DefaultExpiryWindowDays
	}
	cutoff := utils.TodayUTC(s.now()).AddDate(0, 0, days)

	rows, err := s.kits.ListExpiring(ctx, userID, cutoff)
	if err != nil {
		s.log.Error("list expiring items", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.ExpiringItemResponse, 0, len(rows))
	for i := range rows {
		out = append(out, resp.ExpiringItemResponse{
			KitItemResponse: toKitItemResponse(&rows[i].FirstAidItem),
			KitName:         rows[i].KitName,
		})
	}
	return out, nil
}
