package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type EmergencyService interface {
	Directory(ctx context.Context, country string) ([]resp.DirectoryEntryResponse, error)
	AddDirectoryEntry(ctx context.Context, req request_models.DirectoryEntryRequest) (*resp.DirectoryEntryResponse, error)
	RemoveDirectoryEntry(ctx context.Context, id uuid.UUID) error

	ListContacts(ctx context.Context, userID uuid.UUID) ([]resp.PersonalContactResponse, error)
	AddContact(ctx context.Context, userID uuid.UUID, req request_models.PersonalContactRequest) (*resp.PersonalContactResponse, error)
	UpdateContact(ctx context.Context, userID, id uuid.UUID, req request_models.PersonalContactRequest) (*resp.PersonalContactResponse, error)
	DeleteContact(ctx context.Context, userID, id uuid.UUID) error
}

type emergencyService struct {
	repo repositories.EmergencyRepository
	log  *zap.Logger
}

func NewEmergencyService(repo repositories.EmergencyRepository, log *zap.Logger) EmergencyService {
	return &emergencyService{repo: repo, log: log}
}

func toDirectoryResponse(e *db_models.EmergencyContact) resp.DirectoryEntryResponse {
	return resp.DirectoryEntryResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		ServiceType: e.ServiceType,
		Phone:       e.Phone,
		Country:     e.Country,
		Region:      e.Region,
		Notes:       e.Notes,
	}
}

func toContactResponse(c *db_models.UserEmergencyContact) resp.PersonalContactResponse {
	return resp.PersonalContactResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
		Email:        c.Email,
		IsPrimary:    c.IsPrimary,
	}
}

func (s *emergencyService) Directory(ctx context.Context, country string) ([]resp.DirectoryEntryResponse, error) {
	rows, err := s.repo.ListDirectory(ctx, country)
	if err != nil {
		s.log.Error("list emergency directory", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.DirectoryEntryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toDirectoryResponse(&rows[i]))
	}
	return out, nil
}

func (s *emergencyService) AddDirectoryEntry(ctx context.Context, req request_models.DirectoryEntryRequest) (*resp.DirectoryEntryResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, utils.ErrPhoneRequired
	}
	entry := &db_models.EmergencyContact{
		Name:        strings.TrimSpace(req.Name),
		ServiceType: strings.TrimSpace(req.ServiceType),
		Phone:       phone,
		Country:     strings.TrimSpace(req.Country),
		Region:      strings.TrimSpace(req.Region),
		Notes:       req.Notes,
	}
	if err := s.repo.CreateDirectoryEntry(ctx, entry); err != nil {
		s.log.Error("create directory entry", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toDirectoryResponse(entry)
	return &out, nil
}

func (s *emergencyService) RemoveDirectoryEntry(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeleteDirectoryEntry(ctx, id)
	if err != nil {
		s.log.Error("delete directory entry", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrContactNotFound
	}
	return nil
}

func (s *emergencyService) ListContacts(ctx context.Context, userID uuid.UUID) ([]resp.PersonalContactResponse, error) {
	rows, err := s.repo.ListPersonal(ctx, userID)
	if err != nil {
		s.log.Error("list personal contacts", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.PersonalContactResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toContactResponse(&rows[i]))
	}
	return out, nil
}

func applyContact(c *db_models.UserEmergencyContact, req request_models.PersonalContactRequest) error {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return utils.ErrPhoneRequired
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Relationship = strings.TrimSpace(req.Relationship)
	c.Phone = phone
	c.Email = strings.TrimSpace(req.Email)
	c.IsPrimary = req.IsPrimary
	return nil
}

func (s *emergencyService) AddContact(ctx context.Context, userID uuid.UUID, req request_models.PersonalContactRequest) (*resp.PersonalContactResponse, error) {
	contact := &db_models.UserEmergencyContact{UserID: userID}
	if err := applyContact(contact, req); err != nil {
		return nil, err
	}
	if err := s.repo.SavePersonal(ctx, contact); err != nil {
		s.log.Error("create personal contact", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toContactResponse(contact)
	return &out, nil
}

func (s *emergencyService) owned(ctx context.Context, userID, id uuid.UUID) (*db_models.UserEmergencyContact, error) {
	contact, err := s.repo.FindPersonal(ctx, id, userID)
	if err != nil {
		s.log.Error("find personal contact", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if contact == nil {
		return nil, utils.ErrContactNotFound
	}
	return contact, nil
}

func (s *emergencyService) UpdateContact(ctx context.Context, userID, id uuid.UUID, req request_models.PersonalContactRequest) (*resp.PersonalContactResponse, error) {
	contact, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyContact(contact, req); err != nil {
		return nil, err
	}
	if err := s.repo.SavePersonal(ctx, contact); err != nil {
		s.log.Error("update personal contact", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toContactResponse(contact)
	return &out, nil
}

func (s *emergencyService) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeletePersonal(ctx, id); err != nil {
		s.log.Error("delete personal contact", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
