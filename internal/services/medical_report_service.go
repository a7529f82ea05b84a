package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/infra"
	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

// allowedReportTypes maps accepted content types to the stored file extension.
var allowedReportTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

type MedicalReportService interface {
	Upload(ctx context.Context, userID uuid.UUID, meta request_models.MedicalReportUpload, body io.Reader) (*resp.MedicalReportResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]resp.MedicalReportResponse, error)
	Download(ctx context.Context, userID, reportID uuid.UUID) (*resp.ReportDownload, error)
	Delete(ctx context.Context, userID, reportID uuid.UUID) error
}

type medicalReportService struct {
	repo     repositories.MedicalReportRepository
	storage  infra.ObjectStorage
	maxBytes int64
	log      *zap.Logger
}

func NewMedicalReportService(
	repo repositories.MedicalReportRepository,
	storage infra.ObjectStorage,
	cfg *config.Config,
	log *zap.Logger,
) MedicalReportService {
	return &medicalReportService{
		repo:     repo,
		storage:  storage,
		maxBytes: cfg.Storage.MaxUploadMB << 20,
		log:      log,
	}
}

func toReportResponse(r *db_models.UserMedicalReport) resp.MedicalReportResponse {
	return resp.MedicalReportResponse{
		ID:          r.ID.String(),
		Title:       r.Title,
		Notes:       r.Notes,
		FileName:    r.FileName,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		CreatedAt:   r.CreatedAt,
	}
}

// sniffContentType inspects the first bytes of body. The returned reader
// still yields the whole content.
func sniffContentType(body io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, err
	}
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct, br, nil
}

func (s *medicalReportService) Upload(ctx context.Context, userID uuid.UUID, meta request_models.MedicalReportUpload, body io.Reader) (*resp.MedicalReportResponse, error) {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return nil, utils.ErrMissingFields
	}
	if s.maxBytes > 0 && meta.Size > s.maxBytes {
		return nil, utils.ErrFileTooLarge
	}

	contentType, reader, err := sniffContentType(body)
	if err != nil {
		s.log.Error("read upload", zap.Error(err))
		return nil, utils.ErrStorageError
	}
	ext, ok := allowedReportTypes[contentType]
	if !ok {
		return nil, utils.ErrUnsupportedFileType
	}

	key := fmt.Sprintf("%s/%s%s", userID, uuid.New(), ext)
	if err := s.storage.Put(ctx, key, reader, meta.Size, contentType); err != nil {
		s.log.Error("store medical report", zap.String("key", key), zap.Error(err))
		return nil, utils.ErrStorageError
	}

	report := &db_models.UserMedicalReport{
		UserID:      userID,
		Title:       title,
		Notes:       meta.Notes,
		FileKey:     key,
		FileName:    meta.FileName,
		ContentType: contentType,
		SizeBytes:   meta.Size,
		Storage:     s.storage.Driver(),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		s.log.Error("create medical report", zap.Error(err))
		if derr := s.storage.Delete(ctx, key); derr != nil {
			s.log.Warn("remove orphaned object", zap.String("key", key), zap.Error(derr))
		}
		return nil, utils.ErrDatabaseError
	}
	out := toReportResponse(report)
	return &out, nil
}

func (s *medicalReportService) List(ctx context.Context, userID uuid.UUID) ([]resp.MedicalReportResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list medical reports", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.MedicalReportResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toReportResponse(&rows[i]))
	}
	return out, nil
}

func (s *medicalReportService) owned(ctx context.Context, userID, reportID uuid.UUID) (*db_models.UserMedicalReport, error) {
	report, err := s.repo.FindForUser(ctx, reportID, userID)
	if err != nil {
		s.log.Error("find medical report", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if report == nil {
		return nil, utils.ErrReportNotFound
	}
	return report, nil
}

func (s *medicalReportService) Download(ctx context.Context, userID, reportID uuid.UUID) (*resp.ReportDownload, error) {
	report, err := s.owned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	localPath, url, err := s.storage.Locate(ctx, report.FileKey)
	if err != nil {
		s.log.Error("locate medical report", zap.String("key", report.FileKey), zap.Error(err))
		return nil, utils.ErrStorageError
	}
	return &resp.ReportDownload{
		FileName:    report.FileName,
		ContentType: report.ContentType,
		LocalPath:   localPath,
		RedirectURL: url,
	}, nil
}

func (s *medicalReportService) Delete(ctx context.Context, userID, reportID uuid.UUID) error {
	report, err := s.owned(ctx, userID, reportID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, report.ID); err != nil {
		s.log.Error("delete medical report", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if err := s.storage.Delete(ctx, report.FileKey); err != nil {
		s.log.Warn("remove medical report object", zap.String("key", report.FileKey), zap.Error(err))
	}
	return nil
}
