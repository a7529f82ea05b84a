package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/models/request_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

func TestMedicalReportUpload(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := newFakeStorage()
	cfg := &config.Config{Storage: config.Storage{MaxUploadMB: 1}}
	svc := NewMedicalReportService(repositories.NewMedicalReportRepository(db), store, cfg, zap.NewNop())
	user := seedUser(t, db, "patient")
	other := seedUser(t, db, "stranger")

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	meta := request_models.MedicalReportUpload{Title: "Allergies", FileName: "allergies.pdf", Size: int64(len(pdf))}

	t.Run("title required", func(t *testing.T) {
		_, err := svc.Upload(ctx, user.ID, request_models.MedicalReportUpload{Size: 1}, bytes.NewReader(pdf))
		assert.ErrorIs(t, err, utils.ErrMissingFields)
	})

	t.Run("too large", func(t *testing.T) {
		big := meta
		big.Size = 2 << 20
		_, err := svc.Upload(ctx, user.ID, big, bytes.NewReader(pdf))
		assert.ErrorIs(t, err, utils.ErrFileTooLarge)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := svc.Upload(ctx, user.ID, meta, strings.NewReader("just some text"))
		assert.ErrorIs(t, err, utils.ErrUnsupportedFileType)
		assert.Empty(t, store.objects)
	})

	report, err := svc.Upload(ctx, user.ID, meta, bytes.NewReader(pdf))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	require.Len(t, store.objects, 1)
	for key, body := range store.objects {
		assert.True(t, strings.HasPrefix(key, user.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(key, ".pdf"))
		assert.Equal(t, pdf, body)
	}

	reportID := mustParseUUID(t, report.ID)

	_, err = svc.Download(ctx, other.ID, reportID)
	assert.ErrorIs(t, err, utils.ErrReportNotFound)

	dl, err := svc.Download(ctx, user.ID, reportID)
	require.NoError(t, err)
	assert.Equal(t, "allergies.pdf", dl.FileName)
	assert.NotEmpty(t, dl.LocalPath)

	require.NoError(t, svc.Delete(ctx, user.ID, reportID))
	assert.Empty(t, store.objects)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
