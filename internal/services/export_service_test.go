package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"trailhub/internal/config"
	resp "trailhub/internal/models/response_models"
)

func sampleBudget() resp.BudgetResponse {
	return resp.BudgetResponse{
		AdventureType: "camping",
		Location:      "Yosemite",
		Duration:      3,
		People:        2,
		Breakdown: resp.BudgetBreakdown{
			Transportation: 100, Accommodation: 180, Equipment: 200, Food: 240, Total: 720,
		},
	}
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService()

	doc, err := svc.BudgetPDF(sampleBudget())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	doc, err = svc.ChecklistPDF("hiking", []string{"Boots", "Map"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestExportXLSX(t *testing.T) {
	svc := NewExportService()

	raw, err := svc.BudgetXLSX(sampleBudget())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Budget", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Yosemite", v)

	rows, err := f.GetRows("Budget")
	require.NoError(t, err)
	var total string
	for _, row := range rows {
		if len(row) == 2 && row[0] == "Total" {
			total = row[1]
		}
	}
	assert.Equal(t, "720", total)
}

func TestMailMessage(t *testing.T) {
	cfg := &config.Config{Mail: config.Mail{
		Enabled:    true,
		From:       "noreply@trailhub.test",
		FromName:   "Trailhub",
		AppBaseURL: "https://trailhub.test/",
	}}
	svc := NewMailService(cfg, zap.NewNop()).(*smtpMailService)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	var captured []byte
	var rcpt string
	svc.deliver = func(to string, msg []byte) error {
		rcpt, captured = to, msg
		return nil
	}

	require.NoError(t, svc.SendPasswordReset(context.Background(), "alice@example.com", "tok en"))
	assert.Equal(t, "alice@example.com", rcpt)

	msg := string(captured)
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Reset your password\r\n")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "https://trailhub.test/reset-password?token=tok+en")
	assert.Contains(t, msg, "Trailhub (c) 2025")
	assert.True(t, strings.HasSuffix(msg, "--\r\n"))
}

func TestMailDisabledDropsMessage(t *testing.T) {
	svc := NewMailService(&config.Config{}, zap.NewNop()).(*smtpMailService)
	called := false
	svc.deliver = func(string, []byte) error {
		called = true
		return nil
	}
	require.NoError(t, svc.SendNotification(context.Background(), "a@example.com", "Hi", "Body"))
	assert.False(t, called)
}
