package response_models

type DirectoryEntryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ServiceType string `json:"service_type"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	Notes       string `json:"notes"`
}

type PersonalContactResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IsPrimary    bool   `json:"is_primary"`
}

type KitItemResponse struct {
	ID         string `json:"id"`
	KitID      string `json:"kit_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	Packed     bool   `json:"packed"`
}

type KitResponse struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	TripID string            `json:"trip_id,omitempty"`
	Items  []KitItemResponse `json:"items"`
}

type ExpiringItemResponse struct {
	KitItemResponse
	KitName string `json:"kit_name"`
}

type MedicalReportResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	CreatedAt   int64  `json:"created_at"`
}

// ReportDownload is either a local file path to stream or a presigned URL to
// redirect to.
type ReportDownload struct {
	FileName    string
	ContentType string
	LocalPath   string
	RedirectURL string
}
