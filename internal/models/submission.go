package models

import (
	"encoding/json"
	"time"

	"github.com/heartpages/lovepage-backend/internal/page"
)

// Submission is one purchased love page. Rows are written once at creation
// and never updated; the rendered HTML under the pages directory is a
// convenience mirror, the row is authoritative.
type Submission struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Slug             string    `json:"slug" gorm:"uniqueIndex;not null"`
	SenderName       string    `json:"sender_name"`
	PartnerName      string    `json:"partner_name"`
	Whatsapp         string    `json:"whatsapp"`
	PackageID        string    `json:"package_id"`
	PackageName      string    `json:"package_name"`
	PackagePrice     string    `json:"package_price"`
	PaymentReference string    `json:"payment_reference"`
	DataJSON         string    `json:"-" gorm:"column:data_json;type:text"`
	ImagesJSON       string    `json:"-" gorm:"column:images_json;type:text"`
	VideosJSON       string    `json:"-" gorm:"column:videos_json;type:text"`
	MusicPath        string    `json:"music_path"`
	CreatedAt        time.Time `json:"created_at"`
}

// Images tolerates malformed rows: anything that fails to parse reads as an
// empty list, never as an error.
func (s *Submission) Images() []string { return decodeStringList(s.ImagesJSON) }

func (s *Submission) Videos() []string { return decodeStringList(s.VideosJSON) }

func (s *Submission) Data() map[string]string {
	out := map[string]string{}
	if s.DataJSON == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s.DataJSON), &out); err != nil {
		return map[string]string{}
	}
	return out
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

type CreateLovePageRequest struct {
	SenderName           string `form:"senderName" validate:"required"`
	PartnerName          string `form:"partnerName" validate:"required"`
	Relationship         string `form:"relationship"`
	RelationshipDuration string `form:"relationshipDuration"`
	FirstEncounter       string `form:"firstEncounter"`
	LoveMessage          string `form:"loveMessage"`
	SurpriseTime         string `form:"surpriseTime"`
	LoveStoryNotes       string `form:"loveStoryNotes"`
	PageColor            string `form:"pageColor"`
	PackageID            string `form:"packageId" validate:"required,oneof=basic premium ultimate"`
	PackageName          string `form:"packageName"`
	PackagePrice         string `form:"packagePrice"`
	Whatsapp             string `form:"whatsapp"`
	Email                string `form:"email" validate:"omitempty,email"`
	PaymentReference     string `form:"paymentReference"`
}

// FormValues is what lands in the data_json blob, mirroring the submitted
// text fields so the viewer can show details the top-level columns omit.
func (r *CreateLovePageRequest) FormValues() map[string]string {
	return map[string]string{
		"senderName":           r.SenderName,
		"partnerName":          r.PartnerName,
		"relationship":         r.Relationship,
		"relationshipDuration": r.RelationshipDuration,
		"firstEncounter":       r.FirstEncounter,
		"loveMessage":          r.LoveMessage,
		"surpriseTime":         r.SurpriseTime,
		"loveStoryNotes":       r.LoveStoryNotes,
		"pageColor":            r.PageColor,
		"packageId":            r.PackageID,
		"packageName":          r.PackageName,
		"packagePrice":         r.PackagePrice,
		"whatsapp":             r.Whatsapp,
		"email":                r.Email,
		"paymentReference":     r.PaymentReference,
	}
}

// CreateLovePageResponse matches what the creation form expects back.
type CreateLovePageResponse struct {
	Message string `json:"message"`
	Slug    string `json:"slug"`
	Link    string `json:"link"`
}

// SubmissionResponse is the viewer-facing shape. Field names are camelCase
// because the SPA consumes them directly.
type SubmissionResponse struct {
	Slug         string            `json:"slug"`
	SenderName   string            `json:"senderName"`
	PartnerName  string            `json:"partnerName"`
	PackageID    string            `json:"packageId"`
	PackageName  string            `json:"packageName"`
	PackagePrice string            `json:"packagePrice"`
	Music        string            `json:"music"`
	Images       []string          `json:"images"`
	Videos       []string          `json:"videos"`
	Data         map[string]string `json:"data"`
	Sections     page.Sections     `json:"sections"`
	CreatedAt    time.Time         `json:"createdAt"`
}
