package dto

import (
	"encoding/json"
	"strings"
)

// CreatePhotoDTO binds the non-file fields of the multipart upload form
type CreatePhotoDTO struct {
	Title    string `form:"title" binding:"required,min=1,max=200"`
	Caption  string `form:"caption" binding:"max=2000"`
	Location string `form:"location" binding:"max=200"`
	// Accepts a JSON array or a comma-separated list; see ParsePeople
	People string `form:"people"`
}

// UpdatePhotoDTO for editing photo metadata; nil fields are left untouched
type UpdatePhotoDTO struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Caption  *string `json:"caption" binding:"omitempty,max=2000"`
	Location *string `json:"location" binding:"omitempty,max=200"`
	People   *string `json:"people"`
}

// PhotoListFilters for the main listing endpoint
type PhotoListFilters struct {
	CreatorID string
	Location  string
	Search    string
	Sort      string
}

// PhotoSearchFilters for the dedicated search endpoint
type PhotoSearchFilters struct {
	Query    string
	Tags     []string
	Location string
	People   []string
}

// UploadedImage carries the validated image file out of the multipart request.
type UploadedImage struct {
	Data     []byte
	FileName string
	MimeType string
	Size     int64
}

// ParsePeople normalizes the dynamic "people" field into a string slice.
// Clients send either a JSON array (`["ana","bo"]`) or a comma-separated
// list (`ana, bo`); both collapse to trimmed, non-empty entries.
func ParsePeople(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var people []string
		if err := json.Unmarshal([]byte(raw), &people); err == nil {
			return trimNonEmpty(people)
		}
		// malformed JSON degrades to an empty list rather than an error
		return []string{}
	}

	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitCSV splits a comma-separated query parameter into trimmed values.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return trimNonEmpty(strings.Split(raw, ","))
}
