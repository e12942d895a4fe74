package models

import "strings"

// EventSpace is one listing in an owner's catalog. Title is the only key.
type EventSpace struct {
	Title          string   `json:"Title" validate:"required"`
	Description    string   `json:"Description" validate:"required"`
	Location       string   `json:"Location" validate:"required"`
	Capacity       int      `json:"Capacity" validate:"gt=0"`
	DailyRate      float64  `json:"DailyRate" validate:"gt=0"`
	ExtensionRate  float64  `json:"ExtensionRate" validate:"gte=0"`
	ChairRate      float64  `json:"ChairRate" validate:"gte=0"`
	Category       string   `json:"Category" validate:"categories"`
	Images         []string `json:"ImageUrls"`
	Rating         int      `json:"Rating"`
	ReviewCount    int      `json:"ReviewCount"`
	FormattedPrice string   `json:"FormattedPrice,omitempty"`
}

// Categories splits the comma-joined category string into trimmed tags.
func (s *EventSpace) Categories() []string {
	return SplitCategories(s.Category)
}

// HasCategory reports whether tag is one of the space's categories,
// ignoring case.
func (s *EventSpace) HasCategory(tag string) bool {
	for _, c := range s.Categories() {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

func SplitCategories(category string) []string {
	var tags []string
	for _, part := range strings.Split(category, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func JoinCategories(tags []string) string {
	return strings.Join(tags, ", ")
}
