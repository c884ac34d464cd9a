package pexels

import "errors"

var ErrNoPhotos = errors.New("no photos in response")

// Size variants in order of preference
var imageSizes = []string{"original", "large2x", "large", "medium", "small", "portrait", "landscape", "tiny"}

type (
	Response struct {
		Page         int     `json:"page"`
		PerPage      int     `json:"per_page"`
		TotalResults int     `json:"total_results"`
		Photos       []Photo `json:"photos"`
	}

	Photo struct {
		ID              int64             `json:"id"`
		URL             string            `json:"url"`
		Photographer    string            `json:"photographer"`
		PhotographerURL string            `json:"photographer_url"`
		Alt             string            `json:"alt"`
		Src             map[string]string `json:"src"`
	}
)

// ImageLink returns the best available size variant or an empty string.
func (p Photo) ImageLink() string {
	for _, size := range imageSizes {
		if link := p.Src[size]; link != "" {
			return link
		}
	}
	return ""
}
