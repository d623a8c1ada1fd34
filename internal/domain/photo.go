package domain

type Photo struct {
	ID          string `json:"id"`           // Unique per photo, repeated ids across pages are kept
	Author      string `json:"author"`       // Photographer name
	Width       int    `json:"width"`        // Original pixel width
	Height      int    `json:"height"`       // Original pixel height
	URL         string `json:"url"`          // Canonical page URL
	DownloadURL string `json:"download_url"` // Direct download URL
}
