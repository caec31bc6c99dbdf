package dto

// UploadResponse carries the media host's handle for an uploaded image.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// ViewResponse lists a user's image URLs.
type ViewResponse struct {
	URLs []string `json:"urls"`
}
