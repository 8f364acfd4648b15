package dto

type UploadImageRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Tags        string `form:"tags"` // comma-separated
}

type UploadImageResponse struct {
	ArtifactId string `json:"artifact_id"`
	Title      string `json:"title"`
	SavePath   string `json:"save_path"`
}

type ImageListItem struct {
	ArtifactId  string `json:"artifact_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SavePath    string `json:"save_path"`
}
