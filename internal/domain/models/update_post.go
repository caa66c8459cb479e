package model

// UpdatePostDTO carries only what an update may change. There is no author or id here on purpose.
type UpdatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
