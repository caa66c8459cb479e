package model

type CreatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (d *CreatePostDTO) ToEntity() *Post {
	return &Post{
		Title:   d.Title,
		Content: d.Content,
		Author:  d.Author,
	}
}
