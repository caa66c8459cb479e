package model

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update replaces the mutable fields. Author and identity stay as they were.
func (p *Post) Update(title, content string) {
	p.Title = title
	p.Content = content
}
