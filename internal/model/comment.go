package model

import "time"

type Comment struct {
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	Author    *User     `json:"author"`
	ID        int64     `json:"id,string"`
	IssueID   int64     `json:"issue_id,string"`
}
