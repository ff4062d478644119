package model

type Project struct {
	Name string `json:"name"`
	ID   int64  `json:"id,string"`
}
