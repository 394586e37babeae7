package entity

import "time"

type Document struct {
	Id         int64
	Title      string
	SourceType string
	SourceURL  string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
