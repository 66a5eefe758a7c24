package dto

import "time"

type ExportInput struct {
	Path string
}

type ExportOutput struct {
	Path       string
	ExportedAt time.Time
	Games      int
	Friends    int
	Sessions   int
}
