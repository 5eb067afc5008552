// Package dto defines data transfer objects for the screeners feature's HTTP
// transport layer.
package dto

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"incrementum/internal/feature/screeners/domain/entity"
)

// CustomScreenerReq represents the request body for creating or updating a
// custom screener. The filter document is stored and returned verbatim.
type CustomScreenerReq struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Filter      json.RawMessage `json:"filter"`
}

// FilterJSON returns the filter document as the storage type.
func (r CustomScreenerReq) FilterJSON() datatypes.JSON {
	if len(r.Filter) == 0 {
		return nil
	}
	return datatypes.JSON(r.Filter)
}

// ScreenerRes represents one built-in screener in responses.
type ScreenerRes struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FromScreener converts the domain model into a response.
func FromScreener(s entity.Screener) ScreenerRes {
	return ScreenerRes{ID: s.ID, Name: s.Name, Description: s.Description}
}

// CustomScreenerRes represents one custom screener in responses.
type CustomScreenerRes struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Filter      json.RawMessage `json:"filter"`
}

// FromCustomScreener converts the domain model into a response.
func FromCustomScreener(s entity.CustomScreener) CustomScreenerRes {
	return CustomScreenerRes{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		Filter:      json.RawMessage(s.Filter),
	}
}
