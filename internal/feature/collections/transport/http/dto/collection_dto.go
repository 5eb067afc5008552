// Package dto defines data transfer objects for the collections feature's
// HTTP transport layer.
package dto

import (
	"time"

	"incrementum/internal/feature/collections/domain/entity"
)

// CreateCollectionReq represents the request body for creating a collection.
// Initial symbols become members atomically with the collection itself.
type CreateCollectionReq struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Symbols     []string  `json:"symbols"`
}

// AddStockReq represents the request body for adding a symbol to a collection.
type AddStockReq struct {
	Symbol string `json:"symbol" binding:"required"`
}

// CollectionRes represents one collection in responses.
type CollectionRes struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Symbols     []string  `json:"symbols,omitempty"`
}

// FromEntity converts the domain model into a response.
func FromEntity(c entity.CustomCollection, symbols []string) CollectionRes {
	return CollectionRes{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Date:        c.Date,
		Symbols:     symbols,
	}
}
