package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB maps a Postgres jsonb column onto a typed Go value. Fact tables use
// JSONB[json.RawMessage] for their verbatim source backup column.
type JSONB[T any] struct {
	Data T
}

func (p *JSONB[T]) Scan(src any) error {
	// src is a []byte from pq
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("JSONB.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, &p.Data)
}

func (p JSONB[T]) Value() (driver.Value, error) {
	return json.Marshal(p.Data)
}

func (p *JSONB[T]) GetValue() T {
	return p.Data
}
