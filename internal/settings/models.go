// Package settings stores congregation-level key/value configuration such
// as the congregation name, number and territory count. Values are typed
// strings persisted in one table and cached read-through in Redis.
package settings

import (
	"context"
	"time"
)

// ValueType declares how a setting's string value is interpreted.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeInt    ValueType = "int"
	TypeBool   ValueType = "bool"
)

// Setting is one configuration row.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ValueType ValueType `json:"value_type"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the persistence boundary for settings.
type Store interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, s *Setting) error
	List(ctx context.Context) ([]*Setting, error)
	Delete(ctx context.Context, key string) error
}
