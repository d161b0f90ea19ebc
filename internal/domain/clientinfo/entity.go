package clientinfo

import "time"

// Carrier is implemented by entities that accept client info.
type Carrier interface {
	ApplyClientInfo(c ClientInfo)
}

// BaseEntity holds the client-info fields shared by every domain entity.
// Embed it to make an entity a [Carrier].
type BaseEntity struct {
	DBLocaleLanguage string
	DBTimeZone       string
	TimeZone         *time.Location
}

// ApplyClientInfo copies c onto the entity, resolving the time zone.
func (e *BaseEntity) ApplyClientInfo(c ClientInfo) {
	e.DBLocaleLanguage = c.DBLocaleLanguage
	e.DBTimeZone = c.DBTimeZone
	e.TimeZone = c.Location()
}

// Location returns the entity's time zone, or UTC when none was applied.
func (e *BaseEntity) Location() *time.Location {
	if e.TimeZone == nil {
		return time.UTC
	}
	return e.TimeZone
}

// IsZero reports whether no client info has been applied.
func (e *BaseEntity) IsZero() bool {
	return e.DBLocaleLanguage == "" && e.DBTimeZone == "" && e.TimeZone == nil
}
