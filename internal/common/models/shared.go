package models

import "time"

// Log is the shape of an application log record persisted by the zap sink
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller" json:"caller"`
	ReviewerId   string    `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
