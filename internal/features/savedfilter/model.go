package savedfilter

import (
	"time"

	"go-approvals/internal/features/queue"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Preset is a named filter configuration a reviewer can re-apply to the
// queue. At most one preset per reviewer is the default.
type Preset struct {
	ID          primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	Name        string                `json:"name" bson:"name"`
	Description string                `json:"description,omitempty" bson:"description,omitempty"`
	ReviewerID  string                `json:"reviewer_id" bson:"reviewer_id"`
	IsDefault   bool                  `json:"is_default" bson:"is_default"`
	Filters     queue.ApprovalFilters `json:"filters" bson:"filters"`
	CreatedAt   time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at" bson:"updated_at"`
}
