package queue

import (
	"context"
	"time"

	"go-approvals/internal/classify"
	"go-approvals/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fields the queue can be sorted on. Anything else falls back to submission date.
var sortableFields = map[string]bool{
	"submission_date":  true,
	"last_updated":     true,
	"total_amount":     true,
	"quotation_number": true,
	"project_name":     true,
	"manager_name":     true,
	"status":           true,
}

// QueueRepository is the Mongo-backed queue data source
type QueueRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewQueueRepository(db *database.MongodbDB) DataSource {
	return &QueueRepository{
		collection: db.DB.Collection("quotations"),
		now:        time.Now,
	}
}

// FetchQueue returns one page of approval records for the query, deriving
// urgency and budget compliance on the way out.
func (r *QueueRepository) FetchQueue(ctx context.Context, q QueryState) (*Page, error) {
	now := r.now()
	filter := r.buildFilter(q.Filters, now)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortField := q.Sort.Field
	if !sortableFields[sortField] {
		sortField = "submission_date"
	}
	sortOrder := 1
	if q.Sort.Direction == SortDesc {
		sortOrder = -1
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetSkip(int64(q.Page) * int64(q.Size)).
		SetLimit(int64(q.Size))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ApprovalItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Derive(now)
	}
	if items == nil {
		items = []ApprovalItem{}
	}

	return &Page{
		Items:      items,
		Pagination: NewPagination(q.Page, q.Size, total),
	}, nil
}

// buildFilter translates ApprovalFilters into a Mongo query. Empty fields
// contribute no conditions.
func (r *QueueRepository) buildFilter(f ApprovalFilters, now time.Time) bson.M {
	conditions := []bson.M{}

	if len(f.Statuses) > 0 {
		conditions = append(conditions, bson.M{"status": bson.M{"$in": f.Statuses}})
	}
	if f.Search != "" {
		regex := primitive.Regex{Pattern: f.Search, Options: "i"}
		conditions = append(conditions, bson.M{"$or": []bson.M{
			{"quotation_number": bson.M{"$regex": regex}},
			{"project_name": bson.M{"$regex": regex}},
			{"manager_name": bson.M{"$regex": regex}},
			{"description": bson.M{"$regex": regex}},
		}})
	}
	if f.MinAmount != nil {
		conditions = append(conditions, bson.M{"total_amount": bson.M{"$gte": *f.MinAmount}})
	}
	if f.MaxAmount != nil {
		conditions = append(conditions, bson.M{"total_amount": bson.M{"$lte": *f.MaxAmount}})
	}
	if f.StartDate != nil {
		conditions = append(conditions, bson.M{"submission_date": bson.M{"$gte": *f.StartDate}})
	}
	if f.EndDate != nil {
		conditions = append(conditions, bson.M{"submission_date": bson.M{"$lte": *f.EndDate}})
	}
	if f.HasDocuments != nil {
		conditions = append(conditions, bson.M{"has_documents": *f.HasDocuments})
	}
	if f.ProjectID != "" {
		conditions = append(conditions, bson.M{"project_id": f.ProjectID})
	}
	if f.ManagerID != "" {
		conditions = append(conditions, bson.M{"manager_id": f.ManagerID})
	}
	if len(f.Urgencies) > 0 {
		conditions = append(conditions, bson.M{"$or": urgencyRanges(f.Urgencies, now)})
	}
	if len(f.Compliance) > 0 {
		conditions = append(conditions, bson.M{"$expr": bson.M{"$or": complianceExprs(f.Compliance)}})
	}

	if len(conditions) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conditions}
}

// urgencyRanges maps urgency levels to submission date windows. The
// classification thresholds are inclusive lower bounds on whole days
// waited, so each level is a half-open date interval.
func urgencyRanges(levels []classify.Urgency, now time.Time) []bson.M {
	day := 24 * time.Hour
	medium := now.Add(-classify.MediumAfterDays * day)
	high := now.Add(-classify.HighAfterDays * day)
	critical := now.Add(-classify.CriticalAfterDays * day)

	var ranges []bson.M
	for _, level := range levels {
		switch level {
		case classify.UrgencyLow:
			ranges = append(ranges, bson.M{"submission_date": bson.M{"$gt": medium}})
		case classify.UrgencyMedium:
			ranges = append(ranges, bson.M{"submission_date": bson.M{"$gt": high, "$lte": medium}})
		case classify.UrgencyHigh:
			ranges = append(ranges, bson.M{"submission_date": bson.M{"$gt": critical, "$lte": high}})
		case classify.UrgencyCritical:
			ranges = append(ranges, bson.M{"submission_date": bson.M{"$lte": critical}})
		}
	}
	return ranges
}

// complianceExprs builds aggregation expressions mirroring
// classify.BudgetComplianceOf, including the zero-budget rule.
func complianceExprs(levels []classify.Compliance) []bson.M {
	utilization := bson.M{"$divide": bson.A{
		bson.M{"$add": bson.A{"$spent_amount", "$total_amount"}},
		"$project_budget",
	}}
	hasBudget := bson.M{"$gt": bson.A{"$project_budget", 0}}
	noBudget := bson.M{"$lte": bson.A{"$project_budget", 0}}

	var exprs []bson.M
	for _, level := range levels {
		switch level {
		case classify.ComplianceCompliant:
			exprs = append(exprs, bson.M{"$or": bson.A{
				bson.M{"$and": bson.A{noBudget, bson.M{"$eq": bson.A{"$total_amount", 0}}}},
				bson.M{"$and": bson.A{hasBudget, bson.M{"$lte": bson.A{utilization, classify.WarningUtilization}}}},
			}})
		case classify.ComplianceWarning:
			exprs = append(exprs, bson.M{"$and": bson.A{
				hasBudget,
				bson.M{"$gt": bson.A{utilization, classify.WarningUtilization}},
				bson.M{"$lte": bson.A{utilization, classify.ExceededUtilization}},
			}})
		case classify.ComplianceExceeded:
			exprs = append(exprs, bson.M{"$or": bson.A{
				bson.M{"$and": bson.A{noBudget, bson.M{"$gt": bson.A{"$total_amount", 0}}}},
				bson.M{"$and": bson.A{hasBudget, bson.M{"$gt": bson.A{utilization, classify.ExceededUtilization}}}},
			}})
		}
	}
	return exprs
}
