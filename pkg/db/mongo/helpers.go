package mongo

import (
	"context"
	"time"

	"hotelluxury/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds a single store call by timeout, or by the caller's
// deadline when that is sooner.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// IDString renders a driver-assigned id the way clients see it.
func IDString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

func ToUpdateResult(res *mongo.UpdateResult) *model.UpdateResult {
	out := &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id := IDString(res.UpsertedID); id != "" {
		out.UpsertedID = &id
	}
	return out
}

func ToDeleteResult(res *mongo.DeleteResult) *model.DeleteResult {
	return &model.DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}
}
