package bookingRepo

import (
	"context"
	"time"

	"knead/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ensureIndexes creates the indexes backing the overlap query and the
// dashboard/admin read paths.
func (r *MongoBookingRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "booking_ref", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_ref"),
		},
		// Primary occupancy query: partition by date and therapist pool,
		// filter by status, range over the window bounds.
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "therapist_gender", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start", Value: 1},
			},
			Options: options.Index().SetName("date_gender_status_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "payment_intent_id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("payment_intent_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		utils.GetLogger().Warn("failed to create booking indexes", zap.Error(err))
	}
}
