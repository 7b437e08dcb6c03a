package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"knead/database"
	"knead/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// releasedStatuses no longer hold their occupied window.
var releasedStatuses = []models.BookingStatus{
	models.StatusCancelled,
	models.StatusCompleted,
}

// MongoBookingRepo implements BookingRepository against MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	repo := &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	repo.ensureIndexes()
	return repo
}

// overlapFilter matches bookings on the partition whose occupied windows
// intersect [start, end). Released bookings are excluded.
func overlapFilter(date string, gender models.TherapistGender, start, end int) bson.M {
	return bson.M{
		"date":             date,
		"therapist_gender": gender,
		"status":           bson.M{"$nin": releasedStatuses},
		"start":            bson.M{"$lt": end},
		"end":              bson.M{"$gt": start},
	}
}

func (r *MongoBookingRepo) CreateIfFree(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(
			booking.Date, booking.TherapistGender, booking.Start, booking.End))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrWindowTaken
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

func (r *MongoBookingRepo) ActiveByDateGender(ctx context.Context, date string, gender models.TherapistGender) ([]models.Booking, error) {
	filter := bson.M{
		"date":             date,
		"therapist_gender": gender,
		"status":           bson.M{"$nin": releasedStatuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"payment_intent_id": intentID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking by payment intent: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *MongoBookingRepo) Stats(ctx context.Context) (*models.BookingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status  models.BookingStatus `bson:"_id"`
		Count   int64                `bson:"count"`
		Revenue float64              `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking stats: %w", err)
	}

	stats := &models.BookingStats{}
	for _, row := range rows {
		stats.TotalBookings += row.Count
		switch row.Status {
		case models.StatusPending:
			stats.PendingBookings = row.Count
		case models.StatusConfirmed:
			stats.ConfirmedBookings = row.Count
		case models.StatusCompleted:
			stats.CompletedBookings = row.Count
			stats.TotalRevenue = row.Revenue
		case models.StatusCancelled:
			stats.CancelledBookings = row.Count
		}
	}
	return stats, nil
}

func (r *MongoBookingRepo) RevenueByMonth(ctx context.Context) ([]models.MonthlyRevenue, error) {
	// Booking dates are "YYYY-MM-DD" strings, so the month is a prefix.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$substrBytes": bson.A{"$date", 0, 7}},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	months := make([]models.MonthlyRevenue, 0)
	if err := cursor.All(ctx, &months); err != nil {
		return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
	}
	return months, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	update := bson.M{"$set": bson.M{"payment_intent_id": intentID, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to attach payment intent: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentPaid,
		"updated_at":     time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
