package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database("clinicbook").Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "payment_intent_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "appointment_time", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByPaymentIntentID retrieves the appointment holding the given payment intent ID.
func (r *MongoAppointmentRepo) GetByPaymentIntentID(intentID string) (*models.Appointment, error) {
	return r.findOne(bson.M{"payment_intent_id": intentID})
}

func (r *MongoAppointmentRepo) findOne(filter bson.M) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

// GetAll retrieves all appointments ordered by appointment_time descending.
func (r *MongoAppointmentRepo) GetAll() ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointment_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// SetPaymentIntent attaches a payment intent ID to an appointment.
func (r *MongoAppointmentRepo) SetPaymentIntent(id, intentID string) error {
	return r.updateOne(id, bson.M{"payment_intent_id": intentID})
}

// MarkPaid flips is_paid to true for an appointment.
func (r *MongoAppointmentRepo) MarkPaid(id string) error {
	return r.updateOne(id, bson.M{"is_paid": true})
}

func (r *MongoAppointmentRepo) updateOne(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// CountByPaid returns the paid and pending appointment counts.
func (r *MongoAppointmentRepo) CountByPaid() (int64, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	paid, err := r.coll.CountDocuments(ctx, bson.M{"is_paid": true})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count paid appointments: %w", err)
	}
	pending, err := r.coll.CountDocuments(ctx, bson.M{"is_paid": false})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count pending appointments: %w", err)
	}
	return paid, pending, nil
}
