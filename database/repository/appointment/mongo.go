// File: database/repository/appointment/mongo.go
package appointmentRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sapdoc/models"
	"sapdoc/utils"
)

type mongoAppointmentRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoAppointmentRepo constructs an AppointmentRepository on a MongoDB database.
func NewMongoAppointmentRepo(client *mongo.Client, dbName string) AppointmentRepository {
	return &mongoAppointmentRepo{
		client: client,
		coll:   client.Database(dbName).Collection("appointments"),
	}
}

var byDateTime = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return wrap("create appointment", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetBySlotID(ctx context.Context, slotID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"slotId": slotID}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get appointment", err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) DeleteBySlotID(ctx context.Context, slotID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOneAndDelete(ctx, bson.M{"slotId": slotID}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("delete appointment", err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	return r.find(ctx, "list appointments by date", filter)
}

func (r *mongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	return r.find(ctx, "list appointments", bson.M{})
}

func (r *mongoAppointmentRepo) find(ctx context.Context, op string, filter bson.M) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(byDateTime))
	if err != nil {
		return nil, wrap(op, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, wrap(op, err)
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrap("count appointments", err)
	}
	return n, nil
}

func (r *mongoAppointmentRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
