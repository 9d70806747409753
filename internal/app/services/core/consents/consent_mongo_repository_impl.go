package consents

import (
	"context"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ConsentMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsentMongoRepository(db *mongo.Client, dbName string) contracts.ConsentRepository {
	return &ConsentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionConsents),
	}
}

func (r *ConsentMongoRepository) FindByPair(ctx context.Context, patientID, practitionerID string) (*models.Consent, error) {
	var consent models.Consent
	filter := bson.M{"patientId": patientID, "practitionerId": practitionerID}
	err := r.Collection.FindOne(ctx, filter).Decode(&consent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &consent, nil
}

// Grant upserts the pair's record into GRANTED state in a single
// FindOneAndUpdate so concurrent transitions on the same pair resolve to one
// last writer.
func (r *ConsentMongoRepository) Grant(ctx context.Context, patientID, practitionerID string) (*models.Consent, error) {
	now := time.Now()
	filter := bson.M{"patientId": patientID, "practitionerId": practitionerID}
	update := bson.M{
		"$set": bson.M{
			"status":    constvars.ConsentStatusGranted,
			"grantedAt": now,
			"updatedAt": now,
		},
		"$unset":       bson.M{"revokedAt": ""},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var consent models.Consent
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&consent)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &consent, nil
}

// Revoke transitions an existing record to REVOKED. Returns nil without error
// when the pair has no record; the caller decides that this is NotFound.
func (r *ConsentMongoRepository) Revoke(ctx context.Context, patientID, practitionerID string) (*models.Consent, error) {
	now := time.Now()
	filter := bson.M{"patientId": patientID, "practitionerId": practitionerID}
	update := bson.M{
		"$set": bson.M{
			"status":    constvars.ConsentStatusRevoked,
			"revokedAt": now,
			"updatedAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var consent models.Consent
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&consent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &consent, nil
}

func (r *ConsentMongoRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Consent, error) {
	filter := bson.M{"patientId": patientID}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	consents := make([]models.Consent, 0)
	for cursor.Next(ctx) {
		var consent models.Consent
		if err := cursor.Decode(&consent); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		consents = append(consents, consent)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return consents, nil
}

func (r *ConsentMongoRepository) ListGrantedPatientIDsByPractitioner(ctx context.Context, practitionerID string) ([]string, error) {
	filter := bson.M{
		"practitionerId": practitionerID,
		"status":         constvars.ConsentStatusGranted,
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	patientIDs := make([]string, 0)
	for cursor.Next(ctx) {
		var consent models.Consent
		if err := cursor.Decode(&consent); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		patientIDs = append(patientIDs, consent.PatientID)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patientIDs, nil
}
