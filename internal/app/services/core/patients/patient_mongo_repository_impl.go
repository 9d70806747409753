package patients

import (
	"context"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (r *PatientMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.Collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

func (r *PatientMongoRepository) PseudonymExists(ctx context.Context, pseudonym string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"pseudonym": pseudonym})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (r *PatientMongoRepository) Insert(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	patient.CreatedAt = time.Now()
	result, err := r.Collection.InsertOne(ctx, patient)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		patient.ID = objectID.Hex()
	}
	return patient, nil
}
