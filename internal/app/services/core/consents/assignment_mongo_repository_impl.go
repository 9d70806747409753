package consents

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

type AssignmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssignmentMongoRepository(db *mongo.Client, dbName string) contracts.AssignmentRepository {
	return &AssignmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAssignments),
	}
}

func (r *AssignmentMongoRepository) FindByPair(ctx context.Context, practitionerID, patientID string) (*models.Assignment, error) {
	var assignment models.Assignment
	filter := bson.M{"practitionerId": practitionerID, "patientId": patientID}
	err := r.Collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &assignment, nil
}

func (r *AssignmentMongoRepository) Insert(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error) {
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	result, err := r.Collection.InsertOne(ctx, assignment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		assignment.ID = objectID.Hex()
	}
	return assignment, nil
}

func (r *AssignmentMongoRepository) DeleteByPair(ctx context.Context, practitionerID, patientID string) (bool, error) {
	filter := bson.M{"practitionerId": practitionerID, "patientId": patientID}
	result, err := r.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *AssignmentMongoRepository) ListPatientIDsByPractitioner(ctx context.Context, practitionerID string) ([]string, error) {
	return r.listPairSide(ctx, bson.M{"practitionerId": practitionerID}, "patientId")
}

func (r *AssignmentMongoRepository) ListPractitionerIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	return r.listPairSide(ctx, bson.M{"patientId": patientID}, "practitionerId")
}

func (r *AssignmentMongoRepository) listPairSide(ctx context.Context, filter bson.M, field string) ([]string, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		if id, ok := doc[field].(string); ok {
			ids = append(ids, id)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return ids, nil
}
