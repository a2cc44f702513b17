package databases

// go generate: mockery --name AssignmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pars-health/triage-api/models"
)

const assignmentName = "patient_assignments"

// AssignmentDatabase contains the methods to use with the patient_assignments database
type AssignmentDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Assignment, error)
	InsertOne(ctx context.Context, assignment models.Assignment) (string, error)
}

type assignmentDatabase struct {
	db DatabaseHelper
}

// NewAssignmentDatabase initializes a new instance of assignment database with the provided db connection
func NewAssignmentDatabase(db DatabaseHelper) AssignmentDatabase {
	return &assignmentDatabase{
		db: db,
	}
}

func (a *assignmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := a.db.Collection(assignmentName).Find(ctx, filter, opts...).Decode(&assignments)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (a *assignmentDatabase) InsertOne(ctx context.Context, assignment models.Assignment) (string, error) {
	if assignment.ID == "" {
		assignment.ID = primitive.NewObjectID().Hex()
	}
	_, err := a.db.Collection(assignmentName).InsertOne(ctx, assignment)
	if err != nil {
		return "", err
	}
	return assignment.ID, nil
}
