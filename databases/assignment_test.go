package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/databases/mocks"
	"github.com/pars-health/triage-api/models"
)

func TestAssignmentDatabase_Find(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var crHelperErr databases.CursorHelper
	var crHelperCorrect databases.CursorHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	crHelperErr = &mocks.CursorHelper{}
	crHelperCorrect = &mocks.CursorHelper{}

	crHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	crHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Assignment)
		(*arg) = []models.Assignment{{ID: "mocked-assignment"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(crHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(crHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patient_assignments").Return(collectionHelper)

	// Create new database with mocked Database interface
	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	assignments, err := assignmentDba.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, assignments)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different different filter for correct
	// result
	assignments, err = assignmentDba.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.Assignment{{ID: "mocked-assignment"}}, assignments)
	assert.NoError(t, err)
}

func TestAssignmentDatabase_InsertOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patient_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	id, err := assignmentDba.InsertOne(context.Background(), models.Assignment{PatientName: "Ada"})

	assert.NoError(t, err)
	assert.Len(t, id, 24)
}

func TestAssignmentDatabase_InsertOneError(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patient_assignments").Return(collectionHelper)

	assignmentDba := databases.NewAssignmentDatabase(dbHelper)

	id, err := assignmentDba.InsertOne(context.Background(), models.Assignment{PatientName: "Ada"})

	assert.Empty(t, id)
	assert.EqualError(t, err, "mocked-error")
}
