package databases

// go generate: mockery --name DoctorDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pars-health/triage-api/models"
)

const doctorName = "doctors"

// DoctorDatabase contains the methods to use with the doctors directory database
type DoctorDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Doctor, error)
}

type doctorDatabase struct {
	db DatabaseHelper
}

// NewDoctorDatabase initializes a new instance of doctor database with the provided db connection
func NewDoctorDatabase(db DatabaseHelper) DoctorDatabase {
	return &doctorDatabase{
		db: db,
	}
}

func (d *doctorDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := d.db.Collection(doctorName).Find(ctx, filter, opts...).Decode(&doctors)
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
