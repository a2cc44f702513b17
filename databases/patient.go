package databases

// go generate: mockery --name PatientDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/models"
)

const patientName = "patients"

// PatientDatabase contains the methods to use with the patients database
type PatientDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Patient, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Patient, error)
	InsertOne(ctx context.Context, patient models.Patient) (string, error)
	Watch(ctx context.Context) (<-chan models.Patient, error)
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (p *patientDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Patient, error) {
	patient := &models.Patient{}
	err := p.db.Collection(patientName).FindOne(ctx, filter, opts...).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (p *patientDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Patient, error) {
	var patients []models.Patient
	err := p.db.Collection(patientName).Find(ctx, filter, opts...).Decode(&patients)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// InsertOne writes one patient record and returns the confirmed record id.
// Ids are assigned here as object-id hex strings so every stored record
// carries the same id shape regardless of writer.
func (p *patientDatabase) InsertOne(ctx context.Context, patient models.Patient) (string, error) {
	if patient.ID == "" {
		patient.ID = primitive.NewObjectID().Hex()
	}
	_, err := p.db.Collection(patientName).InsertOne(ctx, patient)
	if err != nil {
		return "", err
	}
	return patient.ID, nil
}

// Watch opens a change stream over the patients collection and emits every
// remotely inserted record. The channel closes when the stream ends or ctx
// is cancelled.
func (p *patientDatabase) Watch(ctx context.Context) (<-chan models.Patient, error) {
	pipeline := bson.A{bson.M{"$match": bson.M{"operationType": "insert"}}}
	stream, err := p.db.Collection(patientName).Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(chan models.Patient)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			var event struct {
				FullDocument models.Patient `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				zap.S().With(err).Warn("failed to decode patient change event")
				continue
			}
			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
