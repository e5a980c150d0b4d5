package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
)

// ErrNotFound is returned when a query matches no document.
var ErrNotFound = errors.New("database: document not found")

const (
	apiKeysCollection   = "apikeys"
	companiesCollection = "companies"
	groupsCollection    = "groups"
)

// Repository implements every collection query the handlers need.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// GetActiveAPIKey looks up the unique active key matching both the token and
// the claimed company.
func (r *Repository) GetActiveAPIKey(ctx context.Context, key, companyID string) (*models.APIKey, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var record models.APIKey
	filter := bson.M{"key": key, "companyId": companyID, "isActive": true}
	err := r.db.Collection(apiKeysCollection).FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query api key: %w", err)
	}
	return &record, nil
}

// DeactivateCompanyKeys marks every key of a company inactive. Superseded
// keys are kept, never deleted.
func (r *Repository) DeactivateCompanyKeys(ctx context.Context, companyID string) error {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	_, err := r.db.Collection(apiKeysCollection).UpdateMany(ctx,
		bson.M{"companyId": companyID},
		bson.M{"$set": bson.M{"isActive": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate api keys: %w", err)
	}
	return nil
}

// InsertAPIKey stores a freshly generated key record.
func (r *Repository) InsertAPIKey(ctx context.Context, record *models.APIKey) error {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	if _, err := r.db.Collection(apiKeysCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert api key: %w", err)
	}
	return nil
}

// FindCompanies returns one page of company documents plus the total count.
func (r *Repository) FindCompanies(ctx context.Context, filter bson.M, p pagination.Params) ([]bson.M, int64, error) {
	return r.findPage(ctx, companiesCollection, filter, p, bson.D{{Key: "_id", Value: 1}})
}

// GetCompany fetches a single company by its identifier.
func (r *Repository) GetCompany(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var company models.Company
	err := r.db.Collection(companiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	return &company, nil
}

// FindGroups returns one page of a company's groups plus the total count.
func (r *Repository) FindGroups(ctx context.Context, filter bson.M, p pagination.Params) ([]models.Group, int64, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	coll := r.db.Collection(groupsCollection)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit())
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, total, nil
}

// GroupWithDevice is the membership check: it finds a group owned by the
// company that lists the device UUID. ErrNotFound means the device is not
// visible to this company, regardless of whether it exists elsewhere.
func (r *Repository) GroupWithDevice(ctx context.Context, companyID primitive.ObjectID, uuid string) (*models.Group, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var group models.Group
	filter := bson.M{"company_id": companyID, "devices.uuid": uuid}
	err := r.db.Collection(groupsCollection).FindOne(ctx, filter).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group membership: %w", err)
	}
	return &group, nil
}

// GroupWithAnyDevice is the membership check for a set of UUIDs.
func (r *Repository) GroupWithAnyDevice(ctx context.Context, companyID primitive.ObjectID, uuids []string) (*models.Group, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var group models.Group
	filter := bson.M{"company_id": companyID, "devices.uuid": bson.M{"$in": uuids}}
	err := r.db.Collection(groupsCollection).FindOne(ctx, filter).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group membership: %w", err)
	}
	return &group, nil
}

// GroupsForCompany returns every group the company owns.
func (r *Repository) GroupsForCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Group, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(groupsCollection).Find(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, nil
}

// FindDevices queries one per-family device collection.
func (r *Repository) FindDevices(ctx context.Context, collection string, filter bson.M) ([]models.Device, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices in %s: %w", collection, err)
	}
	return devices, nil
}

// FindEvents returns one ascending-by-timestamp page of telemetry documents
// plus the total count for the filter.
func (r *Repository) FindEvents(ctx context.Context, collection string, filter bson.M, p pagination.Params) ([]models.RawEvent, int64, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	coll := r.db.Collection(collection)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events in %s: %w", collection, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit())
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var events []models.RawEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("failed to decode events in %s: %w", collection, err)
	}
	return events, total, nil
}

// FindAlerts returns one ascending-by-creation page of alert documents plus
// the total count. Alerts keep their stored shape; the formatter handles the
// wire representation.
func (r *Repository) FindAlerts(ctx context.Context, collection string, filter bson.M, p pagination.Params) ([]bson.M, int64, error) {
	return r.findPage(ctx, collection, filter, p, bson.D{{Key: "createdAt", Value: 1}})
}

func (r *Repository) findPage(ctx context.Context, collection string, filter bson.M, p pagination.Params, sort bson.D) ([]bson.M, int64, error) {
	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	coll := r.db.Collection(collection)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents in %s: %w", collection, err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(p.Limit())
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return docs, total, nil
}
