package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

type clientDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	RealmID     string             `bson:"realm_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d clientDoc) toDomain() repository.Client {
	return repository.Client{
		ID:          d.ID.Hex(),
		RealmID:     d.RealmID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// clientFilter arma el filtro realm+id. Todas las operaciones sobre un
// client individual filtran por ambos: un client de otro realm se ve
// como ErrNotFound, nunca como alcanzable.
func clientFilter(realmID string, oid primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "realm_id", Value: realmID},
	}
}

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(ctx context.Context, c *repository.Client) (*repository.Client, error) {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := clientDoc{
		ID:          primitive.NewObjectID(),
		RealmID:     c.RealmID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Nombre único a nivel store (unique index), no por realm.
	if _, err := coll.InsertOne(cctx, doc); err != nil {
		return nil, mapErr("create client", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *clientRepo) List(ctx context.Context, realmID string) ([]repository.Client, error) {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	cur, err := coll.Find(cctx, bson.D{{Key: "realm_id", Value: realmID}})
	if err != nil {
		return nil, mapErr("list clients", err)
	}
	var docs []clientDoc
	if err := cur.All(cctx, &docs); err != nil {
		return nil, mapErr("list clients", err)
	}
	out := make([]repository.Client, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *clientRepo) Get(ctx context.Context, realmID, clientID string) (*repository.Client, error) {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, repository.ErrInvalidInput
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	var doc clientDoc
	if err := coll.FindOne(cctx, clientFilter(realmID, oid)).Decode(&doc); err != nil {
		return nil, mapErr("get client", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *clientRepo) Update(ctx context.Context, realmID, clientID string, input repository.UpdateClientInput) (*repository.Client, error) {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, repository.ErrInvalidInput
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	if input.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *input.Name})
	}
	if input.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *input.Description})
	}

	var doc clientDoc
	err = coll.FindOneAndUpdate(cctx,
		clientFilter(realmID, oid),
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr("update client", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *clientRepo) Delete(ctx context.Context, realmID, clientID string) error {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return repository.ErrInvalidInput
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.DeleteOne(cctx, clientFilter(realmID, oid))
	if err != nil {
		return mapErr("delete client", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *clientRepo) DeleteByRealm(ctx context.Context, realmID string) (int64, error) {
	coll, err := r.s.collection(collClients)
	if err != nil {
		return 0, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.DeleteMany(cctx, bson.D{{Key: "realm_id", Value: realmID}})
	if err != nil {
		return 0, mapErr("delete clients by realm", err)
	}
	return res.DeletedCount, nil
}
