package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

type realmDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	RealmID     string             `bson:"realm_id"`
	DisplayName string             `bson:"display_name,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d realmDoc) toDomain() repository.Realm {
	return repository.Realm{
		ID:          d.ID.Hex(),
		RealmID:     d.RealmID,
		DisplayName: d.DisplayName,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type realmRepo struct{ s *Store }

func (r *realmRepo) Create(ctx context.Context, realm *repository.Realm) error {
	coll, err := r.s.collection(collRealms)
	if err != nil {
		return err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := realmDoc{
		ID:          primitive.NewObjectID(),
		RealmID:     realm.RealmID,
		DisplayName: realm.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Sin pre-check de unicidad: el unique index sobre realm_id es quien
	// rechaza duplicados, también bajo concurrencia.
	if _, err := coll.InsertOne(cctx, doc); err != nil {
		return mapErr("create realm", err)
	}
	realm.ID = doc.ID.Hex()
	realm.CreatedAt = doc.CreatedAt
	realm.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *realmRepo) List(ctx context.Context) ([]repository.Realm, error) {
	coll, err := r.s.collection(collRealms)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	cur, err := coll.Find(cctx, bson.D{})
	if err != nil {
		return nil, mapErr("list realms", err)
	}
	var docs []realmDoc
	if err := cur.All(cctx, &docs); err != nil {
		return nil, mapErr("list realms", err)
	}
	out := make([]repository.Realm, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *realmRepo) GetByRealmID(ctx context.Context, realmID string) (*repository.Realm, error) {
	coll, err := r.s.collection(collRealms)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	var doc realmDoc
	if err := coll.FindOne(cctx, bson.D{{Key: "realm_id", Value: realmID}}).Decode(&doc); err != nil {
		return nil, mapErr("get realm", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *realmRepo) Update(ctx context.Context, realmID string, input repository.UpdateRealmInput) (*repository.Realm, error) {
	coll, err := r.s.collection(collRealms)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	if input.DisplayName != nil {
		set = append(set, bson.E{Key: "display_name", Value: *input.DisplayName})
	}

	var doc realmDoc
	err = coll.FindOneAndUpdate(cctx,
		bson.D{{Key: "realm_id", Value: realmID}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr("update realm", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *realmRepo) Delete(ctx context.Context, realmID string) (bool, error) {
	coll, err := r.s.collection(collRealms)
	if err != nil {
		return false, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	// El acknowledgement no distingue "borrado" de "no había nada": el
	// deleted count sí.
	res, err := coll.DeleteOne(cctx, bson.D{{Key: "realm_id", Value: realmID}})
	if err != nil {
		return false, mapErr("delete realm", err)
	}
	return res.DeletedCount == 1, nil
}
