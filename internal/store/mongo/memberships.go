package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type membershipDoc struct {
	RealmID string   `bson:"realm_id"`
	UserIDs []string `bson:"user_ids"`
}

// membershipRepo opera sobre un documento por realm. Add y Remove son
// updates single-document ($addToSet/$pull): atómicos en el store, sin
// carrera posible entre concurrentes.
type membershipRepo struct{ s *Store }

func (r *membershipRepo) Add(ctx context.Context, realmID, userID string) (bool, error) {
	coll, err := r.s.collection(collMemberships)
	if err != nil {
		return false, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.UpdateOne(cctx,
		bson.D{{Key: "realm_id", Value: realmID}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "user_ids", Value: userID}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, mapErr("add member", err)
	}
	// Documento nuevo o set modificado ⇒ true. Re-registrar a un miembro
	// existente devuelve false: un no-op, no un error.
	return res.UpsertedCount > 0 || res.ModifiedCount > 0, nil
}

func (r *membershipRepo) Remove(ctx context.Context, realmID, userID string) (bool, error) {
	coll, err := r.s.collection(collMemberships)
	if err != nil {
		return false, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.UpdateOne(cctx,
		bson.D{{Key: "realm_id", Value: realmID}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "user_ids", Value: userID}}}},
	)
	if err != nil {
		return false, mapErr("remove member", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *membershipRepo) Members(ctx context.Context, realmID string) ([]string, error) {
	coll, err := r.s.collection(collMemberships)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	var doc membershipDoc
	err = coll.FindOne(cctx, bson.D{{Key: "realm_id", Value: realmID}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		// Realm sin documento de membresía: secuencia vacía, no error.
		return []string{}, nil
	}
	if err != nil {
		return nil, mapErr("get members", err)
	}
	if doc.UserIDs == nil {
		return []string{}, nil
	}
	return doc.UserIDs, nil
}

func (r *membershipRepo) RemoveAll(ctx context.Context, realmID string) error {
	coll, err := r.s.collection(collMemberships)
	if err != nil {
		return err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	// Borrar un documento ausente es no-op: el paso del cascade puede
	// reintentarse sin efectos secundarios.
	if _, err := coll.DeleteOne(cctx, bson.D{{Key: "realm_id", Value: realmID}}); err != nil {
		return mapErr("remove all members", err)
	}
	return nil
}

func (r *membershipRepo) RemoveUserEverywhere(ctx context.Context, userID string) (int64, error) {
	coll, err := r.s.collection(collMemberships)
	if err != nil {
		return 0, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.UpdateMany(cctx,
		bson.D{{Key: "user_ids", Value: userID}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "user_ids", Value: userID}}}},
	)
	if err != nil {
		return 0, mapErr("remove user everywhere", err)
	}
	return res.ModifiedCount, nil
}
