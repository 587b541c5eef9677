package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

// Los nombres de campo (user_email, user_password_hash, ...) son los del
// esquema histórico de la colección; se conservan para poder apuntar a
// datos existentes.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"user_name"`
	Email        string             `bson:"user_email"`
	PasswordHash string             `bson:"user_password_hash"`
	CreatedAt    time.Time          `bson:"user_created_at"`
	UpdatedAt    time.Time          `bson:"user_updated_at"`
}

func (d userDoc) toDomain() repository.User {
	return repository.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	coll, err := r.s.collection(collUsers)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := coll.InsertOne(cctx, doc); err != nil {
		// Duplicado de email bajo carrera: el unique index lo corta acá.
		return nil, mapErr("create user", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	coll, err := r.s.collection(collUsers)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	var doc userDoc
	if err := coll.FindOne(cctx, bson.D{{Key: "user_email", Value: email}}).Decode(&doc); err != nil {
		return nil, mapErr("get user by email", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	coll, err := r.s.collection(collUsers)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidInput
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	var doc userDoc
	if err := coll.FindOne(cctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapErr("get user by id", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *userRepo) List(ctx context.Context) ([]repository.User, error) {
	coll, err := r.s.collection(collUsers)
	if err != nil {
		return nil, err
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	cur, err := coll.Find(cctx, bson.D{})
	if err != nil {
		return nil, mapErr("list users", err)
	}
	var docs []userDoc
	if err := cur.All(cctx, &docs); err != nil {
		return nil, mapErr("list users", err)
	}
	out := make([]repository.User, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *userRepo) Delete(ctx context.Context, userID string) (bool, error) {
	coll, err := r.s.collection(collUsers)
	if err != nil {
		return false, err
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, repository.ErrInvalidInput
	}
	cctx, cancel := r.s.opCtx(ctx)
	defer cancel()

	res, err := coll.DeleteOne(cctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, mapErr("delete user", err)
	}
	return res.DeletedCount == 1, nil
}
