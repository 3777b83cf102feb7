package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/efuayankey/NextToIntern/internal/domain"
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	u.Points = 0
	u.Level = domain.DefaultLevel
	u.OnboardingComplete = false
	u.CreatedAt = time.Now().UTC()

	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

// GetProfile is FindUserByID for callers that only hold the hex id.
func (s *Store) GetProfile(ctx context.Context, uid string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.FindUserByID(ctx, id)
}

func attrsDoc(attrs domain.ProfileAttrs) bson.M {
	return bson.M{
		"major":            attrs.Major,
		"year":             attrs.Year,
		"career_goals":     attrs.CareerGoals,
		"target_companies": attrs.TargetCompanies,
		"availability":     attrs.Availability,
		"updated_at":       time.Now().UTC(),
	}
}

// UpdateProfileAttrs is the editor's save: a partial merge of the profile
// attributes, leaving points and onboarding_complete alone.
func (s *Store) UpdateProfileAttrs(ctx context.Context, uid string, attrs domain.ProfileAttrs) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.update_profile",
		tracer.Tag("user_id", uid),
	)
	defer sp.Finish()

	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.colUsers.UpdateByID(ctx, id, bson.M{"$set": attrsDoc(attrs)})
	if err != nil {
		sp.SetTag("error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteOnboarding writes the accumulated attributes, latches
// onboarding_complete and grants the welcome bonus. The filter keys on
// onboarding_complete=false so the bonus is applied at most once even if the
// request is retried; a second completion reports ErrNotFound via the filter,
// surfaced as already-complete by the caller.
func (s *Store) CompleteOnboarding(ctx context.Context, uid string, attrs domain.ProfileAttrs) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.complete_onboarding",
		tracer.Tag("user_id", uid),
	)
	defer sp.Finish()

	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return ErrNotFound
	}
	set := attrsDoc(attrs)
	set["onboarding_complete"] = true
	res := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "onboarding_complete": false},
		bson.M{"$set": set, "$inc": bson.M{"points": domain.OnboardingBonus}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		sp.SetTag("error", err)
		return err
	}
	return nil
}
