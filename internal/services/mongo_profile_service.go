package services

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/withu/backend/internal/models"
)

// answerRefineThreshold is the answer length above which the prompt
// generator may be asked to reword today's question.
const answerRefineThreshold = 50

// MongoProfileService is the production ProfileService. One document per
// user in the "profiles" collection; daily records are nested maps updated
// through dotted paths (e.g. "moods.2024-05-01"), and every
// read-compute-write sequence of the old client (points award, unlock
// spend, streak) is collapsed into a single conditional update.
type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
	prompts     PromptGenerator

	now func() time.Time
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string, prompts PromptGenerator) (*MongoProfileService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
		prompts:     prompts,
		now:         time.Now,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) fetch(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) GetOrCreate(ctx context.Context, userID, email, name string) (*models.Profile, error) {
	prof, err := s.fetch(ctx, userID)
	if err == nil {
		return prof, nil
	}
	if err != ErrProfileNotFound {
		return nil, err
	}

	now := s.now()
	fresh := newProfileShell(userID, email, name, now)
	if _, err := s.profilesCol.InsertOne(ctx, fresh); err != nil {
		// If a race created it, fetch again.
		if mongo.IsDuplicateKeyError(err) {
			return s.fetch(ctx, userID)
		}
		return nil, err
	}
	return fresh, nil
}

// newProfileShell builds the initial not-yet-onboarded document: zero
// points, default+formal outfits, seeded daily goals.
func newProfileShell(userID, email, name string, now time.Time) *models.Profile {
	goals := make(map[string]models.Goal)
	for _, g := range models.DefaultGoals() {
		g.ID = uuid.New().String()
		g.CreatedAt = now
		goals[g.ID] = g
	}
	return &models.Profile{
		UserID:              userID,
		Email:               email,
		DisplayName:         name,
		Avatar:              models.Avatar{Mood: "happy", Outfit: "default", Accessories: []string{}},
		Points:              0,
		Streak:              0,
		UnlockedOutfits:     defaultUnlockedOutfits(),
		UnlockedAccessories: []string{},
		Onboarded:           false,
		Moods:               map[string]models.MoodEntry{},
		JournalWall:         map[string]models.JournalEntry{},
		Goals:               goals,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (s *MongoProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	set := bson.M{"updated_at": s.now()}
	if req.DisplayName != nil {
		set["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Email != nil {
		set["email"] = strings.TrimSpace(*req.Email)
	}
	if req.TrustedContact != nil {
		set["trusted_contact"] = strings.TrimSpace(*req.TrustedContact)
	}

	res, err := s.profilesCol.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) CompleteOnboarding(ctx context.Context, userID string, req *models.OnboardingRequest) (*models.Profile, error) {
	accessories := req.Accessories
	if accessories == nil {
		accessories = []string{}
	}
	set := bson.M{
		"avatar":          models.Avatar{Mood: req.AvatarMood, Outfit: "default", Accessories: accessories},
		"trusted_contact": strings.TrimSpace(req.TrustedContact),
		"onboarded":       true,
		"updated_at":      s.now(),
	}

	// onboarded=true is set exactly once; the filter refuses a second pass.
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID, "onboarded": false},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.fetch(ctx, userID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyOnboarded
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) LogMood(ctx context.Context, userID, moodTag, note string) (*models.Profile, error) {
	if !models.IsValidMood(moodTag) {
		return nil, ErrInvalidMood
	}

	now := s.now()
	todayKey := models.DateKey(now)
	yesterdayKey := models.DateKey(now.AddDate(0, 0, -1))
	moodPath := "moods." + todayKey

	entry := models.MoodEntry{Mood: moodTag, Note: note, Timestamp: now}
	set := bson.M{
		moodPath:      entry,
		"avatar.mood": moodTag,
		"updated_at":  now,
	}

	// Re-log on the same day: plain overwrite, no points, no streak.
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID, moodPath: bson.M{"$exists": true}},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		return s.fetch(ctx, userID)
	}

	// First log of the day with a live streak: award and extend, guarded by
	// the same filter that proves it is the first log. One update, so a
	// racing second session can neither double-award nor lose the award.
	res, err = s.profilesCol.UpdateOne(ctx,
		bson.M{
			"user_id": userID,
			moodPath:  bson.M{"$exists": false},
			"moods." + yesterdayKey: bson.M{"$exists": true},
		},
		bson.M{
			"$set": set,
			"$inc": bson.M{"points": models.MoodLogPoints, "streak": 1},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		return s.fetch(ctx, userID)
	}

	// First log of the day after a gap: award and restart the streak at 1.
	set["streak"] = 1
	res, err = s.profilesCol.UpdateOne(ctx,
		bson.M{
			"user_id": userID,
			moodPath:  bson.M{"$exists": false},
			"moods." + yesterdayKey: bson.M{"$exists": false},
		},
		bson.M{
			"$set": set,
			"$inc": bson.M{"points": models.MoodLogPoints},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		return s.fetch(ctx, userID)
	}

	// All three filters missed: either the profile is gone, or another
	// session logged today's mood between our attempts. Overwrite plainly.
	delete(set, "streak")
	res, err = s.profilesCol.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) MoodTrend(ctx context.Context, userID string, window int) (*models.MoodTrend, error) {
	prof, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeMoodTrend(prof.Moods, window), nil
}

func (s *MongoProfileService) GetOrCreateTodaysQuestion(ctx context.Context, userID string) (*models.JournalEntry, error) {
	prof, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	todayKey := models.DateKey(now)
	if entry, ok := prof.JournalWall[todayKey]; ok && entry.Question != "" {
		return &entry, nil
	}

	if s.prompts == nil {
		return nil, ErrPromptUnavailable
	}
	question, err := s.prompts.GenerateQuestion(ctx, recentQuestions(prof.JournalWall, RecentQuestionLimit))
	if err != nil {
		return nil, err
	}

	entry := models.JournalEntry{Question: question, Answer: "", Timestamp: now}
	journalPath := "journal_wall." + todayKey

	// Only the first writer of the day wins; a concurrent session that got
	// here first keeps its question.
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID, journalPath: bson.M{"$exists": false}},
		bson.M{"$set": bson.M{journalPath: entry, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		prof, err := s.fetch(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing, ok := prof.JournalWall[todayKey]; ok && existing.Question != "" {
			return &existing, nil
		}
	}
	return &entry, nil
}

func (s *MongoProfileService) SaveJournalAnswer(ctx context.Context, userID, answer string) (*models.JournalEntry, error) {
	prof, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	todayKey := models.DateKey(now)
	existing, ok := prof.JournalWall[todayKey]
	if !ok || existing.Question == "" {
		return nil, ErrNoQuestion
	}

	entry := models.JournalEntry{
		Question:       existing.Question,
		Answer:         answer,
		Timestamp:      now,
		OriginalPrompt: existing.OriginalPrompt,
	}

	// A substantial answer may earn a better-fitting question; the original
	// is preserved alongside. Refinement is best-effort.
	if len(answer) > answerRefineThreshold && s.prompts != nil {
		if refined, err := s.prompts.RefineQuestion(ctx, existing.Question, answer); err == nil {
			refined = strings.TrimSpace(refined)
			if refined != "" && refined != existing.Question {
				entry.Question = refined
				entry.OriginalPrompt = existing.Question
			}
		}
	}

	journalPath := "journal_wall." + todayKey
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{journalPath: entry, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	return &entry, nil
}

func (s *MongoProfileService) SaveAvatar(ctx context.Context, userID string, req *models.SaveAvatarRequest) (*models.Profile, error) {
	accessories := req.Accessories
	if accessories == nil {
		accessories = []string{}
	}

	// Equipping requires ownership; the filter carries the check so a stale
	// client snapshot cannot equip a locked item.
	filter := bson.M{
		"user_id":          userID,
		"unlocked_outfits": req.Outfit,
	}
	if len(accessories) > 0 {
		filter["unlocked_accessories"] = bson.M{"$all": accessories}
	}

	res, err := s.profilesCol.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"avatar.outfit":      req.Outfit,
		"avatar.accessories": accessories,
		"updated_at":         s.now(),
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.fetch(ctx, userID); err != nil {
			return nil, err
		}
		return nil, ErrItemLocked
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) UnlockItem(ctx context.Context, userID string, kind models.ItemKind, itemID string) (*models.Profile, error) {
	item, ok := models.LookupItem(kind, itemID)
	if !ok {
		return nil, ErrUnknownItem
	}

	field := "unlocked_outfits"
	if kind == models.ItemAccessory {
		field = "unlocked_accessories"
	}

	// Spend and grant in one conditional update: enough points, not yet
	// owned. No window for a lost update between check and write.
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{
			"user_id": userID,
			"points":  bson.M{"$gte": item.Cost},
			field:     bson.M{"$ne": itemID},
		},
		bson.M{
			"$inc":      bson.M{"points": -item.Cost},
			"$addToSet": bson.M{field: itemID},
			"$set":      bson.M{"updated_at": s.now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		prof, err := s.fetch(ctx, userID)
		if err != nil {
			return nil, err
		}
		if prof.HasUnlocked(kind, itemID) {
			return nil, ErrAlreadyUnlocked
		}
		return nil, ErrInsufficientPoints
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) AddGoal(ctx context.Context, userID, title string) (*models.Profile, error) {
	now := s.now()
	goal := models.Goal{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Points:    models.CustomGoalPoints,
		Completed: false,
		Type:      models.GoalCustom,
		CreatedAt: now,
	}

	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"goals." + goal.ID: goal, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) CompleteGoal(ctx context.Context, userID, goalID string) (*models.Profile, error) {
	prof, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	goal, ok := prof.Goals[goalID]
	if !ok {
		return nil, ErrGoalNotFound
	}

	// The completed flag in the filter makes the award single-shot.
	res, err := s.profilesCol.UpdateOne(ctx,
		bson.M{"user_id": userID, "goals." + goalID + ".completed": false},
		bson.M{
			"$set": bson.M{"goals." + goalID + ".completed": true, "updated_at": s.now()},
			"$inc": bson.M{"points": goal.Points},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrGoalCompleted
	}
	return s.fetch(ctx, userID)
}
