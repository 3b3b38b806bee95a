package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/withu/backend/internal/models"
)

// MemoryProfileService is an in-memory ProfileService with the same
// semantics as the Mongo one. The mutex serializes every operation, so the
// conditional points/unlock updates are trivially atomic here. Used in tests
// and available as a datastore-free dev mode.
type MemoryProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
	prompts  PromptGenerator

	now func() time.Time
}

func NewMemoryProfileService(prompts PromptGenerator) *MemoryProfileService {
	return &MemoryProfileService{
		profiles: make(map[string]*models.Profile),
		prompts:  prompts,
		now:      time.Now,
	}
}

// SetClock overrides the service's notion of now. Test hook.
func (s *MemoryProfileService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryProfileService) get(userID string) (*models.Profile, error) {
	prof, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return prof, nil
}

// snapshot deep-copies a profile so callers never alias internal maps.
func snapshot(p *models.Profile) *models.Profile {
	cp := *p
	cp.Moods = make(map[string]models.MoodEntry, len(p.Moods))
	for k, v := range p.Moods {
		cp.Moods[k] = v
	}
	cp.JournalWall = make(map[string]models.JournalEntry, len(p.JournalWall))
	for k, v := range p.JournalWall {
		cp.JournalWall[k] = v
	}
	cp.Goals = make(map[string]models.Goal, len(p.Goals))
	for k, v := range p.Goals {
		cp.Goals[k] = v
	}
	cp.UnlockedOutfits = append([]string(nil), p.UnlockedOutfits...)
	cp.UnlockedAccessories = append([]string(nil), p.UnlockedAccessories...)
	cp.Avatar.Accessories = append([]string(nil), p.Avatar.Accessories...)
	return &cp
}

func (s *MemoryProfileService) GetOrCreate(ctx context.Context, userID, email, name string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prof, ok := s.profiles[userID]; ok {
		return snapshot(prof), nil
	}
	prof := newProfileShell(userID, email, name, s.now())
	s.profiles[userID] = prof
	return snapshot(prof), nil
}

func (s *MemoryProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		prof.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Email != nil {
		prof.Email = strings.TrimSpace(*req.Email)
	}
	if req.TrustedContact != nil {
		prof.TrustedContact = strings.TrimSpace(*req.TrustedContact)
	}
	prof.UpdatedAt = s.now()
	return snapshot(prof), nil
}

func (s *MemoryProfileService) CompleteOnboarding(ctx context.Context, userID string, req *models.OnboardingRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if prof.Onboarded {
		return nil, ErrAlreadyOnboarded
	}

	accessories := req.Accessories
	if accessories == nil {
		accessories = []string{}
	}
	prof.Avatar = models.Avatar{Mood: req.AvatarMood, Outfit: "default", Accessories: accessories}
	prof.TrustedContact = strings.TrimSpace(req.TrustedContact)
	prof.Onboarded = true
	prof.UpdatedAt = s.now()
	return snapshot(prof), nil
}

func (s *MemoryProfileService) LogMood(ctx context.Context, userID, moodTag, note string) (*models.Profile, error) {
	if !models.IsValidMood(moodTag) {
		return nil, ErrInvalidMood
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	todayKey := models.DateKey(now)
	yesterdayKey := models.DateKey(now.AddDate(0, 0, -1))

	_, loggedToday := prof.Moods[todayKey]
	prof.Moods[todayKey] = models.MoodEntry{Mood: moodTag, Note: note, Timestamp: now}
	prof.Avatar.Mood = moodTag

	if !loggedToday {
		prof.Points += models.MoodLogPoints
		if _, loggedYesterday := prof.Moods[yesterdayKey]; loggedYesterday {
			prof.Streak++
		} else {
			prof.Streak = 1
		}
	}
	prof.UpdatedAt = now
	return snapshot(prof), nil
}

func (s *MemoryProfileService) MoodTrend(ctx context.Context, userID string, window int) (*models.MoodTrend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	return ComputeMoodTrend(prof.Moods, window), nil
}

func (s *MemoryProfileService) GetOrCreateTodaysQuestion(ctx context.Context, userID string) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
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
	prof.JournalWall[todayKey] = entry
	prof.UpdatedAt = now
	return &entry, nil
}

func (s *MemoryProfileService) SaveJournalAnswer(ctx context.Context, userID, answer string) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
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
	if len(answer) > answerRefineThreshold && s.prompts != nil {
		if refined, err := s.prompts.RefineQuestion(ctx, existing.Question, answer); err == nil {
			refined = strings.TrimSpace(refined)
			if refined != "" && refined != existing.Question {
				entry.Question = refined
				entry.OriginalPrompt = existing.Question
			}
		}
	}

	prof.JournalWall[todayKey] = entry
	prof.UpdatedAt = now
	return &entry, nil
}

func (s *MemoryProfileService) SaveAvatar(ctx context.Context, userID string, req *models.SaveAvatarRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	if !prof.HasUnlocked(models.ItemOutfit, req.Outfit) {
		return nil, ErrItemLocked
	}
	for _, a := range req.Accessories {
		if !prof.HasUnlocked(models.ItemAccessory, a) {
			return nil, ErrItemLocked
		}
	}

	accessories := req.Accessories
	if accessories == nil {
		accessories = []string{}
	}
	prof.Avatar.Outfit = req.Outfit
	prof.Avatar.Accessories = accessories
	prof.UpdatedAt = s.now()
	return snapshot(prof), nil
}

func (s *MemoryProfileService) UnlockItem(ctx context.Context, userID string, kind models.ItemKind, itemID string) (*models.Profile, error) {
	item, ok := models.LookupItem(kind, itemID)
	if !ok {
		return nil, ErrUnknownItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if prof.HasUnlocked(kind, itemID) {
		return nil, ErrAlreadyUnlocked
	}
	if prof.Points < item.Cost {
		return nil, ErrInsufficientPoints
	}

	prof.Points -= item.Cost
	if kind == models.ItemAccessory {
		prof.UnlockedAccessories = append(prof.UnlockedAccessories, itemID)
	} else {
		prof.UnlockedOutfits = append(prof.UnlockedOutfits, itemID)
	}
	prof.UpdatedAt = s.now()
	return snapshot(prof), nil
}

func (s *MemoryProfileService) AddGoal(ctx context.Context, userID, title string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal := models.Goal{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Points:    models.CustomGoalPoints,
		Completed: false,
		Type:      models.GoalCustom,
		CreatedAt: now,
	}
	prof.Goals[goal.ID] = goal
	prof.UpdatedAt = now
	return snapshot(prof), nil
}

func (s *MemoryProfileService) CompleteGoal(ctx context.Context, userID, goalID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	goal, ok := prof.Goals[goalID]
	if !ok {
		return nil, ErrGoalNotFound
	}
	if goal.Completed {
		return nil, ErrGoalCompleted
	}

	goal.Completed = true
	prof.Goals[goalID] = goal
	prof.Points += goal.Points
	prof.UpdatedAt = s.now()
	return snapshot(prof), nil
}
