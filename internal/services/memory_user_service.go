package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/withu/backend/internal/models"
)

// MemoryUserService is the in-memory UserService counterpart, used in tests
// and datastore-free dev mode.
type MemoryUserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
}

func NewMemoryUserService() *MemoryUserService {
	return &MemoryUserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *MemoryUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[strings.ToLower(strings.TrimSpace(req.Email))]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *MemoryUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}
