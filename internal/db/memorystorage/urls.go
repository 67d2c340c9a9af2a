package memorystorage

import (
	"context"
	"fmt"
	"sync"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

// TriesToGenerateUniqueKey bounds the attempts to find an unused short id.
const TriesToGenerateUniqueKey = 10

// KeyGenerator produces candidate short ids.
type KeyGenerator func() (string, error)

// URLStorage is the in-memory short URL store.
type URLStorage struct {
	mu          sync.Mutex
	urls        map[string]*models.ShortURL
	generateKey KeyGenerator
}

// NewURLStorage creates an empty URLStorage drawing ids from generateKey.
func NewURLStorage(generateKey KeyGenerator) *URLStorage {
	return &URLStorage{
		urls:        map[string]*models.ShortURL{},
		generateKey: generateKey,
	}
}

// CreateURL stores a new record owned by ownerID under a fresh short id.
// A generated id that is already taken is discarded and another one is drawn.
func (s *URLStorage) CreateURL(ctx context.Context, longURL, ownerID string) (*models.ShortURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shortID, err := s.generateUniqueKey()
	if err != nil {
		return nil, err
	}

	record := &models.ShortURL{
		ShortID:  shortID,
		LongURL:  longURL,
		OwnerID:  ownerID,
		Visitors: []models.Visit{},
	}
	s.urls[shortID] = record

	return record.Clone(), nil
}

func (s *URLStorage) generateUniqueKey() (string, error) {
	for i := 0; i < TriesToGenerateUniqueKey; i++ {
		key, err := s.generateKey()
		if err != nil {
			return "", fmt.Errorf("in internal/db/memorystorage/urls.go/generateUniqueKey(): error while `s.generateKey()` calling: %w", err)
		}
		if _, exists := s.urls[key]; !exists {
			return key, nil
		}
	}

	return "", models.ErrShortIDExhausted
}

// GetURL returns a copy of the record stored under shortID.
func (s *URLStorage) GetURL(ctx context.Context, shortID string) (*models.ShortURL, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.urls[shortID]
	if !found {
		return nil, false, nil
	}

	return record.Clone(), true, nil
}

// UpdateURL replaces the long URL of an existing record.
func (s *URLStorage) UpdateURL(ctx context.Context, shortID, longURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.urls[shortID]
	if !found {
		return models.ErrNotFound
	}
	record.LongURL = longURL

	return nil
}

// DeleteURL removes a record together with its visit history.
func (s *URLStorage) DeleteURL(ctx context.Context, shortID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.urls[shortID]; !found {
		return models.ErrNotFound
	}
	delete(s.urls, shortID)

	return nil
}

// GetUserUrls returns the records owned by ownerID. An owner without records,
// known or not, gets an empty map.
func (s *URLStorage) GetUserUrls(ctx context.Context, ownerID string) (models.UserUrls, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := models.UserUrls{}
	for shortID, record := range s.urls {
		if record.OwnerID != ownerID {
			continue
		}
		result[shortID] = models.UserURL{
			LongURL:            record.LongURL,
			OwnerID:            record.OwnerID,
			VisitCount:         record.VisitCount,
			UniqueVisitorCount: record.UniqueVisitorCount,
		}
	}

	return result, nil
}

// GetAllURLs returns a copy of every stored record keyed by short id.
func (s *URLStorage) GetAllURLs(ctx context.Context) (map[string]*models.ShortURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]*models.ShortURL, len(s.urls))
	for shortID, record := range s.urls {
		result[shortID] = record.Clone()
	}

	return result, nil
}

// RecordVisit appends visit to the record and bumps its counters. The unique
// visitor counter grows only when unique is set.
func (s *URLStorage) RecordVisit(
	ctx context.Context,
	shortID string,
	visit models.Visit,
	unique bool,
) (*models.ShortURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.urls[shortID]
	if !found {
		return nil, models.ErrNotFound
	}

	record.Visitors = append(record.Visitors, visit)
	record.VisitCount++
	if unique {
		record.UniqueVisitorCount++
	}

	return record.Clone(), nil
}

// GetNumberOfShortenedURLs returns the number of stored records.
func (s *URLStorage) GetNumberOfShortenedURLs(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.urls)), nil
}
