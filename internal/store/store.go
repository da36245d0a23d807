package store

import (
	"sort"
	"sync"
	"time"

	"skillviz-utils/internal/logging"
	"skillviz-utils/internal/processor"
	"skillviz-utils/pkg/models"
)

// AllCategories is the pseudo-name that selects every stored record
const AllCategories = "all"

// category is one named partition of job records. The dedup key set is kept
// alongside the records so appends test membership in O(1) per candidate.
type category struct {
	records   []models.JobRecord
	keys      map[processor.Key]struct{}
	createdAt time.Time
	updatedAt time.Time
	revision  uint64
}

// CategoryStore owns every stored JobRecord, partitioned by user-defined
// category names. Names are opaque identifiers, matched exactly. All
// mutation goes through Append/Clear/Remove under the write lock; reads
// hand out snapshots so analytics never observes a partially merged state.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]*category
	logger     logging.Logger
}

// New creates an empty category store
func New() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]*category),
		logger:     logging.GetGlobalLogger(),
	}
}

// Append merges validated records into the named category, creating it on
// first write. Records whose dedup key already exists in the category are
// dropped whole; the rest are added in one step, so readers see either the
// prior dataset or the fully merged one.
func (s *CategoryStore) Append(name string, records []models.JobRecord) (added, duplicates int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, exists := s.categories[name]
	if !exists {
		now := time.Now()
		cat = &category{
			keys:      make(map[processor.Key]struct{}),
			createdAt: now,
			updatedAt: now,
		}
		s.categories[name] = cat
		s.logger.Info("Category created", map[string]interface{}{"category": name})
	}

	unique, dropped := processor.FilterDuplicates(records, cat.keys)
	for i := range unique {
		cat.keys[processor.DedupKey(&unique[i])] = struct{}{}
	}

	cat.records = append(cat.records, unique...)
	cat.updatedAt = time.Now()
	cat.revision++

	return len(unique), dropped
}

// Get returns a snapshot of the named category's dataset. An unknown
// category yields an empty dataset; "no data yet" is an expected state,
// not an error.
func (s *CategoryStore) Get(name string) []models.JobRecord {
	if name == "" || name == AllCategories {
		return s.GetAll()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cat, exists := s.categories[name]
	if !exists {
		return nil
	}

	snapshot := make([]models.JobRecord, len(cat.records))
	copy(snapshot, cat.records)
	return snapshot
}

// GetAll returns a snapshot of every stored record across categories
func (s *CategoryStore) GetAll() []models.JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshot []models.JobRecord
	for _, cat := range s.categories {
		snapshot = append(snapshot, cat.records...)
	}
	return snapshot
}

// List returns metadata for all known categories, sorted by name
func (s *CategoryStore) List() []models.CategoryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]models.CategoryInfo, 0, len(s.categories))
	for name, cat := range s.categories {
		infos = append(infos, models.CategoryInfo{
			Name:        name,
			RecordCount: len(cat.records),
			CreatedAt:   cat.createdAt,
			UpdatedAt:   cat.updatedAt,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Clear discards all records under the named category but keeps the
// category itself. Returns false for an unknown category.
func (s *CategoryStore) Clear(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, exists := s.categories[name]
	if !exists {
		return false
	}

	cat.records = nil
	cat.keys = make(map[processor.Key]struct{})
	cat.updatedAt = time.Now()
	cat.revision++

	s.logger.Info("Category cleared", map[string]interface{}{"category": name})
	return true
}

// Remove deletes the category entirely. Returns false for an unknown category.
func (s *CategoryStore) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[name]; !exists {
		return false
	}

	delete(s.categories, name)
	s.logger.Info("Category removed", map[string]interface{}{"category": name})
	return true
}

// Revision returns a counter that changes on every mutation of the named
// category, used to version cached analytics results. For the aggregate
// view it sums across categories, so any mutation invalidates it.
func (s *CategoryStore) Revision(name string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" || name == AllCategories {
		var total uint64
		for _, cat := range s.categories {
			total += cat.revision
		}
		// Removing a category must change the aggregate revision too
		return total + uint64(len(s.categories))<<32
	}

	cat, exists := s.categories[name]
	if !exists {
		return 0
	}
	return cat.revision
}
