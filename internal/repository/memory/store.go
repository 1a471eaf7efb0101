// Package memory is an in-process implementation of the cat, mission and
// note repositories. It enforces the same rules as the PostgreSQL
// repositories and backs the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"

	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
)

type catRow struct {
	name              string
	yearsOfExperience int
	breed             string
	salary            int
}

type missionRow struct {
	assignedCat *int64
	status      missionDomain.Status
	title       string
}

type targetRow struct {
	missionID int64
	status    missionDomain.Status
	name      string
	country   string
}

type noteRow struct {
	targetID int64
	message  string
}

// Store holds every table behind a single lock.
type Store struct {
	mu sync.Mutex

	cats     map[int64]catRow
	missions map[int64]missionRow
	targets  map[int64]targetRow
	notes    map[int64]noteRow

	nextCat, nextMission, nextTarget, nextNote int64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		cats:     make(map[int64]catRow),
		missions: make(map[int64]missionRow),
		targets:  make(map[int64]targetRow),
		notes:    make(map[int64]noteRow),
	}
}

// Cats returns a CatRepository backed by s.
func (s *Store) Cats() *CatRepository { return &CatRepository{s: s} }

// Missions returns a MissionRepository backed by s.
func (s *Store) Missions() *MissionRepository { return &MissionRepository{s: s} }

// Notes returns a NoteRepository backed by s.
func (s *Store) Notes() *NoteRepository { return &NoteRepository{s: s} }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CatRepository implements cat.CatRepository.
type CatRepository struct{ s *Store }

func (r *CatRepository) Create(_ context.Context, c *catDomain.Cat) (*catDomain.Cat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCat++
	id := r.s.nextCat
	r.s.cats[id] = catRow{
		name:              c.Name(),
		yearsOfExperience: c.YearsOfExperience(),
		breed:             c.Breed(),
		salary:            c.Salary(),
	}
	return r.s.cat(id), nil
}

func (r *CatRepository) FindByID(_ context.Context, id int64) (*catDomain.Cat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cats[id]; !ok {
		return nil, catDomain.ErrNotFound
	}
	return r.s.cat(id), nil
}

func (r *CatRepository) FindAll(_ context.Context) ([]*catDomain.Cat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cats := make([]*catDomain.Cat, 0, len(r.s.cats))
	for _, id := range sortedKeys(r.s.cats) {
		cats = append(cats, r.s.cat(id))
	}
	return cats, nil
}

func (r *CatRepository) UpdateSalary(_ context.Context, id int64, salary int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.cats[id]
	if !ok {
		return catDomain.ErrNotFound
	}
	row.salary = salary
	r.s.cats[id] = row
	return nil
}

func (r *CatRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.missions {
		if m.assignedCat != nil && *m.assignedCat == id {
			return catDomain.ErrInUse
		}
	}
	if _, ok := r.s.cats[id]; !ok {
		return catDomain.ErrNotFound
	}
	delete(r.s.cats, id)
	return nil
}

func (s *Store) cat(id int64) *catDomain.Cat {
	row := s.cats[id]
	return catDomain.Reconstruct(id, row.name, row.yearsOfExperience, row.breed, row.salary)
}

// MissionRepository implements mission.MissionRepository.
type MissionRepository struct{ s *Store }

func (r *MissionRepository) Create(_ context.Context, m *missionDomain.Mission) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.AssignedCat() != nil {
		if _, ok := r.s.cats[*m.AssignedCat()]; !ok {
			return 0, catDomain.ErrNotFound
		}
	}

	r.s.nextMission++
	id := r.s.nextMission
	r.s.missions[id] = missionRow{
		assignedCat: copyID(m.AssignedCat()),
		status:      m.Status(),
		title:       m.Title(),
	}
	for _, t := range m.Targets() {
		r.s.nextTarget++
		r.s.targets[r.s.nextTarget] = targetRow{
			missionID: id,
			status:    t.Status(),
			name:      t.Name(),
			country:   t.Country(),
		}
	}
	return id, nil
}

func (r *MissionRepository) FindByID(_ context.Context, id int64) (*missionDomain.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.missions[id]; !ok {
		return nil, missionDomain.ErrNotFound
	}
	return r.s.mission(id), nil
}

func (r *MissionRepository) FindAll(_ context.Context) ([]*missionDomain.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	missions := make([]*missionDomain.Mission, 0, len(r.s.missions))
	for _, id := range sortedKeys(r.s.missions) {
		missions = append(missions, r.s.mission(id))
	}
	return missions, nil
}

func (r *MissionRepository) Cancel(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.missions[id]
	if !ok {
		return missionDomain.ErrNotFound
	}
	if row.assignedCat != nil {
		return missionDomain.ErrAssigned
	}
	for tid, t := range r.s.targets {
		if t.missionID == id {
			t.status = missionDomain.StatusCancelled
			r.s.targets[tid] = t
		}
	}
	row.status = missionDomain.StatusCancelled
	r.s.missions[id] = row
	return nil
}

func (r *MissionRepository) AssignCat(_ context.Context, missionID, catID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.missions[missionID]
	if !ok {
		return missionDomain.ErrNotFound
	}
	if row.assignedCat != nil {
		return missionDomain.ErrAlreadyAssigned
	}
	if _, ok := r.s.cats[catID]; !ok {
		return catDomain.ErrNotFound
	}
	row.assignedCat = &catID
	r.s.missions[missionID] = row
	return nil
}

func (r *MissionRepository) UpdateTargetStatus(_ context.Context, targetID int64, status missionDomain.Status) (*missionDomain.TargetStatusChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.targets[targetID]
	if !ok {
		return nil, missionDomain.ErrTargetNotFound
	}
	t.status = status
	r.s.targets[targetID] = t

	change := &missionDomain.TargetStatusChange{
		TargetID:  targetID,
		MissionID: t.missionID,
		Status:    status,
	}
	if !missionDomain.AllTargetsFinished(r.s.missionTargets(t.missionID)) {
		return change, nil
	}
	m := r.s.missions[t.missionID]
	if m.status != missionDomain.StatusFinished {
		m.status = missionDomain.StatusFinished
		r.s.missions[t.missionID] = m
		change.MissionFinished = true
	}
	return change, nil
}

func (r *MissionRepository) CountByStatus(_ context.Context) (map[missionDomain.Status]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[missionDomain.Status]int64)
	for _, m := range r.s.missions {
		counts[m.status]++
	}
	return counts, nil
}

func (s *Store) mission(id int64) *missionDomain.Mission {
	row := s.missions[id]
	return missionDomain.Reconstruct(id, copyID(row.assignedCat), row.status, row.title, s.missionTargets(id))
}

func (s *Store) missionTargets(missionID int64) []*missionDomain.Target {
	var targets []*missionDomain.Target
	for _, id := range sortedKeys(s.targets) {
		if s.targets[id].missionID == missionID {
			targets = append(targets, s.target(id))
		}
	}
	return targets
}

func (s *Store) target(id int64) *missionDomain.Target {
	row := s.targets[id]
	return missionDomain.ReconstructTarget(id, row.missionID, row.status, row.name, row.country)
}

// NoteRepository implements mission.NoteRepository.
type NoteRepository struct{ s *Store }

func (r *NoteRepository) Create(_ context.Context, n *missionDomain.Note) (*missionDomain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.targets[n.TargetID()]; !ok {
		return nil, missionDomain.ErrTargetNotFound
	}
	if !r.s.target(n.TargetID()).AcceptsNotes() {
		return nil, missionDomain.ErrTargetClosed
	}

	r.s.nextNote++
	id := r.s.nextNote
	r.s.notes[id] = noteRow{targetID: n.TargetID(), message: n.Message()}
	return missionDomain.ReconstructNote(id, n.TargetID(), n.Message()), nil
}

func (r *NoteRepository) FindAll(_ context.Context) ([]*missionDomain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notes := make([]*missionDomain.Note, 0, len(r.s.notes))
	for _, id := range sortedKeys(r.s.notes) {
		row := r.s.notes[id]
		notes = append(notes, missionDomain.ReconstructNote(id, row.targetID, row.message))
	}
	return notes, nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
