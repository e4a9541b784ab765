package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/entity"
	"github.com/mentorlink/api/internal/mail"
	"github.com/mentorlink/api/internal/repository"
	"github.com/mentorlink/api/internal/storage"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, user *entity.User) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	search      func(ctx context.Context, fullName, specialty string) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("FindByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, user)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockUsersRepository) Search(ctx context.Context, fullName, specialty string) ([]entity.User, error) {
	if m.search != nil {
		return m.search(ctx, fullName, specialty)
	}
	return nil, errors.New("Search not implemented")
}

func (m *mockUsersRepository) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error) {
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return nil, errors.New("Update not implemented")
}

func (m *mockUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("Delete not implemented")
}

// memoryMentors is an in-memory MentorsRepository keyed by id.
type memoryMentors struct {
	mu      sync.Mutex
	mentors map[uuid.UUID]*entity.Mentor
	fail    error
}

func newMemoryMentors(seed ...*entity.Mentor) *memoryMentors {
	m := &memoryMentors{mentors: make(map[uuid.UUID]*entity.Mentor)}
	for _, mentor := range seed {
		m.mentors[mentor.ID] = mentor
	}
	return m
}

func (m *memoryMentors) get(id uuid.UUID) (*entity.Mentor, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	mentor, ok := m.mentors[id]
	if !ok {
		return nil, repository.ErrMentorNotFound
	}
	return mentor, nil
}

func (m *memoryMentors) Create(_ context.Context, mentor *entity.Mentor) (*entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.mentors {
		if existing.Email == mentor.Email {
			return nil, repository.ErrMentorEmailDuplicate
		}
	}
	created := *mentor
	created.ID = uuid.New()
	created.Active = true
	m.mentors[created.ID] = &created
	copied := created
	return &copied, nil
}

func (m *memoryMentors) List(context.Context) ([]entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Mentor
	for _, mentor := range m.mentors {
		if mentor.Active {
			out = append(out, *mentor)
		}
	}
	return out, nil
}

func (m *memoryMentors) Search(_ context.Context, filter repository.MentorSearch) ([]entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Mentor
	for _, mentor := range m.mentors {
		if filter.Specialty != "" {
			found := false
			for _, s := range mentor.Specialties {
				found = found || s == filter.Specialty
			}
			if !found {
				continue
			}
		}
		out = append(out, *mentor)
	}
	return out, nil
}

func (m *memoryMentors) FindByID(_ context.Context, id uuid.UUID) (*entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mentor, err := m.get(id)
	if err != nil {
		return nil, err
	}
	copied := *mentor
	return &copied, nil
}

func (m *memoryMentors) FindByEmail(_ context.Context, email string) (*entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, mentor := range m.mentors {
		if mentor.Email == email {
			copied := *mentor
			return &copied, nil
		}
	}
	return nil, repository.ErrMentorNotFound
}

func (m *memoryMentors) mutate(id uuid.UUID, fn func(*entity.Mentor)) (*entity.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mentor, err := m.get(id)
	if err != nil {
		return nil, err
	}
	fn(mentor)
	copied := *mentor
	return &copied, nil
}

func (m *memoryMentors) Update(_ context.Context, id uuid.UUID, patch repository.MentorPatch) (*entity.Mentor, error) {
	return m.mutate(id, func(mentor *entity.Mentor) {
		if patch.FullName != nil {
			mentor.FullName = *patch.FullName
		}
		if patch.DateOfBirth != nil {
			mentor.DateOfBirth = *patch.DateOfBirth
		}
		if patch.Specialties != nil {
			mentor.Specialties = patch.Specialties
		}
		if patch.Gender != nil {
			mentor.Gender = *patch.Gender
		}
		if patch.AboutMe != nil {
			mentor.AboutMe = *patch.AboutMe
		}
	})
}

func (m *memoryMentors) SetProfileImage(_ context.Context, id uuid.UUID, url string) (*entity.Mentor, error) {
	return m.mutate(id, func(mentor *entity.Mentor) { mentor.ProfileImageURL = url })
}

func (m *memoryMentors) SetCode(_ context.Context, id uuid.UUID, code string) error {
	_, err := m.mutate(id, func(mentor *entity.Mentor) { mentor.Code = code })
	return err
}

func (m *memoryMentors) ConfirmEmail(_ context.Context, id uuid.UUID) (*entity.Mentor, error) {
	return m.mutate(id, func(mentor *entity.Mentor) {
		mentor.EmailConfirmed = true
		mentor.Code = ""
	})
}

func (m *memoryMentors) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	_, err := m.mutate(id, func(mentor *entity.Mentor) {
		mentor.PasswordHash = passwordHash
		mentor.Code = ""
		mentor.EmailConfirmed = true
		mentor.Active = true
	})
	return err
}

func (m *memoryMentors) Deactivate(_ context.Context, id uuid.UUID) (*entity.Mentor, error) {
	return m.mutate(id, func(mentor *entity.Mentor) { mentor.Active = false })
}

type recordingMailer struct {
	sent []mail.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type memoryStore struct {
	objects map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Put(_ context.Context, name string, data []byte, _ string) error {
	s.objects[name] = data
	return nil
}

func (s *memoryStore) Get(_ context.Context, name string) ([]byte, string, error) {
	data, ok := s.objects[name]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return data, "application/octet-stream", nil
}

func (s *memoryStore) Delete(_ context.Context, name string) error {
	delete(s.objects, name)
	s.deleted = append(s.deleted, name)
	return nil
}

// mapCache is an in-memory cache.Cache that stores the values as given.
type mapCache struct {
	values map[string]any
	gets   int
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if target, ok := dest.(*dto.MentorResponse); ok {
		*target = v.(dto.MentorResponse)
	}
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	c.values[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func stringPtr(value string) *string {
	return &value
}
