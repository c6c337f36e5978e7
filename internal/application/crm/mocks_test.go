package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProspectRepository is a mock implementation of crm.ProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByEmail(ctx context.Context, email string) (*crm.Prospect, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockProspectRepository) FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]crm.Prospect, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByState(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, filter shared.Filter) ([]crm.Prospect, error) {
	args := m.Called(ctx, ownerID, state, filter)
	return args.Get(0).([]crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) CountByState(ctx context.Context, ownerID *uuid.UUID) (map[crm.ProspectState]int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(map[crm.ProspectState]int64), args.Error(1)
}

func (m *MockProspectRepository) CountCreatedSince(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, since time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, state, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) Save(ctx context.Context, prospect *crm.Prospect) error {
	args := m.Called(ctx, prospect)
	return args.Error(0)
}

func (m *MockProspectRepository) SaveTags(ctx context.Context, prospect *crm.Prospect) error {
	args := m.Called(ctx, prospect)
	return args.Error(0)
}

func (m *MockProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of crm.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*crm.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context) ([]crm.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]crm.Tag), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *crm.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWorkerRepository is a mock implementation of crm.WorkerRepository
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Worker, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Worker), args.Error(1)
}

func (m *MockWorkerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkerRepository) Save(ctx context.Context, worker *crm.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProspectWorkerRepository is a mock implementation of crm.ProspectWorkerRepository
type MockProspectWorkerRepository struct {
	mock.Mock
}

func (m *MockProspectWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.ProspectWorker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.ProspectWorker), args.Error(1)
}

func (m *MockProspectWorkerRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.ProspectWorker, error) {
	args := m.Called(ctx, prospectID)
	return args.Get(0).([]crm.ProspectWorker), args.Error(1)
}

func (m *MockProspectWorkerRepository) FindByWorker(ctx context.Context, workerID uuid.UUID) ([]crm.ProspectWorker, error) {
	args := m.Called(ctx, workerID)
	return args.Get(0).([]crm.ProspectWorker), args.Error(1)
}

func (m *MockProspectWorkerRepository) FindLink(ctx context.Context, prospectID, workerID uuid.UUID) (*crm.ProspectWorker, error) {
	args := m.Called(ctx, prospectID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.ProspectWorker), args.Error(1)
}

func (m *MockProspectWorkerRepository) AverageRatings(ctx context.Context, prospectIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	args := m.Called(ctx, prospectIDs)
	return args.Get(0).(map[uuid.UUID]float64), args.Error(1)
}

func (m *MockProspectWorkerRepository) TopRatedWorkers(ctx context.Context, limit int) ([]crm.WorkerRating, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]crm.WorkerRating), args.Error(1)
}

func (m *MockProspectWorkerRepository) Save(ctx context.Context, link *crm.ProspectWorker) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockProspectWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInteractionRepository is a mock implementation of crm.InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID, filter shared.Filter) ([]crm.Interaction, error) {
	args := m.Called(ctx, prospectID, filter)
	return args.Get(0).([]crm.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) CountSince(ctx context.Context, ownerID *uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepository) LatestByProspect(ctx context.Context, ownerID *uuid.UUID) (map[uuid.UUID]time.Time, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(map[uuid.UUID]time.Time), args.Error(1)
}

func (m *MockInteractionRepository) Save(ctx context.Context, interaction *crm.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReminderRepository is a mock implementation of crm.ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.Reminder, error) {
	args := m.Called(ctx, prospectID)
	return args.Get(0).([]crm.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindAll(ctx context.Context, ownerID *uuid.UUID) ([]crm.Reminder, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]crm.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindPending(ctx context.Context, ownerID *uuid.UUID, until time.Time) ([]crm.Reminder, error) {
	args := m.Called(ctx, ownerID, until)
	return args.Get(0).([]crm.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Save(ctx context.Context, reminder *crm.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttachmentRepository is a mock implementation of crm.AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.Attachment, error) {
	args := m.Called(ctx, prospectID)
	return args.Get(0).([]crm.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Save(ctx context.Context, attachment *crm.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeObjectStorage is an in-memory ObjectStorage for tests
type fakeObjectStorage struct {
	objects map[string][]byte
	failing bool
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if f.failing {
		return errStorageDown
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if f.failing {
		return "", time.Time{}, errStorageDown
	}
	return "https://storage.test/" + key, time.Now().Add(expiresIn), nil
}

func (f *fakeObjectStorage) DeleteObject(_ context.Context, key string) error {
	if f.failing {
		return errStorageDown
	}
	delete(f.objects, key)
	return nil
}

var errStorageDown = shared.NewDomainError("STORAGE_DOWN", "Storage unreachable")
