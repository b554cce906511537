package endpoints

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) SecurityLevel(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *MockUsersStore) GrantSecurityLevel(ctx context.Context, username, levelName string) error {
	args := m.Called(ctx, username, levelName)
	return args.Error(0)
}

func (m *MockUsersStore) Levels(ctx context.Context) ([]model.SecurityLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SecurityLevel), args.Error(1)
}

// MockEmployeesStore implements store.EmployeesStore for testing using testify/mock
type MockEmployeesStore struct {
	mock.Mock
}

func NewMockEmployeesStore() *MockEmployeesStore {
	return &MockEmployeesStore{}
}

func (m *MockEmployeesStore) DashboardCounts(ctx context.Context) (model.DashboardCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.DashboardCounts), args.Error(1)
}

func (m *MockEmployeesStore) List(ctx context.Context, filter store.Filter) ([]model.ArchivedEmployee, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.ArchivedEmployee), args.Int(1), args.Error(2)
}

func (m *MockEmployeesStore) Get(ctx context.Context, archiveID int64) (*model.ArchiveDetails, error) {
	args := m.Called(ctx, archiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ArchiveDetails), args.Error(1)
}

func (m *MockEmployeesStore) Create(ctx context.Context, dst, dmsUser string, payload store.ArchivePayload, docs []store.NewDocument) error {
	args := m.Called(ctx, dst, dmsUser, payload, docs)
	return args.Error(0)
}

func (m *MockEmployeesStore) Update(ctx context.Context, dst, dmsUser string, archiveID int64, payload store.ArchivePayload, newDocs []store.NewDocument, deletedIDs []int64, updatedDocs []store.UpdatedDocument) error {
	args := m.Called(ctx, dst, dmsUser, archiveID, payload, newDocs, deletedIDs, updatedDocs)
	return args.Error(0)
}

func (m *MockEmployeesStore) BulkArchive(ctx context.Context, rows []store.BulkEmployee) (store.BulkResult, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(store.BulkResult), args.Error(1)
}

// MockHRStore implements store.HREmployeesStore for testing using testify/mock
type MockHRStore struct {
	mock.Mock
}

func NewMockHRStore() *MockHRStore {
	return &MockHRStore{}
}

func (m *MockHRStore) List(ctx context.Context, search string, page int) ([]model.HREmployee, int, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.HREmployee), args.Int(1), args.Error(2)
}

func (m *MockHRStore) Get(ctx context.Context, employeeID int64) (*model.HREmployeeDetails, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HREmployeeDetails), args.Error(1)
}

// MockLookupsStore implements store.LookupsStore for testing using testify/mock
type MockLookupsStore struct {
	mock.Mock
}

func NewMockLookupsStore() *MockLookupsStore {
	return &MockLookupsStore{}
}

func (m *MockLookupsStore) Statuses(ctx context.Context) ([]model.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Status), args.Error(1)
}

func (m *MockLookupsStore) DocumentTypes(ctx context.Context) (model.DocumentTypes, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.DocumentTypes), args.Error(1)
}

func (m *MockLookupsStore) Legislations(ctx context.Context) ([]model.Legislation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Legislation), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDMS implements dms.Service for testing using testify/mock
type MockDMS struct {
	mock.Mock
}

func NewMockDMS() *MockDMS {
	return &MockDMS{}
}

func (m *MockDMS) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockDMS) SystemLogin(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDMS) UploadDocument(ctx context.Context, dst string, content io.Reader, meta dms.UploadMetadata) (string, error) {
	args := m.Called(ctx, dst, content, meta)
	return args.String(0), args.Error(1)
}

func (m *MockDMS) FetchDocument(ctx context.Context, dst, docNumber string) ([]byte, string, error) {
	args := m.Called(ctx, dst, docNumber)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
