package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/pkg/eventbus"
	"github.com/servicedesk-hq/servicedesk/pkg/excel"
)

type inMemoryAssetRepo struct {
	byPID     map[string]asset.Asset
	order     []string
	createErr map[string]error
}

func newInMemoryAssetRepo() *inMemoryAssetRepo {
	return &inMemoryAssetRepo{
		byPID:     map[string]asset.Asset{},
		createErr: map[string]error{},
	}
}

func (m *inMemoryAssetRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.byPID)), nil
}

func (m *inMemoryAssetRepo) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	out := make([]asset.Asset, 0, len(m.order))
	for _, pid := range m.order {
		out = append(out, m.byPID[pid])
	}
	return out, nil
}

func (m *inMemoryAssetRepo) GetByPID(ctx context.Context, pid string) (asset.Asset, error) {
	a, ok := m.byPID[pid]
	if !ok {
		return asset.Asset{}, asset.ErrNotFound
	}
	return a, nil
}

func (m *inMemoryAssetRepo) ExistsByPID(ctx context.Context, pid string) (bool, error) {
	_, ok := m.byPID[pid]
	return ok, nil
}

func (m *inMemoryAssetRepo) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	if err, ok := m.createErr[a.PID()]; ok {
		return asset.Asset{}, err
	}
	m.byPID[a.PID()] = a
	m.order = append(m.order, a.PID())
	return a, nil
}

type inMemoryUserRepo struct {
	users []user.User
}

func (m *inMemoryUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *inMemoryUserRepo) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return m.users, nil
}

func (m *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *inMemoryUserRepo) GetByEmailOrUsername(ctx context.Context, identifier string) (user.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email(), identifier) || strings.EqualFold(u.Username(), identifier) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *inMemoryUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	m.users = append(m.users, u)
	return u, nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{}) {
	s.published = append(s.published, args...)
}
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newImportFixture() (*AssetImportService, *inMemoryAssetRepo, *inMemoryUserRepo, *stubPublisher) {
	assets := newInMemoryAssetRepo()
	users := &inMemoryUserRepo{}
	publisher := &stubPublisher{}
	return NewAssetImportService(assets, users, publisher), assets, users, publisher
}

func TestImport_OwnershipShorthandAndStatusDefault(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Ownership"},
		{"INV-1001", "C"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)
	require.Equal(t, 0, result.Failed)
	require.Empty(t, result.Errors)

	a, err := assets.GetByPID(context.Background(), "INV-1001")
	require.NoError(t, err)
	require.Equal(t, asset.OwnershipCompany, a.Ownership())
	require.Equal(t, asset.StatusActive, a.Status())
	require.Equal(t, asset.TypeOther, a.Type())
}

func TestImport_DuplicatePIDWithinBatch(t *testing.T) {
	svc, _, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Brand"},
		{"INV-2000", "Lenovo"},
		{"INV-2000", "Dell"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "Row 3:")
	require.Contains(t, result.Errors[0], "PID 'INV-2000' already exists")
}

func TestImport_IdempotentRejection(t *testing.T) {
	svc, _, _, _ := newImportFixture()
	workbook := [][]interface{}{
		{"PID"},
		{"INV-1"},
		{"INV-2"},
	}

	first, err := svc.Import(context.Background(), buildWorkbook(t, workbook))
	require.NoError(t, err)
	require.Equal(t, 2, first.Success)
	require.Equal(t, 0, first.Failed)

	second, err := svc.Import(context.Background(), buildWorkbook(t, workbook))
	require.NoError(t, err)
	require.Equal(t, 0, second.Success)
	require.Equal(t, 2, second.Failed)
	for _, line := range second.Errors {
		require.Contains(t, line, "already exists")
	}
}

func TestImport_MissingPID(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Brand"},
		{"", "Lenovo"},
	}))
	require.NoError(t, err)
	require.Equal(t, 0, result.Success)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, "Row 2: Missing PID", result.Errors[0])

	count, err := assets.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count, "no store mutation for a row without PID")
}

func TestImport_RowIsolation(t *testing.T) {
	svc, _, _, _ := newImportFixture()

	// Two valid and two invalid rows, interleaved.
	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Brand"},
		{"INV-1", "Lenovo"},
		{"", "HP"},
		{"INV-2", "Dell"},
		{"INV-1", "Apple"},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, result.Success)
	require.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	require.Contains(t, result.Errors[0], "Row 3:")
	require.Contains(t, result.Errors[1], "Row 5:")
}

func TestImport_CaseInsensitiveUserResolution(t *testing.T) {
	svc, assets, users, _ := newImportFixture()
	jane, err := users.Create(context.Background(), user.New("jane@example.com", "jane", "Jane", "Doe"))
	require.NoError(t, err)

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Assigned To User Email"},
		{"INV-1", "Jane@Example.com"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.NotNil(t, a.AssignedTo())
	require.Equal(t, jane.ID(), *a.AssignedTo())
}

func TestImport_UnknownUserLeavesRowUnassigned(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Assigned User"},
		{"INV-1", "nobody@example.com"},
		{"INV-2", "-"},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, result.Success)
	require.Equal(t, 0, result.Failed)

	for _, pid := range []string{"INV-1", "INV-2"} {
		a, err := assets.GetByPID(context.Background(), pid)
		require.NoError(t, err)
		require.Nil(t, a.AssignedTo())
	}
}

func TestImport_SerialPurchasedDate(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Purchased Date", "Warranty Date"},
		{"INV-1", 44197, "-"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.NotNil(t, a.PurchasedAt())
	require.True(t, a.PurchasedAt().Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
		"expected 2021-01-01, got %s", a.PurchasedAt())
	require.Nil(t, a.WarrantyAt())
}

func TestImport_AttributeBagFlags(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "CHARGER", "RAM", "Note"},
		{"INV-1", "yes", "16GB", ""},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.Equal(t, "true", a.Attribute(asset.AttrCharger))
	require.Equal(t, "16GB", a.Attribute(asset.AttrRAM))
	require.Empty(t, a.Attribute(asset.AttrMouse), "absent flag must be omitted, not stored false")
	require.Empty(t, a.Attribute(asset.AttrNote))
}

func TestImport_EmptyAttributeBagOmitted(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Brand"},
		{"INV-1", "Lenovo"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.Nil(t, a.Attributes())
}

func TestImport_ComponentsAndPrice(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "Components", "PRICE"},
		{"INV-1", "Dock, Monitor ,Keyboard", 1499.99},
		{"INV-2", "", "not a number"},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Dock", "Monitor", "Keyboard"}, a.Components())
	require.NotNil(t, a.Price())
	require.Equal(t, "1499.99", a.Price().String())

	b, err := assets.GetByPID(context.Background(), "INV-2")
	require.NoError(t, err)
	require.Nil(t, b.Price(), "unparseable price is dropped, not fatal")
}

func TestImport_PersistenceErrorIsRowScoped(t *testing.T) {
	svc, assets, _, _ := newImportFixture()
	assets.createErr["INV-2"] = errors.New("connection reset by peer")

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID"},
		{"INV-1"},
		{"INV-2"},
		{"INV-3"},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, result.Success)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, "Row 3: connection reset by peer", result.Errors[0])
}

func TestImport_PublishesCreatedEvents(t *testing.T) {
	svc, _, _, publisher := newImportFixture()

	_, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID"},
		{"INV-1"},
		{"INV-2"},
	}))
	require.NoError(t, err)
	require.Len(t, publisher.published, 2)
	for _, ev := range publisher.published {
		_, ok := ev.(*asset.CreatedEvent)
		require.True(t, ok)
	}
}

func TestImport_DispatchesToSubscribers(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	publisher := eventbus.NewEventPublisher(logger)

	var created []string
	publisher.Subscribe(func(event *asset.CreatedEvent) {
		created = append(created, event.Result.PID())
	})

	svc := NewAssetImportService(newInMemoryAssetRepo(), &inMemoryUserRepo{}, publisher)

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID"},
		{"INV-1"},
		{"INV-2"},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, result.Success)
	require.Equal(t, []string{"INV-1", "INV-2"}, created)
}

func TestImport_BatchFatal(t *testing.T) {
	svc, _, _, _ := newImportFixture()

	t.Run("unreadable workbook", func(t *testing.T) {
		_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not a workbook")))
		require.Error(t, err)
	})

	t.Run("no data rows", func(t *testing.T) {
		_, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
			{"PID", "Brand"},
		}))
		require.ErrorIs(t, err, excel.ErrNoDataRows)
	})

	t.Run("no PID column", func(t *testing.T) {
		_, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
			{"Brand", "Model"},
			{"Lenovo", "T14"},
		}))
		require.ErrorIs(t, err, ErrNoPIDColumn)
	})
}

func TestImport_TrailingSpaceHeaders(t *testing.T) {
	svc, assets, _, _ := newImportFixture()

	result, err := svc.Import(context.Background(), buildWorkbook(t, [][]interface{}{
		{"PID", "serial number ", "password "},
		{"INV-1", "SN-42", "hunter2"},
	}))
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	a, err := assets.GetByPID(context.Background(), "INV-1")
	require.NoError(t, err)
	require.Equal(t, "SN-42", a.SerialNumber())
	require.Equal(t, "hunter2", a.Attribute(asset.AttrPassword))
}
