// internal/service/cart/cart_test.go
package cart

import (
	"context"
	"testing"

	"cncquote-service/internal/domain/cart"
	"cncquote-service/internal/domain/file"
	"cncquote-service/internal/domain/part"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePartStore struct {
	nextID int64
	rows   map[int64]*part.PartDetails
}

func newFakePartStore() *fakePartStore {
	return &fakePartStore{rows: map[int64]*part.PartDetails{}}
}

func (s *fakePartStore) Create(_ context.Context, p *part.PartDetails) error {
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *fakePartStore) FindByID(_ context.Context, id int64) (*part.PartDetails, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakePartStore) SetSourceID(_ context.Context, id, sourceID int64) error {
	p, ok := s.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	p.SourceID.Int64 = sourceID
	p.SourceID.Valid = true
	return nil
}

func (s *fakePartStore) Delete(_ context.Context, id int64) error {
	delete(s.rows, id)
	return nil
}

type fakeCartStore struct {
	nextID int64
	rows   map[int64]*cart.CartItem
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{rows: map[int64]*cart.CartItem{}}
}

func (s *fakeCartStore) Create(_ context.Context, item *cart.CartItem) error {
	s.nextID++
	item.ID = s.nextID
	cp := *item
	s.rows[item.ID] = &cp
	return nil
}

func (s *fakeCartStore) FindByID(_ context.Context, id, userID int64) (*cart.CartItem, error) {
	item, ok := s.rows[id]
	if !ok || item.UserID != userID {
		return nil, xerrors.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *fakeCartStore) ListByUser(_ context.Context, userID int64) ([]cart.CartItem, error) {
	var items []cart.CartItem
	for id := int64(1); id <= s.nextID; id++ {
		if item, ok := s.rows[id]; ok && item.UserID == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *fakeCartStore) Delete(_ context.Context, id, userID int64) error {
	item, ok := s.rows[id]
	if !ok || item.UserID != userID {
		return xerrors.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type fakeFileStore struct {
	rows map[int64]*file.File
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{rows: map[int64]*file.File{}}
}

func (s *fakeFileStore) FindByID(_ context.Context, id int64) (*file.File, error) {
	f, ok := s.rows[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *fakeFileStore) UpdateProductModelAccessID(_ context.Context, id int64, accessID string) error {
	f, ok := s.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	f.ProductModelAccessID.String = accessID
	f.ProductModelAccessID.Valid = true
	return nil
}

func newTestService() (*CartService, *fakePartStore, *fakeCartStore, *fakeFileStore) {
	parts := newFakePartStore()
	carts := newFakeCartStore()
	files := newFakeFileStore()
	svc := NewCartService(parts, carts, files, zap.NewNop())
	return svc, parts, carts, files
}

func TestAddToCartLinksPartToItem(t *testing.T) {
	t.Parallel()

	svc, parts, carts, files := newTestService()
	files.rows[10] = &file.File{ID: 10, UserID: 7, FileName: "bracket.step"}

	req := part.PartItemRequest{
		UploadHistoryID:       10,
		Material:              "AL6061",
		Quantity:              3,
		ProductModelAccessID:  "pm-abc",
		EstimatedDeliveryTime: "2026-09-15",
	}

	require.NoError(t, svc.AddToCart(context.Background(), 7, []part.PartItemRequest{req}))

	require.Len(t, carts.rows, 1)
	item := carts.rows[1]
	assert.Equal(t, int64(7), item.UserID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "2026-09-15", item.ExpectedDeliveryDate.String)

	p := parts.rows[item.PartDetailsID]
	require.NotNil(t, p)
	assert.Equal(t, part.RecordTypeCart, p.RecordType)
	require.True(t, p.SourceID.Valid)
	assert.Equal(t, item.ID, p.SourceID.Int64)

	f := files.rows[10]
	assert.Equal(t, "pm-abc", f.ProductModelAccessID.String)
}

func TestAddToCartUnknownFile(t *testing.T) {
	t.Parallel()

	svc, parts, carts, _ := newTestService()

	err := svc.AddToCart(context.Background(), 7, []part.PartItemRequest{
		{UploadHistoryID: 999},
	})
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
	assert.Empty(t, parts.rows)
	assert.Empty(t, carts.rows)
}

func TestGetCartJoinsPartAndFile(t *testing.T) {
	t.Parallel()

	svc, _, _, files := newTestService()
	files.rows[10] = &file.File{ID: 10, UserID: 7, FileName: "bracket.step"}

	require.NoError(t, svc.AddToCart(context.Background(), 7, []part.PartItemRequest{
		{UploadHistoryID: 10, Quantity: 2},
	}))

	entries, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, 2, entries[0].Cart.Quantity)
	require.NotNil(t, entries[0].PartDetails)
	assert.Equal(t, int64(10), entries[0].PartDetails.FileID)
	require.NotNil(t, entries[0].FileInfo)
	assert.Equal(t, "bracket.step", entries[0].FileInfo.FileName)
}

func TestGetCartScopedToUser(t *testing.T) {
	t.Parallel()

	svc, _, _, files := newTestService()
	files.rows[10] = &file.File{ID: 10, UserID: 7}

	require.NoError(t, svc.AddToCart(context.Background(), 7, []part.PartItemRequest{
		{UploadHistoryID: 10},
	}))

	entries, err := svc.GetCart(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteItemCascadesPartDetails(t *testing.T) {
	t.Parallel()

	svc, parts, carts, files := newTestService()
	files.rows[10] = &file.File{ID: 10, UserID: 7}

	require.NoError(t, svc.AddToCart(context.Background(), 7, []part.PartItemRequest{
		{UploadHistoryID: 10},
	}))
	require.Len(t, carts.rows, 1)
	require.Len(t, parts.rows, 1)

	require.NoError(t, svc.DeleteItem(context.Background(), 1, 7))
	assert.Empty(t, carts.rows)
	assert.Empty(t, parts.rows)
}

func TestDeleteItemRejectsOtherUser(t *testing.T) {
	t.Parallel()

	svc, parts, carts, files := newTestService()
	files.rows[10] = &file.File{ID: 10, UserID: 7}

	require.NoError(t, svc.AddToCart(context.Background(), 7, []part.PartItemRequest{
		{UploadHistoryID: 10},
	}))

	err := svc.DeleteItem(context.Background(), 1, 8)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
	assert.Len(t, carts.rows, 1)
	assert.Len(t, parts.rows, 1)
}
