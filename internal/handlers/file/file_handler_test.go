// internal/handlers/file/file_handler_test.go
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cncquote-service/internal/domain/file"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/service/cnc"
	service "cncquote-service/internal/service/file"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFileStore struct {
	nextID int64
	rows   map[int64]file.File
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{rows: map[int64]file.File{}}
}

func (s *fakeFileStore) Create(_ context.Context, f *file.File) error {
	s.nextID++
	f.ID = s.nextID
	s.rows[f.ID] = *f
	return nil
}

func (s *fakeFileStore) ListByUser(_ context.Context, userID int64) ([]file.File, error) {
	var out []file.File
	for _, f := range s.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFileStore) FindByID(_ context.Context, id int64) (*file.File, error) {
	f, ok := s.rows[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &f, nil
}

func (s *fakeFileStore) UpdateProductModelAccessID(_ context.Context, id int64, _ string) error {
	if _, ok := s.rows[id]; !ok {
		return xerrors.ErrNotFound
	}
	return nil
}

func (s *fakeFileStore) Delete(_ context.Context, id, userID int64) error {
	f, ok := s.rows[id]
	if !ok || f.UserID != userID {
		return xerrors.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// fakeViewer records the model bytes the preview service receives, so a
// test can check each uploaded part was fully consumed.
type fakeViewer struct {
	received map[string][]byte
}

func (v *fakeViewer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(32<<20)) {
			return
		}
		headers := r.MultipartForm.File["file"]
		if !assert.Len(t, headers, 1) {
			return
		}

		f, err := headers[0].Open()
		if !assert.NoError(t, err) {
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if !assert.NoError(t, err) {
			return
		}
		v.received[headers[0].Filename] = content

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"tokenKey": "tok-" + headers[0].Filename},
		}))
	}
}

func newUploadRouter(t *testing.T, store *fakeFileStore, viewer *fakeViewer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(viewer.handler(t))
	t.Cleanup(srv.Close)

	svc := service.NewFileService(
		store,
		nil,
		cnc.NewViewerClient(srv.URL, srv.URL+"/preview", zap.NewNop()),
		t.TempDir(),
		zap.NewNop(),
	)
	h := NewFileHandler(svc)

	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("customer_code", "buyer@example.com")
	}, h.Upload)
	return r
}

func batchBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	i := 0
	for name, content := range files {
		fw, err := mw.CreateFormFile(fmt.Sprintf("uploadList[%d][files]", i), name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField(fmt.Sprintf("uploadList[%d][fileInfoAccessId]", i), fmt.Sprintf("acc-%d", i)))
		i++
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadBatchConsumesEveryPart(t *testing.T) {
	store := newFakeFileStore()
	viewer := &fakeViewer{received: map[string][]byte{}}
	r := newUploadRouter(t, store, viewer)

	files := map[string][]byte{
		"bracket.step": []byte("solid bracket"),
		"housing.step": []byte("solid housing"),
	}
	body, contentType := batchBody(t, files)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "processed 2 of 2 files")

	// The preview service saw every model's full content, so each part
	// was read and released at collection time.
	assert.Equal(t, files, viewer.received)

	require.Len(t, store.rows, 2)
	for _, rec := range store.rows {
		assert.Equal(t, int64(7), rec.UserID)
		assert.Contains(t, rec.FileURL, "tokenKey=tok-"+rec.FileName)
	}
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	store := newFakeFileStore()
	viewer := &fakeViewer{received: map[string][]byte{}}
	r := newUploadRouter(t, store, viewer)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no files in upload")
}
