package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"

	"Backend-UniClub/src/services/uploads"
)

var _ uploads.Uploader = (*Uploader)(nil)

// Uploader records uploads in memory and returns predictable URLs.
type Uploader struct {
	mu      sync.Mutex
	Fail    bool
	Uploads []uploads.Object
	Bodies  []string
}

func (u *Uploader) Driver() string { return "memory" }

func (u *Uploader) Upload(_ context.Context, obj uploads.Object) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Fail {
		return "", ErrInjected
	}
	b, _ := io.ReadAll(obj.Body)
	u.Uploads = append(u.Uploads, obj)
	u.Bodies = append(u.Bodies, string(b))
	return fmt.Sprintf("https://cdn.test/%s/%d-%s", obj.Folder, len(u.Uploads), obj.Filename), nil
}

func (u *Uploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.Uploads)
}

// MultipartBody encodes fields and an optional image part as a multipart
// form and returns the body with its content type.
func MultipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		part.Write([]byte("image-bytes"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return body, w.FormDataContentType()
}

// FileHeader builds a parsed image part as a handler would receive it.
func FileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create image part: %v", err)
	}
	part.Write([]byte("image-bytes"))
	w.Close()

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["image"][0]
}
