package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dom/videotube/internal/domain"
)

const maxFieldBytes = 64 << 10

// uploader streams multipart file parts into a local temp directory, where
// the media storage picks them up.
type uploader struct {
	dir      string
	maxBytes int64
}

// uploadForm is a parsed multipart request. Cleanup removes whatever temp
// files are still present; storage removes the ones it uploaded.
type uploadForm struct {
	values map[string]string
	files  map[string]string
}

func (f *uploadForm) Value(name string) string {
	return strings.TrimSpace(f.values[name])
}

// RawValue is Value without trimming.
func (f *uploadForm) RawValue(name string) string {
	return f.values[name]
}

func (f *uploadForm) File(name string) string {
	return f.files[name]
}

func (f *uploadForm) Cleanup() {
	for _, path := range f.files {
		_ = os.Remove(path)
	}
}

// parse reads the multipart body. Only the named file fields are kept; other
// file parts are discarded.
func (u uploader) parse(w http.ResponseWriter, r *http.Request, fileFields ...string) (*uploadForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, domain.BadRequest("Expected a multipart/form-data body")
	}

	wanted := make(map[string]bool, len(fileFields))
	for _, f := range fileFields {
		wanted[f] = true
	}

	form := &uploadForm{values: map[string]string{}, files: map[string]string{}}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			form.Cleanup()
			return nil, multipartErr(err, u.maxBytes)
		}

		name := part.FormName()
		switch {
		case part.FileName() == "":
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				form.Cleanup()
				return nil, multipartErr(err, u.maxBytes)
			}
			form.values[name] = string(value)
		case wanted[name] && form.files[name] == "":
			path, err := u.save(part)
			if err != nil {
				form.Cleanup()
				return nil, multipartErr(err, u.maxBytes)
			}
			form.files[name] = path
		default:
			_, _ = io.Copy(io.Discard, part)
		}
		part.Close()
	}
}

func (u uploader) save(part *multipart.Part) (string, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(part.FileName())))
	f, err := os.CreateTemp(u.dir, "upload-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, part); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func multipartErr(err error, limit int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.BadRequest(fmt.Sprintf("Upload exceeds %d MB", limit>>20))
	}
	if errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist) {
		return domain.Internal("Could not store upload", err)
	}
	return domain.BadRequest("Malformed multipart body", err.Error())
}
