package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

const (
	// maxJSONBody caps non-upload request bodies.
	maxJSONBody = 1 << 20

	// maxUploadBody fits four images and a datasheet plus form fields.
	maxUploadBody = 64 << 20

	// maxMultipartMemory is held in RAM before parts spill to disk.
	maxMultipartMemory = 32 << 20
)

// formDecoder fills request structs from url-encoded and multipart forms.
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(uuid.UUID{}, func(s string) reflect.Value {
		if s = strings.TrimSpace(s); s == "" {
			return reflect.ValueOf(uuid.Nil)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(id)
	})
	return d
}

// optionalID maps the zero UUID a blank form field decodes to onto nil.
func optionalID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}

// decodeBody decodes a JSON, url-encoded or multipart body into dst. It
// returns the parsed form values (nil for JSON) so callers can pick up
// fields that need custom handling.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, bodyError(err)
		}
		return r.MultipartForm.Value, decodeForm(dst, r.MultipartForm.Value)
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return r.PostForm, decodeForm(dst, r.PostForm)
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, models.Invalid("", "Request body is required")
			}
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				return nil, models.Invalid(typeErr.Field, "Invalid value")
			}
			return nil, bodyError(err)
		}
		return nil, nil
	}
}

func decodeForm(dst any, values url.Values) error {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}
	var multi schema.MultiError
	if errors.As(err, &multi) {
		for key := range multi {
			return models.Invalid(key, "Invalid value")
		}
	}
	return models.Invalid("", "Malformed form data")
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return models.Invalid("", fmt.Sprintf("Request body is too large (max %d MB)", tooLarge.Limit>>20))
	}
	return models.Invalid("", "Malformed request body")
}

// formUpload reads the named multipart file. It returns nil when the
// request is not multipart or the field is absent.
func formUpload(r *http.Request, field string) (*catalog.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, models.Invalid(field, "Could not read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, models.Invalid(field, "Could not read upload")
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &catalog.Upload{Filename: hdr.Filename, Data: data}, nil
}
