package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const defaultUploadContentType = "application/octet-stream"

// FlattenMultipartParams flattens nested params into a single level keyed
// in bracket notation: arrays become "arr[0]", objects "obj[prop]", and
// combinations "a[0][b]". Scalars, nulls and CustomUpload values are
// terminal. Already flat params come back unchanged.
func FlattenMultipartParams(params Params) map[string]Value {
	flat := make(map[string]Value, len(params))
	for k, v := range params {
		flattenInto(flat, k, ToValue(v))
	}
	return flat
}

func flattenInto(flat map[string]Value, prefix string, v Value) {
	switch t := v.(type) {
	case Mapping:
		for k, child := range t {
			flattenInto(flat, prefix+"["+k+"]", child)
		}
	case Sequence:
		for i, child := range t {
			flattenInto(flat, fmt.Sprintf("%s[%d]", prefix, i), child)
		}
	default:
		flat[prefix] = t
	}
}

// encodeMultipart writes the flattened params as multipart/form-data and
// returns the body with its content type. Fields are written in key order.
func encodeMultipart(params Params) (*bytes.Buffer, string, error) {
	flat := FlattenMultipartParams(params)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, key := range sortedKeys(flat) {
		if err := writeField(w, key, flat[key]); err != nil {
			return nil, "", fmt.Errorf("multipart field %q: %w", key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

func writeField(w *multipart.Writer, key string, v Value) error {
	switch t := v.(type) {
	case CustomUpload:
		part, err := w.CreatePart(uploadHeader(key, t))
		if err != nil {
			return err
		}
		if t.Content == nil {
			return nil
		}
		_, err = io.Copy(part, t.Content)
		return err
	case Scalar:
		return w.WriteField(key, t.String())
	default:
		return w.WriteField(key, stringify(t))
	}
}

func uploadHeader(key string, u CustomUpload) textproto.MIMEHeader {
	filename := u.Filename
	if filename == "" {
		filename = "blob"
	}
	contentType := u.ContentType
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(key), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
