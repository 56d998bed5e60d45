// Package media is the external object-store collaborator. The auth core
// only needs one thing from it: upload a file and get back a public URL to
// store on the identity record.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/vidora-app/vidora/pkg/idx"
)

// Store uploads binary objects and returns their public URL.
type Store interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// ObjectKey builds a collision-free storage key for an uploaded asset,
// partitioned by date so buckets stay browsable.
func ObjectKey(kind, filename string) string {
	d := time.Now().UTC()
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s", kind, d.Year(), d.Month(), d.Day(), idx.New(), ext)
}
