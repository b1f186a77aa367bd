// Copyright 2025 The graphvar Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fetch stages workflow inputs from object storage.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

const urlScheme = "gs://"

var errInvalidURL = errors.New("invalid object URL")

// Store is an interface to the storage engine holding workflow inputs.
type Store interface {
	// NewObjectHandle returns a handle to a specified object in the
	// storage engine.
	NewObjectHandle(bucket, object string) ObjectHandle
}

// ObjectHandle is an interface to the actual storage engine in use.
type ObjectHandle interface {
	// NewReader returns a reader over the whole object.
	NewReader(ctx context.Context) (io.ReadCloser, error)
}

// GCSStore is a Store backed by Google Cloud Storage.
type GCSStore struct {
	*storage.Client
}

// NewObjectHandle returns a handle to a specified object in the storage
// engine.
func (s GCSStore) NewObjectHandle(bucket, object string) ObjectHandle {
	return gcsObjectHandle{s.Bucket(bucket).Object(object)}
}

type gcsObjectHandle struct {
	*storage.ObjectHandle
}

func (h gcsObjectHandle) NewReader(ctx context.Context) (io.ReadCloser, error) {
	return h.ObjectHandle.NewReader(ctx)
}

var (
	defaultStorageClient           *storage.Client
	initializeDefaultStorageClient sync.Once
)

// NewPublicStore returns a store that does not use any form of client
// authorization.  It can only read publicly-readable objects, which is all
// the tutorial datasets require.  The underlying client is cached for
// efficiency.
func NewPublicStore() (Store, error) {
	var err error
	initializeDefaultStorageClient.Do(func() {
		defaultStorageClient, err = storage.NewClient(context.Background(), option.WithHTTPClient(http.DefaultClient))
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %v", err)
	}
	return GCSStore{defaultStorageClient}, nil
}

// NewStoreFromToken returns a store that authenticates with the given
// OAuth2 bearer token.
func NewStoreFromToken(ctx context.Context, token string) (Store, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{TokenType: "Bearer", AccessToken: token})
	client, err := storage.NewClient(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("creating storage client with token source: %v", err)
	}
	return GCSStore{client}, nil
}

// ParseURL splits an object URL of the form gs://bucket/object.
func ParseURL(raw string) (bucket, object string, err error) {
	if !strings.HasPrefix(raw, urlScheme) {
		return "", "", errInvalidURL
	}
	if parts := strings.SplitN(raw[len(urlScheme):], "/", 2); len(parts) == 2 {
		if parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}
	return "", "", errInvalidURL
}

// Fetch stages the object at url into the local file dest.  A file that
// already exists is left alone so that interrupted workflow runs can
// resume without re-downloading inputs.
func Fetch(ctx context.Context, store Store, url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	bucket, object, err := ParseURL(url)
	if err != nil {
		return fmt.Errorf("parsing %q: %v", url, err)
	}

	r, err := store.NewObjectHandle(bucket, object).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("opening %s: %v", url, err)
	}
	defer r.Close()

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %v", dest, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("copying %s: %v", url, err)
	}
	return f.Close()
}
