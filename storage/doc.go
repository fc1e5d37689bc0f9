// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction for derived data in cinematch.
//
// The catalogue itself is an in-memory snapshot built at startup and is never
// persisted. What this package stores is the embedding cache: vectors computed
// for catalogue search documents and queries, keyed by a content hash of the
// model name and the embedded text. A warm cache lets the service restart
// without re-embedding the whole catalogue.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces so that alternative backends can be
// swapped in without touching callers:
//
//	cache, err := badger.NewEmbeddingCache(backend)  // returns storage.EmbeddingCache
//
// Internal constructors may return concrete types.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	cache, backend, err := badger.NewMemoryCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer cache.Close()
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage
