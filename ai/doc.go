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


// Package ai provides abstractions for the embedding service used by cinematch.
//
// The recommender treats the text-embedding model as an opaque oracle: it
// hands over strings and gets back fixed-length vectors. This package defines
// that contract and the decorators that make a remote model usable at
// catalogue scale.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - AIProvider: Owns an Embedder and its lifecycle
//
// # Decorators
//
// Each decorator implements Embedder and wraps another one:
//
//   - PooledEmbedder: splits large EmbedTexts calls into sub-batches and runs
//     them on an ants worker pool, preserving input order
//   - BreakerEmbedder: fails fast through a gobreaker circuit breaker once the
//     backend keeps erroring
//   - CachingEmbedder: serves previously computed vectors from a
//     storage.EmbeddingCache keyed by model and text
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types. Test utility constructors (mock.NewMockEmbedder) return
// CONCRETE types so tests can inject behaviour and count calls.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithEmbeddingModel("all-minilm"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "space opera with robots")
package ai
