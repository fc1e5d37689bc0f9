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


// Package catalogue loads movie catalogues and builds the read-only index
// the recommender ranks against.
//
// # Loading
//
// LoadFile reads a catalogue from CSV (header row names the columns) or
// JSON (an array of objects). Only the Title column is required; every other
// recognised column is optional and missing values become empty strings.
//
// # Index
//
// Build turns entries into an Index: each entry gets a search document,
// all documents are embedded in a single batch call, and the resulting
// vectors are unit-normalized into a similarity.Matrix. Lower-cased trimmed
// titles are kept alongside for fuzzy lookup.
//
// An Index is immutable once built and safe for concurrent readers. There is
// no insert or remove; a new catalogue means a new Index.
//
// # Usage
//
//	data, err := catalogue.LoadFile("movies.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	index, err := catalogue.Build(ctx, data.Entries, embedder,
//	    catalogue.WithProgress(os.Stderr),
//	    catalogue.WithRetry(3, time.Second),
//	)
package catalogue
