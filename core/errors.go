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


package core

import "errors"

var (
	// ErrSchema indicates the catalogue source lacks the required Title column.
	ErrSchema = errors.New("catalogue schema error")

	// ErrInvalidEntry indicates a catalogue entry failed validation.
	ErrInvalidEntry = errors.New("invalid catalogue entry")

	// ErrEmptyTitle indicates an entry has no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyQuery indicates a query that is empty or whitespace-only.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidTopN indicates a requested result count below one.
	ErrInvalidTopN = errors.New("top n must be at least 1")

	// ErrOracle indicates a failure in the embedding or similarity backend.
	ErrOracle = errors.New("oracle failure")
)
