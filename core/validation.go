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

import (
	"fmt"
	"strings"
)

// ValidateEntry checks that an entry carries the required title.
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTitle)
	}

	return nil
}

// ValidateSchema checks that the column set of a catalogue source includes Title.
func ValidateSchema(columns []string) error {
	for _, c := range columns {
		if strings.TrimSpace(c) == FieldTitle {
			return nil
		}
	}
	return fmt.Errorf("%w: missing required column %q", ErrSchema, FieldTitle)
}

// ValidateQuery rejects empty queries and result counts below one.
func ValidateQuery(query string, topN int) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if topN < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	return nil
}
