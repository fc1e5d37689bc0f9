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


// Package recommend ranks catalogue entries for free-text queries.
//
// An Engine routes each query through an intent.Router and runs exactly one
// strategy:
//
//   - Collection: entries whose title contains the franchise phrase, in
//     release order when years are known, otherwise by title. Unscored.
//   - Title: nearest neighbours of the matched entry, never including the
//     entry itself.
//   - Person: semantic search over-fetched to overfetch×N candidates, then
//     +0.25 for entries whose director or cast names the person.
//   - General: semantic search over-fetched the same way, +0.07 per genre
//     keyword shared by query and entry, plus 0.1× the similarity to a
//     "like <title>" reference when one matched.
//
// All sorts are stable and descending by score, so ties keep catalogue
// order. The engine holds no per-request state; concurrent Recommend calls
// share the read-only index.
//
// # Monitoring
//
// RecommendWithMonitor accepts a Monitor that observes routing, the semantic
// window, every boost applied and the final rows. The metrics package and the
// CLI --explain flag are built on it.
package recommend
