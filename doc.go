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


// Package cinematch recommends movies from free-text queries.
//
// A Recommender embeds a catalogue once at startup, then routes each query
// to one of four strategies (collection lookup, title similarity, person
// search or genre-boosted semantic search) and returns a stable top-N.
//
//	rec, err := cinematch.Open(ctx, "movies.csv",
//	    cinematch.WithAIConfig(ai.NewConfig(ai.WithEmbeddingModel("all-minilm"))),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	results, err := rec.Recommend(ctx, "Christopher Nolan movies", 10)
package cinematch
