// Package intent classifies free-text movie queries.
//
// A Router evaluates an ordered list of rules against the query and the
// first rule that matches decides the Kind:
//
//  1. Collection: "<phrase> collection|series|saga|universe|filmography|set"
//     and some catalogue title contains the phrase
//  2. Title: the query fuzzy-matches a catalogue title above the title cutoff
//  3. Person: "movies with <name>", "<name> movies", "directed by <name>"
//  4. General: everything else
//
// A rule that does not match falls through to the next one; classification
// itself never fails. General intents also carry the genre keywords found in
// the query and the catalogue entry named by a "like <title>" clause, if any.
package intent
