// Package fuzzy implements approximate string matching for title lookup.
//
// Scores are on a 0 to 100 scale. The similarity primitive is the normalized
// Indel distance (insertions and deletions only), computed with
// smetrics.WagnerFischer using a substitution cost of two. On top of it the
// package builds the usual family of scorers:
//
//   - Ratio: whole-string similarity
//   - PartialRatio: best alignment of the shorter string inside the longer
//   - TokenSortRatio and TokenSetRatio: word-order insensitive variants
//   - WRatio: a weighted combination picking the most suitable of the above
//     based on the length ratio of the inputs
//
// Strings are compared byte-wise and are not case-folded; callers lower-case
// both sides when they want case-insensitive matching.
package fuzzy
