// Package wordlist reads spreadsheet exports of English/Portuguese word pairs,
// drops title-cased entries (proper nouns) and maintains the sorted master list
// the other pipelines read from.
package wordlist
