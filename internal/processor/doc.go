// Package processor runs the palavra pipelines. It ties the word-list
// filter, the sentence and conjugation generators, audio synthesis and the
// flashcard writers together, one command at a time.
package processor
