// Package sentence asks a language model for one example sentence pair per
// vocabulary word, parses the free-text reply and re-requests only the words
// the reply did not cover.
//
// A request covers a batch of words. The reply is expected as numbered
// entries of three tagged lines:
//
//	1. WORD: cat
//	EN: The cat is sleeping.
//	PT: O gato está dormindo.
//
// Entries that are malformed or missing a tag are ignored, so every request
// yields a partition of the batch into found and missing words. Missing words
// are retried on their own a bounded number of times and then reported.
package sentence
