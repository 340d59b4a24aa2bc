// Package verbs generates present, past and future conjugations for
// Portuguese verbs with a language model and turns them into flashcards.
//
// The model is asked for blocks of the form
//
//	VERB: falar
//	PRESENT:
//	Eu falo
//	...
//	PAST:
//	...
//	FUTURE:
//	...
//	---
//
// and every block yields one card per tense.
package verbs
