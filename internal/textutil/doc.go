// Package textutil provides the filename sanitization rules shared by every
// component that turns a title into an output name or an existing filename
// back into a comparable key. Both directions must use the same function;
// any asymmetry breaks the skip-already-downloaded comparison.
package textutil
