// Package query answers natural-language questions against the vector
// index: embed the question, retrieve top-K chunks, stuff them into a
// context, and synthesize an answer with the supporting evidence attached.
package query
