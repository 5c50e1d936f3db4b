// Package regchat provides a conversational question-answering tool over a
// single regulatory web page. It scrapes the page into paragraphs, splits the
// text into overlapping chunks, indexes their embeddings for similarity
// search, and answers questions by streaming a language model response that
// is composed from retrieved chunks and the conversation so far.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, openai/).
package regchat
