// Package model provides the data types shared by every stage of entity
// extraction.
//
// The extraction engine turns a parsed scientific document into a list of
// [Entity] values, one per table or figure it could resolve. Everything the
// engine reads or writes is defined here so that storage backends and
// callers never need to import the parsing packages.
//
// # Paragraphs
//
// A [Paragraph] is a unit of prose with a dense, zero-based [Paragraph.Index]
// that defines document order:
//
//	p := model.NewParagraph(0, "As shown in Table 1, accuracy improves.")
//	p.Normalized // "as shown in table 1, accuracy improves."
//
// # Entities
//
// An [Entity] is either a table or a figure ([Kind]). Its identifier is
// derived from the document id, the kind and the 1-based position:
//
//	model.EntityID("2401.00001", model.KindTable, 3) // "2401.00001_table_3"
//
// # Records
//
// [Entity.Record] flattens an entity into a [Record] with paragraph lists
// joined by a blank line, the shape consumed by full-text indexes.
package model
