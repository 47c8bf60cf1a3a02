// Package hwpdecode decodes Korean HWP 5.x and HWPX word-processor
// documents into a normalized logical Document tree: sections holding
// paragraphs and tables, tables holding bounds-checked cells.
//
// Two independent pipelines feed the same structure builder: hwp5 walks
// an OLE2 compound file and a bit-packed record stream, hwpx walks a
// ZIP-contained, namespace-tolerant XML tree. triage picks between them
// (and a reject path for legacy HWP 3.x) from the first bytes of a file.
package hwpdecode
