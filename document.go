package hwpdecode

import "github.com/yuna-baek/hwpdecode/internal/model"

// Document, Section, Paragraph, Table, and Cell are aliases onto the
// shared internal/model types — the same types hwp5, hwpx, and
// internal/structure build directly, so a Document built by either
// pipeline is usable here with no conversion step.
type (
	Document  = model.Document
	Section   = model.Section
	Paragraph = model.Paragraph
	Table     = model.Table
	Cell      = model.Cell
)
