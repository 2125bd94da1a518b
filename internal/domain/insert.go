package domain

// InsertOutcome is the result of a conflict-skip insert: either a fresh
// document id or a defined no-op when the unique key already existed.
type InsertOutcome struct {
	documentID int64
	inserted   bool
}

// OutcomeInserted reports a new row with its store-assigned id.
func OutcomeInserted(id int64) InsertOutcome {
	return InsertOutcome{documentID: id, inserted: true}
}

// OutcomeSkipped reports a conflict-skip no-op. No id was assigned and no
// child-set rows may be written.
func OutcomeSkipped() InsertOutcome {
	return InsertOutcome{}
}

// Inserted reports whether a new row was created.
func (o InsertOutcome) Inserted() bool { return o.inserted }

// DocumentID returns the assigned id. Valid only when Inserted is true.
func (o InsertOutcome) DocumentID() int64 { return o.documentID }
