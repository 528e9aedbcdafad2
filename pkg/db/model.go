package db

// Removal is a dump file deleted by a cleanup run.
type Removal struct {
	ID         int64
	Path       string
	Repository string
	Low        string
	High       int
	Size       int64
	Timestamp  int64
}
