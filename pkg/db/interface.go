package db

type Journal interface {
	Init() error
	AddRemoval(removal *Removal) (int64, error)
	GetRemovals(repository string) ([]*Removal, error)
	Close() error
}
