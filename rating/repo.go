package rating

import "context"

// Repo is the persistent store of per-user rating records. Get returns
// (nil, nil) when the user has no record yet. Save must reject writes
// whose Version does not match the stored record, so that two contest
// finalizations cannot clobber each other's update to the same user.
type Repo interface {
	Get(ctx context.Context, email string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
}
